package service

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrMediaTooLarge is returned when an upload exceeds the configured size limit.
	ErrMediaTooLarge = errors.New("media exceeds size limit")
	// ErrMediaNotImage is returned when the uploaded content is not an image.
	ErrMediaNotImage = errors.New("media is not an image")
	// ErrMediaEmpty is returned for zero-byte uploads.
	ErrMediaEmpty = errors.New("media is empty")
)

// MediaStore uploads user files to the media host and returns their public URL.
type MediaStore interface {
	// Upload stores content under folder and returns the URL it is served from.
	// filename only contributes its extension to the stored key.
	Upload(ctx context.Context, folder, filename string, content io.Reader) (string, error)
}
