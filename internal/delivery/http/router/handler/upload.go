package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// uploads opens the multipart files of a request and closes them once the handler is done.
type uploads struct {
	files []io.Closer
}

// open returns the file uploaded under field, or nil when the request carries none.
func (u *uploads) open(c echo.Context, field string) (*usecase.FileUpload, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", field)
	}

	return u.openHeader(header)
}

func (u *uploads) openHeader(header *multipart.FileHeader) (*usecase.FileUpload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", header.Filename)
	}
	u.files = append(u.files, file)

	return &usecase.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Content:     file,
	}, nil
}

// Close releases every opened file.
func (u *uploads) Close() {
	for _, file := range u.files {
		_ = file.Close()
	}
	u.files = nil
}
