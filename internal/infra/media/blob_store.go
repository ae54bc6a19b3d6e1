// Package media stores uploaded images in a gocloud.dev blob bucket that acts as the media host.
package media

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"bazaar/config"
	"bazaar/internal/domain/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	gbytes "github.com/labstack/gommon/bytes"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers selectable through media.bucketUrl.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

const defaultBucketURL = "mem://"

// rasterTypes are the accepted image types. SVG is left out since it can carry script.
var rasterTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// blobStore uploads images to a blob bucket and returns their public URL.
type blobStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
	keyPrefix     string
	maxSize       int64
}

// Params defines the dependencies of the media store
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewMediaStore opens the configured bucket and closes it on shutdown.
func NewMediaStore(params Params) (service.MediaStore, error) {
	cfg := params.Config.Media
	if cfg == nil {
		cfg = &config.MediaConfig{}
	}

	bucketURL := cfg.BucketURL
	if bucketURL == "" {
		params.Logger.Warn("media.bucketUrl not set, uploads are kept in memory")
		bucketURL = defaultBucketURL
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open media bucket %s", bucketURL)
	}

	store, err := NewBlobStore(bucket, cfg)
	if err != nil {
		bucket.Close()

		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing media bucket")

			return errors.WithStack(bucket.Close())
		},
	})

	params.Logger.Info("Media store initialized",
		slog.String("bucket", bucketURL),
		slog.String("public_base_url", cfg.PublicBaseURL),
	)

	return store, nil
}

// NewBlobStore wraps an already opened bucket.
func NewBlobStore(bucket *blob.Bucket, cfg *config.MediaConfig) (*blobStore, error) {
	var maxSize int64
	if cfg.MaxFileSize != "" {
		parsed, err := gbytes.Parse(cfg.MaxFileSize)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid media.maxFileSize %q", cfg.MaxFileSize)
		}
		maxSize = parsed
	}

	return &blobStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		keyPrefix:     strings.Trim(cfg.KeyPrefix, "/"),
		maxSize:       maxSize,
	}, nil
}

// Upload validates that content is an image within the size limit and writes it
// under <prefix>/<folder>/<uuid><ext>.
func (s *blobStore) Upload(ctx context.Context, folder, filename string, content io.Reader) (string, error) {
	data, err := s.read(content)
	if err != nil {
		return "", err
	}

	mime := mimetype.Detect(data)
	if !mimetype.EqualsAny(mime.String(), rasterTypes...) {
		return "", errors.Wrapf(service.ErrMediaNotImage, "detected %s", mime.String())
	}

	key := s.objectKey(folder, filename, mime)
	err = s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType:  mime.String(),
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to write %s", key)
	}

	return s.publicURL(key), nil
}

func (s *blobStore) read(content io.Reader) ([]byte, error) {
	if content == nil {
		return nil, service.ErrMediaEmpty
	}

	reader := content
	if s.maxSize > 0 {
		reader = io.LimitReader(content, s.maxSize+1)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, errors.Wrap(err, "failed to read upload")
	}

	switch {
	case buf.Len() == 0:
		return nil, service.ErrMediaEmpty
	case s.maxSize > 0 && int64(buf.Len()) > s.maxSize:
		return nil, errors.Wrapf(service.ErrMediaTooLarge, "limit is %s", gbytes.Format(s.maxSize))
	}

	return buf.Bytes(), nil
}

func (s *blobStore) objectKey(folder, filename string, mime *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extensionMatches(mime, ext) {
		ext = mime.Extension()
	}

	return path.Join(s.keyPrefix, strings.Trim(folder, "/"), uuid.NewString()+ext)
}

func (s *blobStore) publicURL(key string) string {
	if s.publicBaseURL == "" {
		return "/" + key
	}

	return s.publicBaseURL + "/" + key
}

// extensionMatches reports whether ext is the detected type's canonical extension
// or one of its known aliases such as .jpeg for image/jpeg.
func extensionMatches(mime *mimetype.MIME, ext string) bool {
	if mime.Extension() == ext {
		return true
	}

	return ext == ".jpeg" && mime.Is("image/jpeg")
}
