package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"bazaar/config"
	"bazaar/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func newTestStore(t *testing.T, maxFileSize string) (*blobStore, *blob.Bucket) {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store, err := NewBlobStore(bucket, &config.MediaConfig{
		PublicBaseURL: "https://cdn.example.com/",
		KeyPrefix:     "/images/",
		MaxFileSize:   maxFileSize,
	})
	require.NoError(t, err)

	return store, bucket
}

func TestBlobStore_Upload(t *testing.T) {
	store, bucket := newTestStore(t, "1KB")
	ctx := context.Background()
	data := pngBytes(t)

	url, err := store.Upload(ctx, "avatars", "me.PNG", bytes.NewReader(data))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://cdn.example.com/images/avatars/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	key := strings.TrimPrefix(url, "https://cdn.example.com/")
	stored, err := bucket.ReadAll(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	attrs, err := bucket.Attributes(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "image/png", attrs.ContentType)
}

func TestBlobStore_Upload_DistinctKeys(t *testing.T) {
	store, _ := newTestStore(t, "")
	data := pngBytes(t)

	first, err := store.Upload(context.Background(), "avatars", "a.png", bytes.NewReader(data))
	require.NoError(t, err)
	second, err := store.Upload(context.Background(), "avatars", "a.png", bytes.NewReader(data))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBlobStore_Upload_WrongExtensionUsesDetectedType(t *testing.T) {
	store, _ := newTestStore(t, "")

	url, err := store.Upload(context.Background(), "covers", "photo.gif", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"), url)
}

func TestBlobStore_Upload_Rejections(t *testing.T) {
	store, _ := newTestStore(t, "64B")

	_, err := store.Upload(context.Background(), "avatars", "notes.txt", strings.NewReader("plain text body"))
	assert.ErrorIs(t, err, service.ErrMediaNotImage)

	svg := `<svg xmlns="http://www.w3.org/2000/svg"><script/></svg>`
	_, err = store.Upload(context.Background(), "avatars", "logo.svg", strings.NewReader(svg))
	assert.ErrorIs(t, err, service.ErrMediaNotImage)

	_, err = store.Upload(context.Background(), "avatars", "empty.png", bytes.NewReader(nil))
	assert.ErrorIs(t, err, service.ErrMediaEmpty)

	_, err = store.Upload(context.Background(), "avatars", "nil.png", nil)
	assert.ErrorIs(t, err, service.ErrMediaEmpty)

	big := append(pngBytes(t), make([]byte, 128)...)
	_, err = store.Upload(context.Background(), "avatars", "big.png", bytes.NewReader(big))
	assert.ErrorIs(t, err, service.ErrMediaTooLarge)
}

func TestNewBlobStore_InvalidMaxSize(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	_, err := NewBlobStore(bucket, &config.MediaConfig{MaxFileSize: "lots"})
	assert.Error(t, err)
}

func TestBlobStore_PublicURLWithoutBase(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store, err := NewBlobStore(bucket, &config.MediaConfig{})
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "avatars", "a.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/avatars/"), url)
}
