package storage

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func fileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestReadImage(t *testing.T) {
	img, err := ReadImage(fileHeader(t, "dish.PNG", pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, ".png", img.Ext)
	assert.Equal(t, pngHeader, img.Data)
}

func TestReadImageRejectsWrongType(t *testing.T) {
	_, err := ReadImage(fileHeader(t, "notes.txt", []byte("just text")))
	assert.ErrorIs(t, err, ErrImageType)

	// right extension, wrong content
	_, err = ReadImage(fileHeader(t, "fake.jpg", []byte("just text")))
	assert.ErrorIs(t, err, ErrImageType)
}

func TestReadImageRejectsLargeFiles(t *testing.T) {
	big := append(append([]byte{}, pngHeader...), make([]byte, MaxImageSize)...)
	_, err := ReadImage(fileHeader(t, "big.png", big))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestLocalStore(t *testing.T) {
	root := filepath.Join(t.TempDir(), "public")
	store, err := NewLocal(root, "http://kitchen.test/")
	require.NoError(t, err)

	key, err := Save(context.Background(), store, "recipes", &Image{Data: pngHeader, ContentType: "image/png", Ext: ".png"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "recipes/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	assert.Equal(t, "http://kitchen.test/storage/"+key, store.URL(key))
	assert.Equal(t, "http://kitchen.test/storage/"+key, *URLFor(store, &key))
	assert.Nil(t, URLFor(store, nil))

	require.NoError(t, store.Delete(context.Background(), key))
	assert.ErrorIs(t, store.Delete(context.Background(), key), ErrNotFound)
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "http://kitchen.test")
	require.NoError(t, err)

	assert.Error(t, store.Put(context.Background(), "../escape.png", "image/png", pngHeader))
	assert.Error(t, store.Put(context.Background(), "/etc/passwd", "text/plain", pngHeader))
}

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		b.objects[r.URL.Path] = data
		b.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(b.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3Store(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(bucket)
	defer srv.Close()

	store, err := NewS3(context.Background(), S3Config{
		Bucket:    "kitchen",
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "cuisines/thai.png", "image/png", pngHeader))
	assert.Equal(t, pngHeader, bucket.objects["/kitchen/cuisines/thai.png"])
	assert.Equal(t, "image/png", bucket.types["/kitchen/cuisines/thai.png"])
	assert.Equal(t, srv.URL+"/kitchen/cuisines/thai.png", store.URL("cuisines/thai.png"))

	require.NoError(t, store.Delete(context.Background(), "cuisines/thai.png"))
	assert.Empty(t, bucket.objects)
}

func TestS3PublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://kitchen.s3.eu-west-1.amazonaws.com",
		publicBaseURL(S3Config{Bucket: "kitchen", Region: "eu-west-1"}))
	assert.Equal(t, "https://cdn.kitchen.test",
		publicBaseURL(S3Config{Bucket: "kitchen", PublicURL: "https://cdn.kitchen.test/"}))
}
