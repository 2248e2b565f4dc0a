package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize matches the 2048 KB upload limit the frontend enforces.
const MaxImageSize = 2048 * 1024

var (
	ErrImageTooLarge = errors.New("the image may not be greater than 2048 kilobytes")
	ErrImageType     = errors.New("the image must be a file of type: jpeg, png, jpg, webp")
	ErrNotFound      = errors.New("object not found")
)

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var imageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

// Store keeps uploaded files under slash separated keys such as
// "recipes/5b0c....jpg". Keys are what the database stores.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Image is an upload that passed validation and is ready to be stored.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
}

// ReadImage loads a multipart upload and checks its size and content type.
func ReadImage(fh *multipart.FileHeader) (*Image, error) {
	if fh.Size > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	if ext := strings.ToLower(path.Ext(fh.Filename)); !imageExtensions[ext] {
		return nil, ErrImageType
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageTypes[contentType]
	if !ok {
		return nil, ErrImageType
	}
	return &Image{Data: data, ContentType: contentType, Ext: ext}, nil
}

// Save writes img under dir with a random name and returns its key.
func Save(ctx context.Context, s Store, dir string, img *Image) (string, error) {
	key := path.Join(dir, uuid.NewString()+img.Ext)
	if err := s.Put(ctx, key, img.ContentType, img.Data); err != nil {
		return "", fmt.Errorf("store %s: %w", key, err)
	}
	return key, nil
}

// URLFor returns nil for an unset key so JSON renders image_url as null.
func URLFor(s Store, key *string) *string {
	if key == nil || *key == "" {
		return nil
	}
	u := s.URL(*key)
	return &u
}
