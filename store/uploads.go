package store

import (
	"context"
	"io"
)

// ImageUploader stores a product image and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}
