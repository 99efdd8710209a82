package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/google/uuid"
)

// BlobStore stores opaque binary content under keys it assigns.
// Domain packages hold keys, never paths or URLs.
type BlobStore interface {
	// Create stores data under a new key and returns it.
	Create(ctx context.Context, data []byte) (string, error)
	// Update overwrites the content at an existing key.
	// Returns ErrNotFound if nothing is stored at key.
	Update(ctx context.Context, key string, data []byte) error
	// Delete removes the content at key. Returns ErrNotFound if nothing is stored at key.
	Delete(ctx context.Context, key string) error
	// Open streams the content at key. The caller must close Body.
	Open(ctx context.Context, key string) (*BlobResult, error)
}

type blobStore struct {
	sys    System
	prefix string
}

// NewBlobStore creates a BlobStore that writes under prefix in sys.
// Keys take the form "<prefix>/<uuid>".
func NewBlobStore(sys System, prefix string) BlobStore {
	return &blobStore{sys: sys, prefix: prefix}
}

func (b *blobStore) Create(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyContent
	}

	key := path.Join(b.prefix, uuid.NewString())
	if err := b.upload(ctx, key, data); err != nil {
		return "", err
	}
	return key, nil
}

func (b *blobStore) Update(ctx context.Context, key string, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyContent
	}

	exists, err := b.sys.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("update blob %s: %w", key, ErrNotFound)
	}

	return b.upload(ctx, key, data)
}

func (b *blobStore) Delete(ctx context.Context, key string) error {
	return b.sys.Delete(ctx, key)
}

func (b *blobStore) Open(ctx context.Context, key string) (*BlobResult, error) {
	return b.sys.Download(ctx, key)
}

func (b *blobStore) upload(ctx context.Context, key string, data []byte) error {
	return b.sys.Upload(ctx, key, bytes.NewReader(data), DetectContentType(data))
}

// DetectContentType sniffs the media type of data, falling back to
// application/octet-stream.
func DetectContentType(data []byte) string {
	return http.DetectContentType(data[:min(len(data), 512)])
}

// ReadAll drains and closes a BlobResult body.
func ReadAll(result *BlobResult) ([]byte, error) {
	defer result.Body.Close()
	return io.ReadAll(result.Body)
}
