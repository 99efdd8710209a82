package requests

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/easel/pkg/pagination"
	"github.com/JaimeStill/easel/pkg/storage"
)

// System defines the public contract for request operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Request], error)

	// Find returns the request with its prompts in generation order.
	Find(ctx context.Context, id uuid.UUID) (*Request, error)
	Create(ctx context.Context) (*Request, error)

	// Generate replaces the request's output image with one selected from
	// the concatenated prompt text.
	Generate(ctx context.Context, id uuid.UUID) (*Request, error)

	// Output opens the output image. The caller must close Body.
	Output(ctx context.Context, id uuid.UUID) (*storage.BlobResult, error)

	// Delete frees the output and prompt image blobs, then removes the
	// request and its prompts.
	Delete(ctx context.Context, id uuid.UUID) error
}
