package prompts

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/easel/pkg/pagination"
	"github.com/JaimeStill/easel/pkg/storage"
)

// System defines the public contract for prompt operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Prompt], error)

	Find(ctx context.Context, id uuid.UUID) (*Prompt, error)

	// ByRequest returns the prompts attached to a request, oldest first.
	ByRequest(ctx context.Context, requestID uuid.UUID) ([]Prompt, error)

	Create(ctx context.Context, cmd CreateCommand) (*Prompt, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Image opens the prompt's image blob. The caller must close Body.
	Image(ctx context.Context, id uuid.UUID) (*storage.BlobResult, error)
}
