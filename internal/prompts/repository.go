package prompts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/easel/pkg/formatting"
	"github.com/JaimeStill/easel/pkg/pagination"
	"github.com/JaimeStill/easel/pkg/query"
	"github.com/JaimeStill/easel/pkg/repository"
	"github.com/JaimeStill/easel/pkg/storage"
)

type repo struct {
	db         *sql.DB
	blobs      storage.BlobStore
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a prompt repository implementing System.
func New(
	db *sql.DB,
	blobs storage.BlobStore,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		blobs:      blobs,
		logger:     logger.With("system", "prompts"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Prompt], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Text")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryCount(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count prompts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repoErrors.Map(err)
	}
	return &p, nil
}

func (r *repo) ByRequest(ctx context.Context, requestID uuid.UUID) ([]Prompt, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("RequestID", requestID).
		OrderByFields(requestOrder).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query request prompts: %w", err)
	}
	return items, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Prompt, error) {
	var image *string
	if len(cmd.Image) > 0 {
		key, err := r.blobs.Create(ctx, cmd.Image)
		if err != nil {
			return nil, fmt.Errorf("store prompt image: %w", err)
		}
		image = &key
	}

	q := "INSERT INTO prompts(text, image, request_id) VALUES ($1, $2, $3) " + returning
	args := []any{cmd.Text, image, cmd.RequestID}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})
	if err != nil {
		if image != nil {
			r.discard(ctx, *image)
		}
		return nil, repoErrors.Map(err)
	}

	r.logger.Info(
		"prompt created",
		"id", p.ID,
		"image", formatting.FormatBytes(int64(len(cmd.Image)), 1),
	)
	return &p, nil
}

// Update replaces text and reconciles the image with at most one storage call:
// overwrite in place, create, or delete.
func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error) {
	existing, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	image := existing.Image
	var created *string

	switch {
	case len(cmd.Image) > 0 && existing.Image != nil:
		if err := r.blobs.Update(ctx, *existing.Image, cmd.Image); err != nil {
			return nil, fmt.Errorf("replace prompt image: %w", err)
		}
	case len(cmd.Image) > 0:
		key, err := r.blobs.Create(ctx, cmd.Image)
		if err != nil {
			return nil, fmt.Errorf("store prompt image: %w", err)
		}
		image = &key
		created = &key
	case existing.Image != nil:
		if err := r.removeBlob(ctx, *existing.Image); err != nil {
			return nil, err
		}
		image = nil
	}

	q := "UPDATE prompts SET text = $1, image = $2, updated_at = now() WHERE id = $3 " + returning
	args := []any{cmd.Text, image, id}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})
	if err != nil {
		if created != nil {
			r.discard(ctx, *created)
		}
		return nil, repoErrors.Map(err)
	}

	r.logger.Info("prompt updated", "id", p.ID, "has_image", p.Image != nil)
	return &p, nil
}

// Delete frees the image blob before removing the row. The two steps are not
// atomic: a failed row delete leaves the prompt without its blob.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	if p.Image != nil {
		if err := r.removeBlob(ctx, *p.Image); err != nil {
			return err
		}
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM prompts WHERE id = $1", id)
	})
	if err != nil {
		return repoErrors.Map(err)
	}

	r.logger.Info("prompt deleted", "id", id)
	return nil
}

func (r *repo) Image(ctx context.Context, id uuid.UUID) (*storage.BlobResult, error) {
	p, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Image == nil {
		return nil, ErrNoImage
	}

	return r.blobs.Open(ctx, *p.Image)
}

// removeBlob deletes key, treating an already missing blob as removed.
func (r *repo) removeBlob(ctx context.Context, key string) error {
	err := r.blobs.Delete(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		r.logger.Warn("prompt image already missing", "key", key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete prompt image: %w", err)
	}
	return nil
}

func (r *repo) discard(ctx context.Context, key string) {
	if err := r.blobs.Delete(ctx, key); err != nil {
		r.logger.Warn("compensating blob delete failed", "key", key, "error", err)
	}
}
