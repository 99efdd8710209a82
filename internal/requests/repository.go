package requests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/easel/pkg/pagination"
	"github.com/JaimeStill/easel/pkg/query"
	"github.com/JaimeStill/easel/pkg/repository"
	"github.com/JaimeStill/easel/pkg/storage"
)

// cleanupLimit bounds concurrent blob deletes during request removal.
const cleanupLimit = 8

type repo struct {
	db         *sql.DB
	prompts    PromptSource
	generator  Generator
	blobs      storage.BlobStore
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a request repository implementing System.
func New(
	db *sql.DB,
	prompts PromptSource,
	generator Generator,
	blobs storage.BlobStore,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		prompts:    prompts,
		generator:  generator,
		blobs:      blobs,
		logger:     logger.With("system", "requests"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Request], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryCount(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRequest)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Request, error) {
	req, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Prompts, err = r.prompts.ByRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	return req, nil
}

func (r *repo) Create(ctx context.Context) (*Request, error) {
	q := "INSERT INTO requests DEFAULT VALUES " + returning

	req, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Request, error) {
		return repository.QueryOne(ctx, tx, q, nil, scanRequest)
	})
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	r.logger.Info("request created", "id", req.ID)
	return &req, nil
}

// Generate deletes the prior output before storing the new one. If the row
// update then fails, the new blob is discarded and the request keeps a key
// whose blob is gone.
func (r *repo) Generate(ctx context.Context, id uuid.UUID) (*Request, error) {
	req, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	key, err := r.generator.Generate(ctx, req.OutputImage, req.Texts())
	if err != nil {
		return nil, fmt.Errorf("generate output: %w", err)
	}

	q := "UPDATE requests SET output_image = $1, updated_at = now() WHERE id = $2 " + returning

	updated, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Request, error) {
		return repository.QueryOne(ctx, tx, q, []any{key, id}, scanRequest)
	})
	if err != nil {
		if delErr := r.blobs.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repoErrors.Map(err)
	}

	updated.Prompts = req.Prompts

	r.logger.Info("request output generated", "id", id, "key", key, "prompts", len(req.Prompts))
	return &updated, nil
}

func (r *repo) Output(ctx context.Context, id uuid.UUID) (*storage.BlobResult, error) {
	req, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.OutputImage == nil {
		return nil, ErrNoOutput
	}

	return r.blobs.Open(ctx, *req.OutputImage)
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	req, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := r.removeBlobs(ctx, blobKeys(req)); err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, "DELETE FROM prompts WHERE request_id = $1", id); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM requests WHERE id = $1", id)
	})
	if err != nil {
		return repoErrors.Map(err)
	}

	r.logger.Info("request deleted", "id", id, "prompts", len(req.Prompts))
	return nil
}

func (r *repo) find(ctx context.Context, id uuid.UUID) (*Request, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	req, err := repository.QueryOne(ctx, r.db, q, args, scanRequest)
	if err != nil {
		return nil, repoErrors.Map(err)
	}
	return &req, nil
}

// removeBlobs deletes keys concurrently. Already missing blobs are skipped.
func (r *repo) removeBlobs(ctx context.Context, keys []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cleanupLimit)

	for _, key := range keys {
		g.Go(func() error {
			err := r.blobs.Delete(gctx, key)
			if errors.Is(err, storage.ErrNotFound) {
				r.logger.Warn("blob already missing", "key", key)
				return nil
			}
			if err != nil {
				return fmt.Errorf("delete blob %s: %w", key, err)
			}
			return nil
		})
	}

	return g.Wait()
}

func blobKeys(req *Request) []string {
	keys := make([]string, 0, len(req.Prompts)+1)
	if req.OutputImage != nil {
		keys = append(keys, *req.OutputImage)
	}
	for _, p := range req.Prompts {
		if p.Image != nil {
			keys = append(keys, *p.Image)
		}
	}
	return keys
}
