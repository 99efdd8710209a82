// Package generator produces request output images by matching keywords in
// prompt text against a fixed table of bundled samples.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/easel/pkg/formatting"
	"github.com/JaimeStill/easel/pkg/storage"
)

// Generator stores the selected sample as a new blob, replacing any prior output.
type Generator struct {
	selector *Selector
	blobs    storage.BlobStore
	logger   *slog.Logger
}

func New(selector *Selector, blobs storage.BlobStore, logger *slog.Logger) *Generator {
	return &Generator{
		selector: selector,
		blobs:    blobs,
		logger:   logger.With("system", "generator"),
	}
}

// Generate deletes prior (when set), selects a sample for the concatenated
// texts, and stores it. It returns the key of the new output blob.
// A prior key that is already gone from storage is not an error.
func (g *Generator) Generate(ctx context.Context, prior *string, texts []string) (string, error) {
	if prior != nil {
		if err := g.blobs.Delete(ctx, *prior); err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				return "", fmt.Errorf("delete prior output: %w", err)
			}
			g.logger.Warn("prior output already missing", "key", *prior)
		}
	}

	name := g.selector.Select(Concat(texts))

	data, err := g.selector.Read(name)
	if err != nil {
		return "", err
	}

	key, err := g.blobs.Create(ctx, data)
	if err != nil {
		return "", fmt.Errorf("store output: %w", err)
	}

	g.logger.Info(
		"output generated",
		"sample", name,
		"key", key,
		"prompts", len(texts),
		"size", formatting.FormatBytes(int64(len(data)), 1),
	)

	return key, nil
}

func (g *Generator) Selector() *Selector {
	return g.selector
}
