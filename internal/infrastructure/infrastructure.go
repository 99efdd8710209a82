// Package infrastructure assembles the shared systems every domain needs:
// lifecycle coordination, logging, the database pool, and blob storage.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/easel/internal/config"
	"github.com/JaimeStill/easel/pkg/database"
	"github.com/JaimeStill/easel/pkg/lifecycle"
	"github.com/JaimeStill/easel/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Images and Outputs are key-assigning views over Storage, one per prefix.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Images    storage.BlobStore
	Outputs   storage.BlobStore
}

// New creates an Infrastructure from the application configuration.
// Systems are constructed but not started; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Images:    storage.NewBlobStore(store, cfg.Generator.ImagePrefix),
		Outputs:   storage.NewBlobStore(store, cfg.Generator.OutputPrefix),
	}, nil
}

// Start registers database and storage hooks with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
