package setup

import (
	"context"
	"fmt"

	"github.com/folio-cms/folio/backend/internal/handler"
	"github.com/folio-cms/folio/backend/internal/service"
	"github.com/folio-cms/folio/backend/internal/storage/fs"
	"github.com/folio-cms/folio/backend/internal/storage/memory"
	"github.com/folio-cms/folio/backend/internal/storage/pg"
	"github.com/folio-cms/folio/shared/config"
	"github.com/folio-cms/folio/shared/jwt"
	"github.com/folio-cms/folio/shared/logger"
	"github.com/folio-cms/folio/shared/markdown"
	"github.com/folio-cms/folio/shared/middleware"
	sharedpg "github.com/folio-cms/folio/shared/storage/pg"
)

// Storage is everything the services need from a backing store.
type Storage interface {
	service.MessageStorage
	service.UserStorage
	service.AdminRegistry
	service.ContentStorage
	Ping(ctx context.Context) error
	Cleanup() error
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Jwt            jwt.JwtService
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return Wire(cfg, storage)
}

// Wire builds the services and handler on top of an existing store.
func Wire(cfg *config.Config, storage Storage) (*Dependencies, error) {
	blobs, err := fs.New(cfg.Public.Media.Root)
	if err != nil {
		return nil, fmt.Errorf("media storage: %w", err)
	}

	tokens := jwt.New([]byte(cfg.JwtKey()), cfg.JwtTTL())
	identity := service.NewIdentity(tokens, storage)

	messages := service.NewMessages(identity, storage)
	auth := service.NewAuth(storage, tokens, identity)
	content := service.NewContent(storage, markdown.New())
	media := service.NewMedia(blobs, cfg.Public.Media)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        handler.New(messages, auth, content, media, storage, cfg),
		AuthMiddleware: middleware.NewAuth(identity, cfg.Public.Http.SecureCookies),
		Jwt:            tokens,
	}, nil
}

func newStorage(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Public.Storage {
	case config.StoragePg:
		storage, err := pg.New(ctx, cfg.Private.Pg, sharedpg.DefaultConnectionConfig())
		if err != nil {
			return nil, err
		}
		return storage, nil
	case config.StorageMemory:
		logger.Log.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Public.Storage)
	}
}
