package handler

import (
	"context"

	"github.com/folio-cms/folio/backend/internal/service"
	"github.com/folio-cms/folio/shared/config"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	messages service.MessagesService
	auth     service.AuthService
	content  service.ContentService
	media    service.MediaService
	health   HealthChecker
	cfg      *config.Config
}

func New(messages service.MessagesService, auth service.AuthService, content service.ContentService, media service.MediaService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		messages: messages,
		auth:     auth,
		content:  content,
		media:    media,
		health:   health,
		cfg:      cfg,
	}
}
