package api

import (
	"github.com/rs/zerolog"

	"github.com/docbolt/docbolt/pkg/domain"
)

// Handler provides HTTP handlers for the database API
type Handler struct {
	storage domain.DatabaseEngine
	logger  zerolog.Logger
}

// NewHandler creates a new API handler with dependency injection
func NewHandler(storage domain.DatabaseEngine, logger zerolog.Logger) *Handler {
	return &Handler{
		storage: storage,
		logger:  logger,
	}
}
