package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
)

type StorePinger interface {
	Ping(ctx context.Context) error
}

type CollectionLoader interface {
	Load(ctx context.Context) ([]models.Employee, error)
}

// StoreChecker is what the health check needs from the backing store.
type StoreChecker interface {
	StorePinger
	CollectionLoader
}

type HealthChecker struct {
	store StoreChecker
	log   *slog.Logger
}

func NewHealthChecker(store StoreChecker, log *slog.Logger) *HealthChecker {
	return &HealthChecker{
		store: store,
		log:   log,
	}
}

func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.log.DebugContext(req.Context(), "Performing health checks...")

	var err error
	status := make(map[string]string)
	overallStatus := http.StatusOK

	if err = h.store.Ping(req.Context()); err != nil {
		status["storage"] = "unavailable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(req.Context(), "Health check failed: storage ping", sl.Err(err))
	} else {
		status["storage"] = "ok"
	}

	_, err = h.store.Load(req.Context())
	switch {
	case err == nil:
		status["data"] = "ok"
	case errors.Is(err, repository.ErrDataCorruption):
		status["data"] = "corrupted"
		overallStatus = http.StatusServiceUnavailable
		h.log.ErrorContext(req.Context(), "Health check failed: employee data is corrupted", sl.Err(err))
	default:
		status["data"] = "unavailable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(req.Context(), "Health check failed: employee data unreadable", sl.Err(err))
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if err = json.NewEncoder(writer).Encode(status); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write health check response", sl.Err(err))
	}

	h.log.DebugContext(req.Context(), "Health checks completed", "status", overallStatus)
}
