package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

// ErrDataCorruption is returned when the backing store exists but its content
// cannot be read back as a valid employee collection.
var ErrDataCorruption = errors.New("employee data is corrupted")

// Store owns the persisted employee collection. Every call goes to the backing
// store, nothing is cached between calls.
type Store interface {
	// Load returns the whole collection in stored order. A missing backing store is an empty collection.
	Load(ctx context.Context) ([]models.Employee, error)
	// Save replaces the whole collection. The previous content survives a failed save.
	Save(ctx context.Context, employees []models.Employee) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
	// Close releases the backing store handle.
	Close() error
}

// NewStore creates a Store for the configured backend.
func NewStore(ctx context.Context, cfg *config.Config, appMetrics *metrics.Metrics) (Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendJSON, "":
		return NewJSONStore(cfg.Storage.Path, appMetrics), nil
	case config.BackendPostgres:
		dbpool, err := NewDatabase(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(dbpool, appMetrics), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

func corrupted(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDataCorruption, fmt.Sprintf(format, args...))
}

func validateAll(employees []models.Employee) error {
	for i, employee := range employees {
		if err := employee.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	return nil
}

func observe(appMetrics *metrics.Metrics, backend, queryType string, startTime time.Time) {
	duration := time.Since(startTime).Seconds()
	appMetrics.StoreQueryDuration.WithLabelValues(backend, queryType).Observe(duration)
}
