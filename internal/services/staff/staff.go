package staff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
)

var (
	ErrConflict = errors.New("a collaborator with this name already exists")
	ErrNotFound = errors.New("collaborator not found")
)

const (
	opList   = "list"
	opInsert = "insert"
	opUpdate = "update"
	opDelete = "delete"
	opStats  = "stats"
)

// Staff implements the operations over the employee collection. Each operation
// loads the full collection, computes, and saves it back when it mutates.
// Mutations hold an exclusive lock across the whole load, compute, save span.
type Staff struct {
	log     *slog.Logger
	store   repository.Store
	metrics *metrics.Metrics
	mu      sync.RWMutex
}

func NewStaff(log *slog.Logger, store repository.Store, appMetrics *metrics.Metrics) *Staff {
	return &Staff{log: log, store: store, metrics: appMetrics}
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		sl.Op(opn),
		slog.String("division", "employee"),
	)
}

// List returns every employee, or only those holding position when it is not empty.
func (s *Staff) List(ctx context.Context, position string) (_ []models.Employee, err error) {
	const opn = "Staff.List"
	log := s.initLogger(opn)
	defer s.track(opList, time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	employees, err := s.store.Load(ctx)
	if err != nil {
		log.ErrorContext(ctx, "failed to load employees", sl.Err(err))
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	if position == "" {
		return employees, nil
	}

	filtered := make([]models.Employee, 0, len(employees))
	for _, employee := range employees {
		if employee.SamePosition(position) {
			filtered = append(filtered, employee)
		}
	}
	log.DebugContext(ctx, "filtered employees by position", "position", position, "count", len(filtered))

	return filtered, nil
}

// Insert appends candidate to the collection unless its name is already taken, ignoring case.
func (s *Staff) Insert(ctx context.Context, candidate models.Employee) (_ models.Employee, err error) {
	const opn = "Staff.Insert"
	log := s.initLogger(opn)
	defer s.track(opInsert, time.Now(), &err)

	if err = candidate.Validate(); err != nil {
		return models.Employee{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	employees, err := s.store.Load(ctx)
	if err != nil {
		log.ErrorContext(ctx, "failed to load employees", sl.Err(err))
		return models.Employee{}, fmt.Errorf("failed to load employees: %w", err)
	}

	if indexByName(employees, candidate.Name) >= 0 {
		log.InfoContext(ctx, "employee already exists", "name", candidate.Name)
		return models.Employee{}, ErrConflict
	}

	employees = append(employees, candidate)
	if err = s.store.Save(ctx, employees); err != nil {
		log.ErrorContext(ctx, "failed to save employees", sl.Err(err))
		return models.Employee{}, fmt.Errorf("failed to save new employee '%s': %w", candidate.Name, err)
	}

	log.InfoContext(ctx, "employee added", "name", candidate.Name)

	return candidate, nil
}

// UpdateByName replaces the first employee named key, ignoring case, with replacement.
// The replacement may carry a different name; the new name is not checked for uniqueness.
func (s *Staff) UpdateByName(
	ctx context.Context,
	key string,
	replacement models.Employee,
) (_ models.Employee, err error) {
	const opn = "Staff.UpdateByName"
	log := s.initLogger(opn)
	defer s.track(opUpdate, time.Now(), &err)

	if err = replacement.Validate(); err != nil {
		return models.Employee{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	employees, err := s.store.Load(ctx)
	if err != nil {
		log.ErrorContext(ctx, "failed to load employees", sl.Err(err))
		return models.Employee{}, fmt.Errorf("failed to load employees: %w", err)
	}

	idx := indexByName(employees, key)
	if idx < 0 {
		log.DebugContext(ctx, "employee not found", "name", key)
		return models.Employee{}, ErrNotFound
	}

	employees[idx] = replacement
	if err = s.store.Save(ctx, employees); err != nil {
		log.ErrorContext(ctx, "failed to save employees", sl.Err(err))
		return models.Employee{}, fmt.Errorf("failed to update employee '%s': %w", key, err)
	}

	log.InfoContext(ctx, "employee updated", "name", key, "new_name", replacement.Name)

	return replacement, nil
}

// DeleteByName removes the first employee named key, ignoring case.
func (s *Staff) DeleteByName(ctx context.Context, key string) (err error) {
	const opn = "Staff.DeleteByName"
	log := s.initLogger(opn)
	defer s.track(opDelete, time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	employees, err := s.store.Load(ctx)
	if err != nil {
		log.ErrorContext(ctx, "failed to load employees", sl.Err(err))
		return fmt.Errorf("failed to load employees: %w", err)
	}

	idx := indexByName(employees, key)
	if idx < 0 {
		log.DebugContext(ctx, "employee not found", "name", key)
		return ErrNotFound
	}

	employees = slices.Delete(employees, idx, idx+1)
	if err = s.store.Save(ctx, employees); err != nil {
		log.ErrorContext(ctx, "failed to save employees", sl.Err(err))
		return fmt.Errorf("failed to delete employee '%s': %w", key, err)
	}

	log.InfoContext(ctx, "employee deleted", "name", key)

	return nil
}

// Stats aggregates the current collection.
func (s *Staff) Stats(ctx context.Context) (_ models.Stats, err error) {
	const opn = "Staff.Stats"
	log := s.initLogger(opn)
	defer s.track(opStats, time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	employees, err := s.store.Load(ctx)
	if err != nil {
		log.ErrorContext(ctx, "failed to load employees", sl.Err(err))
		return models.Stats{}, fmt.Errorf("failed to load employees: %w", err)
	}

	return models.ComputeStats(employees), nil
}

// indexByName returns the position of the first employee named name, or -1.
func indexByName(employees []models.Employee, name string) int {
	return slices.IndexFunc(employees, func(e models.Employee) bool {
		return e.SameName(name)
	})
}

func (s *Staff) track(operation string, startTime time.Time, errp *error) {
	s.metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(startTime).Seconds())
	s.metrics.Operations.WithLabelValues(operation, Outcome(*errp)).Inc()
}

// Outcome classifies an operation error into a short status label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, models.ErrInvalidEmployee):
		return "invalid"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrDataCorruption):
		return "corrupted"
	default:
		return "error"
	}
}
