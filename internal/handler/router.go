package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

// EmployeeService is the set of collection operations the HTTP layer exposes.
type EmployeeService interface {
	List(ctx context.Context, position string) ([]models.Employee, error)
	Insert(ctx context.Context, candidate models.Employee) (models.Employee, error)
	UpdateByName(ctx context.Context, key string, replacement models.Employee) (models.Employee, error)
	DeleteByName(ctx context.Context, key string) error
	Stats(ctx context.Context) (models.Stats, error)
}

// NewRouter wires HTTP routes to the employee service.
func NewRouter(log *slog.Logger, svc EmployeeService, appMetrics *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(Instrument(appMetrics))
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	employeeHandler := New(log, svc)
	employeeHandler.RegisterRoutes(r)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		employeeHandler.respondError(w, req, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		employeeHandler.respondError(w, req, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}
