package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/services/staff"
)

const maxBodyBytes = 1 << 20

var (
	errTrailingData = errors.New("unexpected data after the JSON body")
	errNotInteger   = errors.New("must be a whole number")
)

// Handler serves the employees and stats endpoints.
type Handler struct {
	log *slog.Logger
	svc EmployeeService
}

// New creates the employees handler.
func New(log *slog.Logger, svc EmployeeService) *Handler {
	return &Handler{log: log, svc: svc}
}

// RegisterRoutes registers the employee routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees", h.handleList)
	r.Post("/employees", h.handleInsert)
	r.Put("/employees/{name}", h.handleUpdate)
	r.Delete("/employees/{name}", h.handleDelete)
	r.Get("/stats", h.handleStats)
}

// employeePayload is the request body. Pointers tell a missing field from a zero value.
type employeePayload struct {
	Name       *string             `json:"name"`
	Age        *json.Number        `json:"age"`
	Position   *string             `json:"position"`
	IsFullTime models.FullTimeFlag `json:"is_full_time"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.List(r.Context(), r.URL.Query().Get("position"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, employees)
}

func (h *Handler) handleInsert(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}

	created, err := h.svc.Insert(r.Context(), candidate)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	name, ok := h.pathName(w, r)
	if !ok {
		return
	}

	replacement, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}

	updated, err := h.svc.UpdateByName(r.Context(), name, replacement)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	name, ok := h.pathName(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteByName(r.Context(), name); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, stats)
}

// pathName returns the decoded {name} segment. chi routes on the raw path when
// the request carries one, leaving the parameter escaped.
func (h *Handler) pathName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, true
	}

	name, err := url.PathUnescape(name)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid employee name in path")
		return "", false
	}

	return name, true
}

// decodeEmployee reads the body and builds a validated employee, answering 422 otherwise.
func (h *Handler) decodeEmployee(w http.ResponseWriter, r *http.Request) (models.Employee, bool) {
	var payload employeePayload

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(&payload)
	if err == nil {
		err = expectEOF(dec)
	}
	if err != nil {
		h.log.DebugContext(r.Context(), "invalid request body", sl.Err(err))
		h.respondValidation(w, r, "invalid request body", []models.FieldError{{Field: "body", Message: err.Error()}})
		return models.Employee{}, false
	}

	verr := &models.ValidationError{}
	if payload.Name == nil {
		verr.Add("name", "field required")
	}
	var age int
	if payload.Age == nil {
		verr.Add("age", "field required")
	} else if age, err = wholeNumber(*payload.Age); err != nil {
		verr.Add("age", err.Error())
	}
	if payload.Position == nil {
		verr.Add("position", "field required")
	}
	isFullTime, flagErr := payload.IsFullTime.Resolve()
	if flagErr != nil {
		verr.Fields = append(verr.Fields, *flagErr)
	}
	if len(verr.Fields) > 0 {
		h.respondValidation(w, r, "invalid employee", verr.Fields)
		return models.Employee{}, false
	}

	employee, err := models.NewEmployee(*payload.Name, age, *payload.Position, isFullTime)
	if err != nil {
		h.respondServiceError(w, r, err)
		return models.Employee{}, false
	}

	return employee, true
}

// expectEOF rejects anything but whitespace after the first JSON value.
func expectEOF(dec *json.Decoder) error {
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return errTrailingData
	}

	return nil
}

// wholeNumber accepts integers and floats without a fractional part, like 30.0.
func wholeNumber(num json.Number) (int, error) {
	if n, err := num.Int64(); err == nil && n >= math.MinInt32 && n <= math.MaxInt32 {
		return int(n), nil
	}

	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, errNotInteger
	}

	return int(f), nil
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError

	switch {
	case errors.As(err, &verr):
		h.respondValidation(w, r, "invalid employee", verr.Fields)
	case errors.Is(err, staff.ErrConflict):
		h.respondError(w, r, http.StatusConflict, staff.ErrConflict.Error())
	case errors.Is(err, staff.ErrNotFound):
		h.respondError(w, r, http.StatusNotFound, staff.ErrNotFound.Error())
	case errors.Is(err, repository.ErrDataCorruption):
		h.log.ErrorContext(r.Context(), "employee data is corrupted", sl.Err(err))
		h.respondError(w, r, http.StatusInternalServerError, repository.ErrDataCorruption.Error())
	default:
		h.log.ErrorContext(r.Context(), "request failed", sl.Err(err))
		h.respondError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
