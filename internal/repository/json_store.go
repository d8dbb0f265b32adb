package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/google/renameio/v2"
)

const (
	backendJSON  = "json"
	dataFileMode = 0o644
)

// JSONStore implements Store using a single JSON document on disk.
type JSONStore struct {
	path       string
	stagingDir string
	metrics    *metrics.Metrics
}

// employeeRecord mirrors the persisted layout. Pointers tell a missing key from a zero value.
type employeeRecord struct {
	Name       *string             `json:"name"`
	Age        *int                `json:"age"`
	Position   *string             `json:"position"`
	IsFullTime models.FullTimeFlag `json:"is_full_time"`
}

func NewJSONStore(path string, appMetrics *metrics.Metrics) *JSONStore {
	return &JSONStore{path: path, stagingDir: filepath.Dir(path), metrics: appMetrics}
}

// Path returns the location of the backing document.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads and validates the whole document.
func (s *JSONStore) Load(_ context.Context) ([]models.Employee, error) {
	defer observe(s.metrics, backendJSON, "load", time.Now())

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.metrics.Employees.Set(0)
			return []models.Employee{}, nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var records *[]*employeeRecord
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, corrupted("failed to unmarshal data file %s: %v", s.path, err)
	}
	if records == nil {
		return nil, corrupted("data file %s does not hold a list", s.path)
	}

	employees := make([]models.Employee, 0, len(*records))
	for i, record := range *records {
		employee, recErr := record.toEmployee()
		if recErr != nil {
			return nil, corrupted("record %d: %v", i, recErr)
		}
		employees = append(employees, employee)
	}

	s.metrics.Employees.Set(float64(len(employees)))

	return employees, nil
}

// Save writes the whole collection to a pending file next to the document and
// renames it over the document.
func (s *JSONStore) Save(_ context.Context, employees []models.Employee) error {
	defer observe(s.metrics, backendJSON, "save", time.Now())

	if err := validateAll(employees); err != nil {
		return fmt.Errorf("refusing to save employees: %w", err)
	}
	if employees == nil {
		employees = []models.Employee{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(employees); err != nil {
		return fmt.Errorf("failed to marshal employees: %w", err)
	}

	if err := renameio.WriteFile(s.path, buf.Bytes(), dataFileMode, renameio.WithTempDir(s.stagingDir)); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}

	s.metrics.Employees.Set(float64(len(employees)))

	return nil
}

// Ping checks that the directory holding the document exists.
func (s *JSONStore) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to stat data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory %s is not a directory", dir)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (r *employeeRecord) toEmployee() (models.Employee, error) {
	if r == nil {
		return models.Employee{}, errors.New("record is null")
	}

	verr := &models.ValidationError{}
	if r.Name == nil {
		verr.Add("name", "is required")
	}
	if r.Age == nil {
		verr.Add("age", "is required")
	}
	if r.Position == nil {
		verr.Add("position", "is required")
	}
	isFullTime, flagErr := r.IsFullTime.Resolve()
	if flagErr != nil {
		verr.Fields = append(verr.Fields, *flagErr)
	}
	if len(verr.Fields) > 0 {
		return models.Employee{}, verr
	}

	return models.NewEmployee(*r.Name, *r.Age, *r.Position, isFullTime)
}
