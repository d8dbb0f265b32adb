package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

const backendPostgres = "postgres"

const (
	loadEmployeesQuery  = `SELECT name, age, position, is_full_time FROM employees ORDER BY ordinal`
	clearEmployeesQuery = `DELETE FROM employees`
	insertEmployeeQuery = `
		INSERT INTO employees (ordinal, name, age, position, is_full_time)
		VALUES ($1, $2, $3, $4, $5);
	`
)

// PostgresStore implements Store on the `employees` table. The ordinal column keeps insertion order.
type PostgresStore struct {
	db      Database
	metrics *metrics.Metrics
}

func NewPostgresStore(db Database, appMetrics *metrics.Metrics) *PostgresStore {
	return &PostgresStore{db: db, metrics: appMetrics}
}

// Load retrieves the whole collection ordered by ordinal.
func (s *PostgresStore) Load(ctx context.Context) ([]models.Employee, error) {
	defer observe(s.metrics, backendPostgres, "load", time.Now())

	rows, err := s.db.Query(ctx, loadEmployeesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var (
			name, position string
			age            int
			isFullTime     bool
		)
		if err = rows.Scan(&name, &age, &position, &isFullTime); err != nil {
			return nil, corrupted("failed to scan employee row %d: %v", len(employees), err)
		}

		employee, valErr := models.NewEmployee(name, age, position, isFullTime)
		if valErr != nil {
			return nil, corrupted("record %d: %v", len(employees), valErr)
		}
		employees = append(employees, employee)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	s.metrics.Employees.Set(float64(len(employees)))

	return employees, nil
}

// Save replaces the table content in a single transaction.
func (s *PostgresStore) Save(ctx context.Context, employees []models.Employee) error {
	defer observe(s.metrics, backendPostgres, "save", time.Now())

	if err := validateAll(employees); err != nil {
		return fmt.Errorf("refusing to save employees: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err = tx.Exec(ctx, clearEmployeesQuery); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to clear employees: %w", err)
	}

	for i, employee := range employees {
		_, err = tx.Exec(ctx, insertEmployeeQuery,
			i, employee.Name, employee.Age, employee.Position, employee.IsFullTime)
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to save employee '%s': %w", employee.Name, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit employees: %w", err)
	}

	s.metrics.Employees.Set(float64(len(employees)))

	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
