package models_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmployee_Success(t *testing.T) {
	t.Parallel()

	employee, err := models.NewEmployee("Ana", 30, "Dev", true)

	require.NoError(t, err)
	assert.Equal(t, models.Employee{Name: "Ana", Age: 30, Position: "Dev", IsFullTime: true}, employee)
}

func TestNewEmployee_Bounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		age     int
		wantErr bool
	}{
		{name: "lower bound", age: 0},
		{name: "upper bound", age: 120},
		{name: "negative", age: -1, wantErr: true},
		{name: "too old", age: 121, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := models.NewEmployee("Ana", tt.age, "Dev", false)
			if tt.wantErr {
				require.ErrorIs(t, err, models.ErrInvalidEmployee)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewEmployee_CollectsEveryField(t *testing.T) {
	t.Parallel()

	employee, err := models.NewEmployee("", 500, "", true)

	require.Error(t, err)
	assert.Equal(t, models.Employee{}, employee)

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []models.FieldError{
		{Field: "name", Message: "must not be empty"},
		{Field: "age", Message: "must be between 0 and 120"},
		{Field: "position", Message: "must not be empty"},
	}, verr.Fields)
	assert.EqualError(t, err,
		"invalid employee: name: must not be empty; age: must be between 0 and 120; position: must not be empty")
}

func TestEmployee_SameName(t *testing.T) {
	t.Parallel()

	employee := models.Employee{Name: "Ana", Position: "Dev"}

	assert.True(t, employee.SameName("ana"))
	assert.True(t, employee.SameName("ANA"))
	assert.False(t, employee.SameName("Anabel"))
	assert.True(t, employee.SamePosition("dev"))
	assert.False(t, employee.SamePosition("Developer"))
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	t.Run("empty collection", func(t *testing.T) {
		t.Parallel()

		stats := models.ComputeStats(nil)

		assert.Equal(t, 0, stats.Total)
		assert.InDelta(t, 0.0, stats.FullTimePct, 0)
		assert.Nil(t, stats.AvgAge)
	})

	t.Run("two employees", func(t *testing.T) {
		t.Parallel()

		stats := models.ComputeStats([]models.Employee{
			{Name: "Ana", Age: 30, Position: "Dev", IsFullTime: true},
			{Name: "Bob", Age: 40, Position: "Dev", IsFullTime: false},
		})

		assert.Equal(t, 2, stats.Total)
		assert.InDelta(t, 50.0, stats.FullTimePct, 0)
		require.NotNil(t, stats.AvgAge)
		assert.InDelta(t, 35.0, *stats.AvgAge, 0)
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		t.Parallel()

		stats := models.ComputeStats([]models.Employee{
			{Name: "A", Age: 20, Position: "Dev", IsFullTime: true},
			{Name: "B", Age: 21, Position: "Dev", IsFullTime: false},
			{Name: "C", Age: 21, Position: "Dev", IsFullTime: false},
		})

		assert.InDelta(t, 33.33, stats.FullTimePct, 1e-9)
		require.NotNil(t, stats.AvgAge)
		assert.InDelta(t, 20.67, *stats.AvgAge, 1e-9)
	})

	t.Run("rounds the exact mean, not the scaled one", func(t *testing.T) {
		t.Parallel()

		employees := make([]models.Employee, 0, 40)
		for i := 0; i < 40; i++ {
			age := 30
			if i < 3 {
				age = 31
			}
			employees = append(employees, models.Employee{
				Name: fmt.Sprintf("E%02d", i), Age: age, Position: "Dev", IsFullTime: i%8 == 0,
			})
		}

		stats := models.ComputeStats(employees)

		assert.Equal(t, 40, stats.Total)
		require.NotNil(t, stats.AvgAge)
		assert.Equal(t, 30.07, *stats.AvgAge) //nolint:testifylint // exact rounding is the point
		assert.Equal(t, 12.5, stats.FullTimePct) //nolint:testifylint // exact rounding is the point
	})
}
