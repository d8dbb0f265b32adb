package models

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinAge = 0
	MaxAge = 120
)

// ErrInvalidEmployee is matched by every ValidationError.
var ErrInvalidEmployee = errors.New("invalid employee")

// Employee represents an employee entity. Name is the natural key of the collection.
type Employee struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Position   string `json:"position"`
	IsFullTime bool   `json:"is_full_time"`
}

// FieldError describes a single violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every constraint an employee candidate violates.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return fmt.Sprintf("%s: %s", ErrInvalidEmployee.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidEmployee
}

// Add appends a field violation.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// NewEmployee builds an Employee and rejects it if any field constraint is violated.
func NewEmployee(name string, age int, position string, isFullTime bool) (Employee, error) {
	employee := Employee{Name: name, Age: age, Position: position, IsFullTime: isFullTime}
	if err := employee.Validate(); err != nil {
		return Employee{}, err
	}

	return employee, nil
}

// Validate checks the field constraints of the employee.
func (e Employee) Validate() error {
	verr := &ValidationError{}

	if e.Name == "" {
		verr.Add("name", "must not be empty")
	}
	if e.Age < MinAge || e.Age > MaxAge {
		verr.Add("age", fmt.Sprintf("must be between %d and %d", MinAge, MaxAge))
	}
	if e.Position == "" {
		verr.Add("position", "must not be empty")
	}

	if len(verr.Fields) > 0 {
		return verr
	}

	return nil
}

// SameName reports whether the employee is identified by name, ignoring case.
func (e Employee) SameName(name string) bool {
	return strings.EqualFold(e.Name, name)
}

// SamePosition reports whether the employee holds the given position, ignoring case.
func (e Employee) SamePosition(position string) bool {
	return strings.EqualFold(e.Position, position)
}
