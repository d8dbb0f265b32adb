package server_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/server"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	PingErr error
	LoadErr error
}

func (m *MockStore) Ping(_ context.Context) error {
	return m.PingErr
}

func (m *MockStore) Load(_ context.Context) ([]models.Employee, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return []models.Employee{}, nil
}

func TestHealthChecker(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	tests := []struct {
		name         string
		store        *MockStore
		expectedCode int
		expectedBody string
	}{
		{
			name:         "all systems ok",
			store:        &MockStore{},
			expectedCode: http.StatusOK,
			expectedBody: `{"storage":"ok","data":"ok"}`,
		},
		{
			name:         "storage unavailable",
			store:        &MockStore{PingErr: errors.New("mock storage error"), LoadErr: errors.New("read error")},
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `{"storage":"unavailable","data":"unavailable"}`,
		},
		{
			name:         "data corrupted",
			store:        &MockStore{LoadErr: fmt.Errorf("%w: record 0", repository.ErrDataCorruption)},
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `{"storage":"ok","data":"corrupted"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			healthChecker := server.NewHealthChecker(tt.store, logger)

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rr := httptest.NewRecorder()

			healthChecker.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedCode, rr.Code)
			require.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}
