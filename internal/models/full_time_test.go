package models_test

import (
	"encoding/json"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullTimeFlag_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		expected bool
		invalid  bool
	}{
		{name: "absent", body: `{}`, expected: true},
		{name: "true", body: `{"is_full_time": true}`, expected: true},
		{name: "false", body: `{"is_full_time": false}`, expected: false},
		{name: "null", body: `{"is_full_time": null}`, invalid: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var payload struct {
				IsFullTime models.FullTimeFlag `json:"is_full_time"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.body), &payload))

			value, fieldErr := payload.IsFullTime.Resolve()
			if tt.invalid {
				require.NotNil(t, fieldErr)
				assert.Equal(t, "is_full_time", fieldErr.Field)
				return
			}
			require.Nil(t, fieldErr)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestFullTimeFlag_WrongType(t *testing.T) {
	t.Parallel()

	var payload struct {
		IsFullTime models.FullTimeFlag `json:"is_full_time"`
	}

	require.Error(t, json.Unmarshal([]byte(`{"is_full_time": "yes"}`), &payload))
}
