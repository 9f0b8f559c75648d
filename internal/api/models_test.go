package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trilhaapi/tarefa-api/internal/domain"
)

func TestTaskRequestToDomain(t *testing.T) {
	t.Run("full body", func(t *testing.T) {
		body := `{"id":3,"titulo":"Relatorio","descricao":"Mensal","data":"2026-01-18T10:30:00","status":"Finalizado"}`

		var req TaskRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		task := req.ToDomain()

		assert.Equal(t, int64(3), task.ID)
		assert.Equal(t, "Relatorio", task.Title)
		assert.Equal(t, "Mensal", task.Description)
		assert.Equal(t, time.Date(2026, 1, 18, 10, 30, 0, 0, time.UTC), task.DueDate)
		assert.Equal(t, domain.StatusDone, task.Status)
	})

	t.Run("status ordinal", func(t *testing.T) {
		var req TaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"titulo":"a","data":"2026-01-18","status":1}`), &req))
		assert.Equal(t, domain.StatusInProgress, req.ToDomain().Status)
	})

	t.Run("missing status defaults to pending", func(t *testing.T) {
		var req TaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"titulo":"a","data":"2026-01-18"}`), &req))
		assert.Equal(t, domain.StatusPending, req.ToDomain().Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		var req TaskRequest
		err := json.Unmarshal([]byte(`{"titulo":"a","status":"Cancelado"}`), &req)
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestDateUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"date only", `"2026-01-18"`, time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC), false},
		{"timestamp with zone", `"2026-01-18T10:00:00-03:00"`, time.Date(2026, 1, 18, 13, 0, 0, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"empty", `""`, time.Time{}, false},
		{"garbage", `"amanha"`, time.Time{}, true},
		{"number", `20260118`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidDueDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time), "got %v", d.Time)
		})
	}
}
