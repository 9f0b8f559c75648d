package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trilhaapi/tarefa-api/internal/domain"
)

func requestWithID(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/Tarefa/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathID(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		want    int64
		wantErr bool
	}{
		{"valid", "42", 42, false},
		{"empty", "", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-1", 0, true},
		{"not a number", "abc", 0, true},
		{"overflow", "99999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := getPathID(requestWithID(tt.param), "id")
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestGetPageParams(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
		wantErr      bool
	}{
		{"defaults", "", DefaultPage, DefaultPageSize, false},
		{"explicit", "?page=3&pageSize=25", 3, 25, false},
		{"max page size", "?pageSize=100", 1, 100, false},
		{"page zero", "?page=0", 0, 0, true},
		{"page size zero", "?pageSize=0", 0, 0, true},
		{"page size too large", "?pageSize=101", 0, 0, true},
		{"not a number", "?page=dois", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/Tarefa/ObterTodos"+tt.query, nil)
			page, pageSize, err := getPageParams(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2026-01-18", time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC), false},
		{" 2026-01-18 ", time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC), false},
		{"2026-01-18T09:15", time.Date(2026, 1, 18, 9, 15, 0, 0, time.UTC), false},
		{"2026-01-18 09:15:30", time.Date(2026, 1, 18, 9, 15, 30, 0, time.UTC), false},
		{"2026-01-18T09:15:30.5", time.Date(2026, 1, 18, 9, 15, 30, 500000000, time.UTC), false},
		{"2026-01-18T09:15:30Z", time.Date(2026, 1, 18, 9, 15, 30, 0, time.UTC), false},
		{"0001-01-01", time.Time{}, true},
		{"18/01/2026", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidDueDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}
