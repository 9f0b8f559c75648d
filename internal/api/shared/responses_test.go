package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trilhaapi/tarefa-api/internal/platform/logger"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]interface{}{"id": 5, "titulo": "x"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":5,"titulo":"x"}`, w.Body.String())
}

func TestRespondNoContent(t *testing.T) {
	w := httptest.NewRecorder()

	RespondNoContent(w)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	ctx := SetTraceID(context.Background(), "")
	req := httptest.NewRequest(http.MethodGet, "/Tarefa/0", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusBadRequest, "Invalid id")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid id", resp.Error)
	assert.Equal(t, GetTraceID(ctx), resp.TraceID)
	assert.Zero(t, resp.Code, "status code must not be serialized")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		expectedLevel string
	}{
		{name: "server error logs at error", status: http.StatusInternalServerError, expectedLevel: "ERROR"},
		{name: "client error logs at debug", status: http.StatusConflict, expectedLevel: "DEBUG"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, buf := logger.GetTestLogger(t)
			ctx := logger.WithLogger(context.Background(), l)
			req := httptest.NewRequest(http.MethodPost, "/Tarefa", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			cause := errors.New("dial tcp: password=supersecret refused")
			RespondWithErrorAndLog(w, req, tc.status, "Internal error while processing the request", cause)

			assert.Equal(t, tc.status, w.Code)
			assert.NotContains(t, w.Body.String(), "supersecret")
			assert.Contains(t, w.Body.String(), "Internal error while processing the request")

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.expectedLevel, entries[0]["level"])
			assert.NotContains(t, entries[0]["error"], "supersecret")
		})
	}
}
