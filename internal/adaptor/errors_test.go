package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"business-cards/pkg/apperror"
	"business-cards/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
		level   string
	}{
		{"validation", apperror.Validation("Validation failed", map[string]string{"email": "Invalid email format"}), http.StatusBadRequest, "Validation failed", "warn"},
		{"unauthenticated", apperror.Unauthenticated("Invalid email or password"), http.StatusUnauthorized, "Invalid email or password", "warn"},
		{"forbidden", apperror.Forbidden("card", "Not authorized to delete this card"), http.StatusForbidden, "Not authorized to delete this card", "warn"},
		{"not found wrapped", fmt.Errorf("ctx: %w", apperror.NotFound("card", "Card not found")), http.StatusNotFound, "Card not found", "warn"},
		{"conflict", apperror.Conflict("user", "Email already exists", nil), http.StatusConflict, "Email already exists", "warn"},
		{"internal", apperror.Internal("list cards", errors.New("pq: connection refused")), http.StatusInternalServerError, "Internal server error", "error"},
		{"untyped", errors.New("surprise"), http.StatusInternalServerError, "Internal server error", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			rec := httptest.NewRecorder()

			handleServiceError(rec, zap.New(core), tt.err, "op")

			assert.Equal(t, tt.status, rec.Code)
			var resp utils.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, utils.StatusError, resp.Status)
			assert.Equal(t, tt.message, resp.Message)
			assert.NotContains(t, rec.Body.String(), "connection refused")

			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.level, logs.All()[0].Level.String())
		})
	}
}

func TestDecodeJSON_RejectsMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))

	var dst map[string]any
	assert.False(t, decodeJSON(rec, req, &dst))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
