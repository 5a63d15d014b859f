package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"servicefinder/services/apperror"
	"servicefinder/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{apperror.ErrNotFound, http.StatusNotFound, "NotFound"},
		{fmt.Errorf("%w: rating must be between 1 and 5", apperror.ErrValidation), http.StatusBadRequest, "ValidationError"},
		{apperror.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{errors.New("mongo exploded"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		respondError(c, zap.NewNop(), "test", tt.err)

		if w.Code != tt.status {
			t.Fatalf("%v: status %d, want %d", tt.err, w.Code, tt.status)
		}
		var body utils.ErrorResponse
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Message != tt.message {
			t.Fatalf("%v: message %q, want %q", tt.err, body.Message, tt.message)
		}
		if tt.status == http.StatusInternalServerError && body.Details != "" {
			t.Fatalf("internal error details leaked: %q", body.Details)
		}
	}
}
