package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Roblokonha/StudyVault/internal/platform/ctxutil"
)

func TestRespondErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	c.Request = req.WithContext(ctxutil.WithTraceData(req.Context(), &ctxutil.TraceData{RequestID: "req-9"}))

	RespondError(c, http.StatusNotFound, "not_found", errors.New("document missing"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error.Message != "document missing" || env.Error.Code != "not_found" || env.Error.RequestID != "req-9" {
		t.Fatalf("envelope = %+v", env.Error)
	}
	if len(c.Errors) != 1 {
		t.Fatalf("expected the error to be recorded on the context")
	}
}

func TestRespondErrorWithoutCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	RespondError(c, http.StatusBadRequest, "invalid_request", nil)

	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error.Message != http.StatusText(http.StatusBadRequest) {
		t.Fatalf("message = %q", env.Error.Message)
	}
}
