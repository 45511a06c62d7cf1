package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"goldbook/internal/middleware"
	"goldbook/internal/validator"
)

// --- shared mocks ---

type auditCall struct {
	UserID     string
	Action     string
	Resource   string
	ResourceID string
	Changes    map[string]interface{}
}

type mockAuditService struct {
	calls []auditCall
}

func (m *mockAuditService) Log(userID, action, resourceType, resourceID, _ string, changes map[string]interface{}) {
	m.calls = append(m.calls, auditCall{
		UserID:     userID,
		Action:     action,
		Resource:   resourceType,
		ResourceID: resourceID,
		Changes:    changes,
	})
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Set(middleware.TokenKey, "token-"+uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func assertErrorField(t *testing.T, result map[string]interface{}, field string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["field"] != field {
		t.Errorf("expected error field %q, got %v", field, errObj["field"])
	}
}
