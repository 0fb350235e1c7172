package readonly

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(enabled bool) *gin.Engine {
	m := NewMiddleware(enabled)
	router := gin.New()
	router.Use(m.InjectContext(), m.Handler())
	ok := func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
	router.GET("/books", ok)
	router.POST("/books", ok)
	router.DELETE("/books/:id", ok)
	router.POST("/users/login", ok)
	router.PUT("/users/login", ok)
	router.GET("/mode", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"read_only": c.GetBool(ContextKeyReadOnly)})
	})
	return router
}

func TestNewMiddleware(t *testing.T) {
	if !NewMiddleware(true).IsEnabled() {
		t.Error("Expected middleware to be enabled")
	}
	if NewMiddleware(false).IsEnabled() {
		t.Error("Expected middleware to be disabled")
	}
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		method  string
		path    string
		want    int
	}{
		{"reads pass", true, http.MethodGet, "/books", http.StatusOK},
		{"create blocked", true, http.MethodPost, "/books", http.StatusForbidden},
		{"delete blocked", true, http.MethodDelete, "/books/1", http.StatusForbidden},
		{"login allowed", true, http.MethodPost, "/users/login", http.StatusOK},
		{"allowlist is per method", true, http.MethodPut, "/users/login", http.StatusForbidden},
		{"disabled passes writes", false, http.MethodPost, "/books", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(tt.enabled)
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestMiddleware_BlockedResponseBody(t *testing.T) {
	router := newRouter(true)
	req := httptest.NewRequest(http.MethodPost, "/books", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse JSON response: %v", err)
	}
	if body["read_only"] != true {
		t.Errorf("Expected read_only flag in response, got %v", body)
	}
	if body["error"] == "" {
		t.Error("Expected error message in response")
	}
}

func TestInjectContext(t *testing.T) {
	router := newRouter(true)
	req := httptest.NewRequest(http.MethodGet, "/mode", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Body.String() != `{"read_only":true}` {
		t.Errorf("Unexpected body %s", w.Body.String())
	}
}
