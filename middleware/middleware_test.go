package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"servicefinder/config"
	"servicefinder/models"
	"servicefinder/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		id := Identity(c)
		c.JSON(http.StatusOK, gin.H{"id": id.ID, "role": id.Role})
	})
	r.GET("/", handlers...)
	return r
}

func request(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := newRouter(JWTAuthMiddleware())

	if w := request(r, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: got %d", w.Code)
	}
	if w := request(r, map[string]string{"Authorization": "Bearer garbage"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: got %d", w.Code)
	}

	token, err := utils.GenerateToken("u1", "Ravi", models.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if w := request(r, map[string]string{"Authorization": "Bearer " + token}); w.Code != http.StatusOK {
		t.Fatalf("valid token: got %d %s", w.Code, w.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := newRouter(JWTAuthMiddleware(), RequireRole(models.RoleProvider))

	userToken, _ := utils.GenerateToken("u1", "", models.RoleUser, time.Hour)
	if w := request(r, map[string]string{"Authorization": "Bearer " + userToken}); w.Code != http.StatusForbidden {
		t.Fatalf("user on provider route: got %d", w.Code)
	}
	provToken, _ := utils.GenerateToken("u2", "", models.RoleProvider, time.Hour)
	if w := request(r, map[string]string{"Authorization": "Bearer " + provToken}); w.Code != http.StatusOK {
		t.Fatalf("provider on provider route: got %d", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))
	hdr := map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}
	for i := 0; i < 2; i++ {
		if w := request(r, hdr); w.Code != http.StatusOK {
			t.Fatalf("request %d: got %d", i, w.Code)
		}
	}
	if w := request(r, hdr); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w := request(r, map[string]string{"X-Forwarded-For": "10.0.0.9"}); w.Code != http.StatusOK {
		t.Fatalf("other client should not be limited, got %d", w.Code)
	}
}
