package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/scholars/internal/app/controllers"
	"github.com/yigit/scholars/internal/middleware"
	"github.com/yigit/scholars/internal/pkg/auth"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test", AccessTokenExp: time.Minute})
	SetupRouter(router, Controllers{
		Auth:   controllers.NewAuthController(nil, zerolog.Nop()),
		Course: controllers.NewCourseController(nil, zerolog.Nop()),
		Slide:  controllers.NewSlideController(nil, zerolog.Nop()),
	}, middleware.NewAuthMiddleware(jwtService))
	return router
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/courses"},
		{http.MethodGet, "/api/v1/courses/1"},
		{http.MethodPost, "/api/v1/courses/1/generate"},
		{http.MethodGet, "/api/v1/slides"},
		{http.MethodGet, "/api/v1/slides/1"},
		{http.MethodPut, "/api/v1/slides/1"},
		{http.MethodPatch, "/api/v1/slides/1"},
		{http.MethodPut, "/api/v1/slides/1/assign"},
		{http.MethodPut, "/api/v1/slides/1/release"},
		{http.MethodPut, "/api/v1/slides/1/approve"},
		{http.MethodPut, "/api/v1/slides/1/reject"},
	}

	for _, rt := range routes {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", rt.method, rt.path, w.Code)
		}
	}
}

func TestCourseCreationRejectsInvalidToken(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("health = %d %s", w.Code, w.Body.String())
	}
}
