package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/delesray/forum/internal/config"
	"github.com/delesray/forum/internal/database/dbtest"
	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/models"
	"github.com/delesray/forum/internal/services/auth"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthFixture(t *testing.T) (*BearerTokenMiddleware, *auth.AuthService, *repository.UserRepository) {
	t.Helper()
	userRepo := repository.NewUserRepository(dbtest.New(t))
	authService := auth.NewAuthService(userRepo, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour})
	return NewBearerTokenMiddleware(authService), authService, userRepo
}

func tokenFor(t *testing.T, authService *auth.AuthService, repo *repository.UserRepository, username string, admin bool) string {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", Email: username + "@example.com", IsAdmin: admin}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := authService.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	return token
}

func whoAmI(c *gin.Context) {
	if user := CurrentUser(c); user != nil {
		c.String(http.StatusOK, user.Username)
		return
	}
	c.String(http.StatusOK, "anonymous")
}

func TestBearerMiddleware(t *testing.T) {
	m, authService, repo := newAuthFixture(t)
	userToken := tokenFor(t, authService, repo, "alice", false)
	adminToken := tokenFor(t, authService, repo, "root", true)

	r := gin.New()
	r.GET("/required", m.RequireAuth(), whoAmI)
	r.GET("/optional", m.OptionalAuth(), whoAmI)
	r.GET("/admin", m.RequireAuth(), RequireAdmin(), whoAmI)

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"required without token", "/required", "", http.StatusUnauthorized, ""},
		{"required bad scheme", "/required", "Basic abc", http.StatusUnauthorized, ""},
		{"required bad token", "/required", "Bearer nope", http.StatusUnauthorized, ""},
		{"required valid", "/required", "Bearer " + userToken, http.StatusOK, "alice"},
		{"optional anonymous", "/optional", "", http.StatusOK, "anonymous"},
		{"optional valid", "/optional", "Bearer " + userToken, http.StatusOK, "alice"},
		{"optional bad token", "/optional", "Bearer nope", http.StatusUnauthorized, ""},
		{"admin as user", "/admin", "Bearer " + userToken, http.StatusForbidden, ""},
		{"admin as admin", "/admin", "Bearer " + adminToken, http.StatusOK, "root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	if generated == "" || w.Body.String() != generated {
		t.Errorf("generated id header %q, body %q", generated, w.Body.String())
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("echoed id = %q, want abc-123", got)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2, time.Minute)
	defer rl.Stop()

	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i, code := range want {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		if w.Code != code {
			t.Errorf("request %d status = %d, want %d", i, w.Code, code)
		}
	}
}

func TestRateLimiterStopConcurrent(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Second), 1, time.Minute)

	done := make(chan struct{})
	go func() {
		rl.Run()
		close(done)
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rl.Stop()
		}()
	}
	wg.Wait()
	rl.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
