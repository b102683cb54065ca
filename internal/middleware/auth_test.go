package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	user *domain.User
	err  error
}

func (s *stubVerifier) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	return s.user, s.err
}

func newAuthTestRouter(verifier TokenVerifier, roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{RequireAuth(verifier)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestRequireAuth(t *testing.T) {
	user := &domain.User{ID: 7, Role: domain.RoleUser}

	tests := []struct {
		name       string
		verifier   TokenVerifier
		token      string
		wantStatus int
	}{
		{
			name:       "valid token",
			verifier:   &stubVerifier{user: user},
			token:      "good-token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing token",
			verifier:   &stubVerifier{user: user},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			verifier:   &stubVerifier{err: errors.New("expired")},
			token:      "bad-token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthTestRouter(tt.verifier)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.token != "" {
				req.Header.Set("token", tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireAuth_CookieFallback(t *testing.T) {
	r := newAuthTestRouter(&stubVerifier{user: &domain.User{ID: 7, Role: domain.RoleUser}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles(t *testing.T) {
	t.Run("role allowed", func(t *testing.T) {
		admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
		r := newAuthTestRouter(&stubVerifier{user: admin}, domain.RoleAdmin)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("token", "admin-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("role denied", func(t *testing.T) {
		shopper := &domain.User{ID: 2, Role: domain.RoleUser}
		r := newAuthTestRouter(&stubVerifier{user: shopper}, domain.RoleAdmin)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("token", "user-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
