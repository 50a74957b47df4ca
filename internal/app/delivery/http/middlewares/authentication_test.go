package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medilink-service/internal/app/config"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestMiddlewares(secret string) *Middlewares {
	return &Middlewares{
		Log: zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			JWT: config.JWT{Secret: secret},
		},
	}
}

func TestAuthenticate(t *testing.T) {
	secret := "test-jwt-secret"
	m := newTestMiddlewares(secret)

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
		role, _ := r.Context().Value(constvars.CONTEXT_USER_ROLE_KEY).(string)
		w.Header().Set("X-Test-User", userID)
		w.Header().Set("X-Test-Role", role)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Missing token is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		rr := httptest.NewRecorder()

		m.Authenticate(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Non bearer header is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rr := httptest.NewRecorder()

		m.Authenticate(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Tampered token is rejected", func(t *testing.T) {
		token, err := utils.GenerateJWT("user-1", "patient", "another-secret", time.Hour)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		m.Authenticate(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Valid token reaches handler with identity", func(t *testing.T) {
		token, err := utils.GenerateJWT("user-1", "patient", secret, time.Hour)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		m.Authenticate(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user-1", rr.Header().Get("X-Test-User"))
		assert.Equal(t, "patient", rr.Header().Get("X-Test-Role"))
	})
}

func TestRequireRoles(t *testing.T) {
	secret := "test-jwt-secret"
	m := newTestMiddlewares(secret)

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protected := m.Authenticate(m.RequireRoles(constvars.RoleAdmin)(okHandler))

	t.Run("Allowed role passes", func(t *testing.T) {
		token, err := utils.GenerateJWT("admin-1", constvars.RoleAdmin, secret, time.Hour)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Other role is forbidden", func(t *testing.T) {
		token, err := utils.GenerateJWT("user-1", constvars.RolePatient, secret, time.Hour)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares("secret")

	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		w.Header().Set("X-Test-Request-ID", requestID)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Client supplied id is kept", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id-42")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-id-42", rr.Header().Get("X-Test-Request-ID"))
		assert.Equal(t, "client-id-42", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Missing id is generated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	})
}
