package middlewares

import (
	"context"
	"net/http"
	"strings"

	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/exceptions"
	"medilink-service/internal/pkg/utils"
)

// Authenticate validates the Bearer token and stashes the caller's identity
// in the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(constvars.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		userID, role, err := utils.ParseJWT(tokenString, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_USER_ID_KEY, userID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_USER_ROLE_KEY, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles rejects authenticated callers whose role is not in the allow
// list. It must run after Authenticate.
func (m *Middlewares) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(constvars.CONTEXT_USER_ROLE_KEY).(string)
			if !allowed[role] {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleForbidden(nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
