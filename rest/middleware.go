package rest

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/omnirelay/console/logger"
	"github.com/omnirelay/console/model"
)

type contextKey string

const principalKey contextKey = "principal"

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info(r.RequestURI, zap.String("method", r.Method))
		next.ServeHTTP(w, r)
	})
}

// authMiddleware resolves the Principal for every tenant-scoped route.
// There is no default identity: a missing or invalid session is 401
// unless a dev principal is configured, and a suspended tenant is 403.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := s.resolvePrincipal(r)
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		tenant, found := s.tenantCache.Get(principal.TenantID)
		if !found {
			var err error
			tenant, err = s.storage.Tenants().Get(r.Context(), principal.TenantID)
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			s.tenantCache.Put(tenant)
		}
		if !tenant.IsActive {
			respondWithError(w, http.StatusForbidden, "tenant is suspended")
			return
		}
		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) resolvePrincipal(r *http.Request) (*model.Principal, bool) {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		principal, err := s.authService.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err == nil {
			return principal, true
		}
		return nil, false
	}
	if s.conf.DevTenantId != "" {
		return &model.Principal{UserID: s.conf.DevUserId, TenantID: s.conf.DevTenantId}, true
	}
	return nil, false
}

func principalFrom(r *http.Request) *model.Principal {
	p, _ := r.Context().Value(principalKey).(*model.Principal)
	return p
}
