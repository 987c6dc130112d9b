package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/careops/staffhub/pkg/composables"
	"github.com/careops/staffhub/pkg/httpapi"
)

const (
	APIKeyHeader  = "X-API-Key"
	ActorIDHeader = "X-Actor-ID"
)

// TenantResolverFunc resolves an API key to the tenant it belongs to.
type TenantResolverFunc func(ctx context.Context, apiKey string) (uuid.UUID, error)

// APIKeyAuth resolves the caller's organisation from the X-API-Key header and
// binds (tenant id, actor id) to the request context. The optional X-Actor-ID
// header attributes the call to a specific user of the integration; when
// absent the actor stays uuid.Nil.
func APIKeyAuth(resolve TenantResolverFunc) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := strings.TrimSpace(r.Header.Get(APIKeyHeader))
			if apiKey == "" {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "AUTH_MISSING_API_KEY", "missing API key", nil)
				return
			}

			tenantID, err := resolve(r.Context(), apiKey)
			if err != nil {
				composables.UseLogger(r.Context()).WithError(err).Warn("api key rejected")
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "AUTH_INVALID_API_KEY", "invalid API key", nil)
				return
			}

			ctx := composables.WithTenantID(r.Context(), tenantID)
			if raw := strings.TrimSpace(r.Header.Get(ActorIDHeader)); raw != "" {
				if actorID, parseErr := uuid.Parse(raw); parseErr == nil {
					ctx = composables.WithActorID(ctx, actorID)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
