package middleware

import (
	"context"
	"net/http"
	"strings"

	"livestock-pens/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// ActorContext resuelve quién está operando, solo para atribución en el
// audit log (animal_events.recorded_by). No corta requests: los permisos
// no son responsabilidad de este servicio.
// - verifier != nil y viene Bearer token => Verify() y setea claims.
// - verifier == nil => modo dev: header X-Debug-User-ID.
func ActorContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID")); uid != "" {
					ctx := context.WithValue(r.Context(), claimsKey, auth.Claims{UserID: uid})
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// Seguimos sin claims; el evento queda sin recorded_by.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// ActorID devuelve el user id del contexto, o "" si no hay claims.
func ActorID(ctx context.Context) string {
	c, _ := GetClaims(ctx)
	return c.UserID
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
