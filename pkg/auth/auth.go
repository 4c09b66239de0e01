package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/browsekit/navigator/pkg/auth/jwt"
	"github.com/browsekit/navigator/pkg/rest/middleware"
)

// bearerToken pulls the token out of an Authorization header.
// Returns "" when the header is absent or not a Bearer scheme.
func bearerToken(header string) string {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func WithTokenValidation(logger *slog.Logger) middleware.MiddlewareFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), jwt.RequestMethodKey, r.Method)
			ctx = context.WithValue(ctx, jwt.RequestRouteKey, r.URL.Path)

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				logger.Error("token-validation failed", slog.String("reason", "missing bearer token"))
				resp := jwt.Errors[jwt.ErrUnAuthorized]
				w.WriteHeader(resp.Code)
				json.NewEncoder(w).Encode(resp)
				return
			}

			resp, err := jwt.Validate(ctx, token)
			if err != nil {
				logger.Error("token-validation failed", slog.String("reason", err.Error()))
				w.WriteHeader(resp.Code)
				json.NewEncoder(w).Encode(resp)
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}
