package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/skipjar/skipjar/internal/ctxkeys"
	"github.com/skipjar/skipjar/internal/service"
)

// BearerIdentity puts the user id of a valid bearer token into the context.
// Requests without a token pass through anonymously; a token that fails
// verification is rejected with 401.
func BearerIdentity(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !authService.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				writeUnauthorized(w, "authorization header must be a bearer token")
				return
			}

			userID, err := authService.VerifyJWT(strings.TrimSpace(token))
			if err != nil {
				slog.Debug("rejected bearer token", "error", err, "path", r.URL.Path)
				writeUnauthorized(w, "invalid token")
				return
			}

			ctx := ctxkeys.WithActorID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
