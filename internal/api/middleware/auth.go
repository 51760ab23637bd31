package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/sam/photo-share-website/internal/service"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
)

// SessionCookie is the name of the cookie carrying the opaque session token.
const SessionCookie = "session_token"

// Auth resolves the session cookie to a user id before the handler runs.
// Requests without a valid session are rejected with 401 and never reach
// any state-mutating code.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := authService.Resolve(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, service.ErrUnauthenticated) {
					log.Printf("ERROR [middleware.Auth] session resolution failed: %v", err)
				}
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
