package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vivekpradhan736/task-tracker-backend/logging"
	"github.com/vivekpradhan736/task-tracker-backend/utils"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDFromContext returns the authenticated caller id attached by JWTAuth.
func UserIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(userIDKey).(primitive.ObjectID)
	return id, ok
}

// JWTAuth gates protected routes: it extracts the bearer token, verifies it
// and attaches the resolved user id to the request context. It makes no
// ownership decisions itself.
func JWTAuth(secret []byte) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logging.Logger.Warnf("Authorization header missing for request to %s %s", r.Method, r.URL.Path)
				unauthorized(w, "Not authorized, no token")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenStr == authHeader {
				logging.Logger.Warnf("Bearer prefix missing in Authorization header for request to %s %s", r.Method, r.URL.Path)
				unauthorized(w, "Not authorized, no token")
				return
			}

			userIDHex, err := utils.ValidateToken(tokenStr, secret)
			if err != nil {
				logging.Logger.Warnf("Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
				unauthorized(w, "Not authorized, token failed")
				return
			}

			userID, err := primitive.ObjectIDFromHex(userIDHex)
			if err != nil {
				logging.Logger.Warnf("Token carries malformed user id for request to %s %s", r.Method, r.URL.Path)
				unauthorized(w, "Not authorized, token failed")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
