package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type contextKey string

// UserIDKey is the request context key holding the authenticated user ID.
const UserIDKey contextKey = "user_id"

var firebaseAuth *auth.Client

// DevUserID is the user every request is attributed to when Firebase
// credentials are absent and the server runs with auth disabled.
const DevUserID = "demo-user-1"

// InitializeFirebase initializes the Firebase Admin SDK used for ID token
// verification. Credentials are read from FIREBASE_SERVICE_ACCOUNT_JSON,
// FIREBASE_SERVICE_ACCOUNT_BASE64 or FIREBASE_SERVICE_ACCOUNT, in that order.
// When none are set the server runs in development mode with auth disabled.
func InitializeFirebase(projectID string) error {
	credJSON, source, err := serviceAccountJSON()
	if err != nil {
		return err
	}
	if credJSON == nil {
		slog.Warn("No Firebase credentials found, running with auth disabled", "devUser", DevUserID)
		return nil
	}

	slog.Info("Initializing Firebase Admin SDK", "credentials", source, "projectId", projectID)

	opt := option.WithCredentialsJSON(credJSON)
	app, err := firebase.NewApp(context.Background(), &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return fmt.Errorf("error initializing Firebase app: %w", err)
	}

	firebaseAuth, err = app.Auth(context.Background())
	if err != nil {
		return fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	slog.Info("Firebase Admin SDK initialized")
	return nil
}

func serviceAccountJSON() (cred []byte, source string, err error) {
	if v := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); v != "" {
		return []byte(v), "json", nil
	}
	if v := os.Getenv("FIREBASE_SERVICE_ACCOUNT_BASE64"); v != "" {
		decoded, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, "", fmt.Errorf("error decoding base64 Firebase credentials: %w", err)
		}
		return decoded, "base64", nil
	}
	if v := os.Getenv("FIREBASE_SERVICE_ACCOUNT"); v != "" {
		return []byte(v), "env", nil
	}
	return nil, "", nil
}

// AuthMiddleware verifies Firebase ID tokens from the Authorization header
// and stores the resulting user ID on the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Dev mode: no Firebase client, attribute everything to the demo user
		if firebaseAuth == nil {
			ctx := context.WithValue(r.Context(), UserIDKey, DevUserID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		// CORS preflight never carries credentials
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		idToken := extractToken(r.Header.Get("Authorization"))
		if idToken == "" {
			// EventSource cannot set headers, so streams pass the token
			// as a query parameter
			idToken = r.URL.Query().Get("auth")
		}
		if idToken == "" {
			http.Error(w, "Unauthorized: No token provided", http.StatusUnauthorized)
			return
		}

		token, err := verifyToken(r.Context(), idToken)
		if err != nil {
			slog.Warn("Token verification failed", "error", err)
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, token.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken gets the bearer token from the Authorization header.
func extractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, "Bearer ")
	if len(parts) != 2 {
		return ""
	}

	return parts[1]
}

func verifyToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if firebaseAuth == nil {
		return nil, errors.New("Firebase auth client not initialized")
	}

	token, err := firebaseAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("error verifying ID token: %w", err)
	}

	return token, nil
}

// GetUserIDFromContext retrieves the authenticated user ID from the request
// context. Returns "" for unauthenticated requests.
func GetUserIDFromContext(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
