package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Ryuseikaiz/Ichu-Database/internal/auth"
	"github.com/Ryuseikaiz/Ichu-Database/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

const (
	editorClaimsKey ctxKey = "editorClaims"
	authErrorKey    ctxKey = "authError"
	clientIPKey     ctxKey = "clientIP"
)

// authMiddleware verifies Bearer tokens and stores the editor claims in the
// request context. Requests without a valid token continue anonymously;
// handlers that need an editor call requireEditor.
func authMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			token, ok := auth.BearerToken(header)
			if !ok {
				ctx = context.WithValue(ctx, authErrorKey, huma.Error401Unauthorized("Invalid authorization header format"))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			claims, err := authService.Verify(ctx, token)
			if err != nil {
				ctx = context.WithValue(ctx, authErrorKey, err)
			} else {
				ctx = context.WithValue(ctx, editorClaimsKey, claims)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireEditor returns the authenticated editor's claims, or a 401 error
// explaining why the request is not authenticated.
func requireEditor(ctx context.Context) (*auth.EditorClaims, error) {
	if claims, ok := ctx.Value(editorClaimsKey).(*auth.EditorClaims); ok {
		return claims, nil
	}
	if err, ok := ctx.Value(authErrorKey).(error); ok {
		return nil, err
	}
	return nil, huma.Error401Unauthorized("Authentication required")
}

// clientIP returns the address stored by clientIPMiddleware.
func clientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}
