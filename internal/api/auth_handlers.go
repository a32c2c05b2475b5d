package api

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
	"github.com/Ryuseikaiz/Ichu-Database/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Editor login",
		Description: "Exchanges editor credentials for a bearer token. Rate limited per client IP.",
		Tags:        []string{"Auth"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/api/auth/session",
		Summary:     "Current session",
		Description: "Returns the editor behind the bearer token",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetSession)
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body service.LoginRequest
}

// LoginOutput wraps the login response for Huma.
type LoginOutput struct {
	Body service.LoginResponse
}

// SessionInput carries the bearer token.
type SessionInput struct {
	Authorization string `header:"Authorization"`
}

// SessionResponse describes the authenticated editor.
type SessionResponse struct {
	Username  string    `json:"username" doc:"Editor username"`
	ExpiresAt time.Time `json:"expires_at" doc:"Token expiry"`
}

// SessionOutput wraps the session response for Huma.
type SessionOutput struct {
	Body SessionResponse
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	ip := clientIP(ctx)
	if ok, retryAfter := s.authRateLimiter.Reserve(ip); !ok {
		s.logger.Warn("Rate limit exceeded", "ip", ip, "path", "/api/auth/login")
		return nil, apperr.New(apperr.CodeRateLimited, "Too many login attempts. Please try again later.").
			WithDetails(map[string]int{"retry_after_seconds": int(math.Ceil(retryAfter.Seconds()))})
	}

	resp, err := s.services.Auth.Login(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{Body: *resp}, nil
}

func (s *Server) handleGetSession(ctx context.Context, _ *SessionInput) (*SessionOutput, error) {
	claims, err := requireEditor(ctx)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: SessionResponse{Username: claims.Username, ExpiresAt: claims.Expiration}}, nil
}
