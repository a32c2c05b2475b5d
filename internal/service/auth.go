package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ryuseikaiz/Ichu-Database/internal/auth"
	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
	"github.com/Ryuseikaiz/Ichu-Database/internal/id"
	"github.com/Ryuseikaiz/Ichu-Database/internal/store"
	"github.com/Ryuseikaiz/Ichu-Database/internal/validation"
)

// AuthService handles editor login and token verification.
type AuthService struct {
	store      *store.Store
	tokens     *auth.TokenService
	validator  *validation.Validator
	logger     *slog.Logger
	hashParams auth.Params
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store *store.Store,
	tokens *auth.TokenService,
	validator *validation.Validator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:      store,
		tokens:     tokens,
		validator:  validator,
		logger:     logger,
		hashParams: auth.DefaultParams,
	}
}

// LoginRequest contains editor credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=1024"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int       `json:"expires_in"` // seconds
}

// Login checks credentials and issues an access token.
// Unknown users and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	editor, err := s.store.GetEditorByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.InvalidCredentials("invalid username or password")
		}
		return nil, fmt.Errorf("lookup editor: %w", err)
	}

	if !auth.VerifyPassword(editor.PasswordHash, req.Password) {
		s.logger.Warn("Editor login failed", "username", req.Username)
		return nil, apperr.InvalidCredentials("invalid username or password")
	}

	editor.RecordLogin()
	if err := s.store.SaveEditor(ctx, editor); err != nil {
		// Log but don't fail login
		s.logger.Warn("Failed to update last login time", "editor_id", editor.ID, "error", err)
	}

	token, expires, err := s.tokens.Issue(editor)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("Editor logged in", "editor_id", editor.ID)

	return &LoginResponse{
		Token:     token,
		Username:  editor.Username,
		ExpiresAt: expires,
		ExpiresIn: int(s.tokens.Duration().Seconds()),
	}, nil
}

// Verify validates a token and checks that its editor still exists.
func (s *AuthService) Verify(ctx context.Context, token string) (*auth.EditorClaims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Editors.Get(ctx, claims.EditorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unauthorized("editor account no longer exists")
		}
		return nil, fmt.Errorf("lookup editor: %w", err)
	}
	return claims, nil
}

// EnsureEditor makes sure the configured editor account exists with the
// given password. An empty password leaves an existing account alone and
// skips creation, which disables editing until one is configured.
func (s *AuthService) EnsureEditor(ctx context.Context, username, password string) error {
	editor, err := s.store.GetEditorByUsername(ctx, username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("lookup editor: %w", err)
	}

	if password == "" {
		if editor == nil {
			s.logger.Warn("No editor password configured; editing is disabled", "username", username)
		}
		return nil
	}

	if editor != nil {
		if auth.VerifyPassword(editor.PasswordHash, password) {
			return nil
		}
		if editor.PasswordHash, err = s.hashParams.Hash(password); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		editor.UpdatedAt = time.Now()
		if err := s.store.SaveEditor(ctx, editor); err != nil {
			return fmt.Errorf("save editor: %w", err)
		}
		s.logger.Info("Editor password updated", "username", editor.Username)
		return nil
	}

	hash, err := s.hashParams.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	editor = &domain.Editor{
		ID:           id.MustGenerate(id.PrefixEditor),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.SaveEditor(ctx, editor); err != nil {
		return fmt.Errorf("save editor: %w", err)
	}

	s.logger.Info("Editor account created", "username", username)
	return nil
}
