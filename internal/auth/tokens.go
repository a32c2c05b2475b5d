package auth

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
	"github.com/Ryuseikaiz/Ichu-Database/internal/id"
)

const (
	tokenIssuer   = "ichu-api"
	tokenAudience = "ichu-editor"
)

// TokenService issues and verifies PASETO v4.local editor tokens.
type TokenService struct {
	key      paseto.V4SymmetricKey
	duration time.Duration
	now      func() time.Time
}

// NewTokenService creates a token service from a 32-byte key.
func NewTokenService(key []byte, duration time.Duration) (*TokenService, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("token key must be %d bytes, got %d", KeySize, len(key))
	}
	if duration <= 0 {
		return nil, fmt.Errorf("token duration must be positive, got %s", duration)
	}

	k, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{key: k, duration: duration, now: time.Now}, nil
}

// Duration returns the token lifetime.
func (s *TokenService) Duration() time.Duration {
	return s.duration
}

// Issue creates an encrypted token for the editor.
func (s *TokenService) Issue(e *domain.Editor) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.duration)

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(e.ID)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(expires)

	jti, err := id.Generate("tok")
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(jti)

	//nolint:errcheck // Set only fails on unmarshalable values
	_ = token.Set("editor_id", e.ID)
	//nolint:errcheck // Set only fails on unmarshalable values
	_ = token.Set("username", e.Username)

	return token.V4Encrypt(s.key, nil), expires, nil
}

// Verify decrypts and validates a token.
// Expired tokens fail with a TOKEN_EXPIRED error, anything else with UNAUTHORIZED.
func (s *TokenService) Verify(tokenString string) (*EditorClaims, error) {
	now := s.now()

	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))

	token, err := parser.ParseV4Local(s.key, tokenString, nil)
	if err != nil {
		return nil, apperr.Unauthorized("invalid token").WithCause(err)
	}

	var claims EditorClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, apperr.Unauthorized("invalid token claims").WithCause(err)
	}

	if !now.Before(claims.Expiration) {
		return nil, apperr.TokenExpired("token expired")
	}
	if now.Before(claims.NotBefore) {
		return nil, apperr.Unauthorized("token not yet valid")
	}

	return &claims, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. ok is false when the header is empty or malformed.
func BearerToken(header string) (token string, ok bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
