package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
)

// Cheap parameters keep the tests fast.
var testParams = Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHash_Verify(t *testing.T) {
	hash, err := testParams.Hash("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	assert.True(t, VerifyPassword(hash, "correct horse"))
	assert.False(t, VerifyPassword(hash, "correct horse "))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHash_SaltsDiffer(t *testing.T) {
	a, err := testParams.Hash("same")
	require.NoError(t, err)
	b, err := testParams.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHash_RejectsBadInput(t *testing.T) {
	_, err := testParams.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = testParams.Hash(strings.Repeat("x", maxPasswordLength+1))
	assert.Error(t, err)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, h := range []string{
		"",
		"plain",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA",
	} {
		assert.False(t, VerifyPassword(h, "pw"), "hash %q", h)
	}
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	key, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, key, KeySize)

	info, err := os.Stat(filepath.Join(dir, KeyFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key, again, "existing key should be reused")
}

func TestLoadOrGenerateKey_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyFile), []byte("abcd"), 0o600))

	_, err := LoadOrGenerateKey(dir)
	assert.Error(t, err)
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(make([]byte, KeySize), time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_Validation(t *testing.T) {
	_, err := NewTokenService([]byte("short"), time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(make([]byte, KeySize), 0)
	assert.Error(t, err)
}

func TestTokens_IssueVerify(t *testing.T) {
	svc := newTestTokenService(t)
	editor := &domain.Editor{ID: "editor-1", Username: "admin"}

	token, expires, err := svc.Issue(editor)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "editor-1", claims.EditorID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "editor-1", claims.Subject)
	assert.NotEmpty(t, claims.TokenID)
}

func TestTokens_Expired(t *testing.T) {
	svc := newTestTokenService(t)
	token, _, err := svc.Issue(&domain.Editor{ID: "editor-1"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrTokenExpired)
}

func TestTokens_WrongKeyOrGarbage(t *testing.T) {
	svc := newTestTokenService(t)
	token, _, err := svc.Issue(&domain.Editor{ID: "editor-1"})
	require.NoError(t, err)

	key := make([]byte, KeySize)
	key[0] = 1
	other, err := NewTokenService(key, time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.Verify("v4.local.garbage")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer  abc ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.want, got, "header %q", tt.header)
	}
}
