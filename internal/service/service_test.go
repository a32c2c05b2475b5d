package service

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Ryuseikaiz/Ichu-Database/internal/auth"
	"github.com/Ryuseikaiz/Ichu-Database/internal/store"
	"github.com/Ryuseikaiz/Ichu-Database/internal/validation"
)

var fastHash = auth.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

type testServices struct {
	store  *store.Store
	cards  *CardService
	auth   *AuthService
	tokens *auth.TokenService
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	s, err := store.New("", nil, store.InMemory())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	tokens, err := auth.NewTokenService(make([]byte, auth.KeySize), time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	v := validation.New()

	authSvc := NewAuthService(s, tokens, v, logger)
	authSvc.hashParams = fastHash

	return &testServices{
		store:  s,
		cards:  NewCardService(s, v, logger),
		auth:   authSvc,
		tokens: tokens,
	}
}
