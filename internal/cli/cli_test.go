package cli

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ryuseikaiz/Ichu-Database/internal/api"
	"github.com/Ryuseikaiz/Ichu-Database/internal/auth"
	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	"github.com/Ryuseikaiz/Ichu-Database/internal/id"
	"github.com/Ryuseikaiz/Ichu-Database/internal/service"
	"github.com/Ryuseikaiz/Ichu-Database/internal/store"
	"github.com/Ryuseikaiz/Ichu-Database/internal/validation"
)

const (
	testEditor   = "curator"
	testPassword = "hunter22"
)

var fastHash = auth.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

type testEnv struct {
	url         string
	store       *store.Store
	configPath  string
	sessionPath string
}

// setupTestEnv starts the catalog API over an in-memory store seeded with
// cards, and points a client config at it.
func setupTestEnv(t *testing.T, cards ...domain.Card) *testEnv {
	t.Helper()
	color.NoColor = true

	logger := slog.New(slog.DiscardHandler)
	st, err := store.New("", logger, store.InMemory())
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(make([]byte, auth.KeySize), 15*time.Minute)
	require.NoError(t, err)

	v := validation.New()
	services := &api.Services{
		Cards: service.NewCardService(st, v, logger),
		Auth:  service.NewAuthService(st, tokens, v, logger),
	}

	hash, err := fastHash.Hash(testPassword)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, st.SaveEditor(context.Background(), &domain.Editor{
		ID:           id.MustGenerate(id.PrefixEditor),
		Username:     testEditor,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
	for i := range cards {
		require.NoError(t, st.CreateCard(context.Background(), &cards[i]))
	}

	handler := api.NewServer(st, services, api.Options{}, logger)
	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		handler.Close()
		_ = st.Close()
	})

	dir := t.TempDir()
	return &testEnv{
		url:         srv.URL,
		store:       st,
		configPath:  filepath.Join(dir, "config.toml"),
		sessionPath: filepath.Join(dir, "session.toml"),
	}
}

// run executes one ichu invocation and returns its standard output.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	app := New(strings.NewReader(stdin), &out, &errOut)
	app.ConfigPath = e.configPath
	app.SessionPath = e.sessionPath

	cmd := NewRootCommand(app)
	cmd.SetArgs(append(args, "--server", e.url, "--no-color"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	out, err := e.run(t, testEditor+"\n"+testPassword+"\n", "login")
	require.NoError(t, err)
	require.Contains(t, out, "Logged in as curator.")
}

func testCard(cardID, name, wild, pop, cool string) domain.Card {
	return domain.Card{
		ID:    cardID,
		Name:  name,
		Stats: domain.Stats{Wild: wild, Pop: pop, Cool: cool},
		Skill: &domain.Skill{Name: "Sparkle", Description: "Total score is increased by 10%"},
	}
}

func seeded() []domain.Card {
	return []domain.Card{
		testCard("card_a", "Akio Tobikura", "3,000", "3,000", "3,000"),
		testCard("card_b", "Kokoro Hanabusa", "5,000", "1,000", "1,000"),
		testCard("card_c", "Seiya Aido", "0", "0", "0"),
	}
}

// order returns the positions of names in out, failing if one is missing.
func order(t *testing.T, out string, names ...string) []int {
	t.Helper()
	pos := make([]int, len(names))
	for i, n := range names {
		pos[i] = strings.Index(out, n)
		require.GreaterOrEqual(t, pos[i], 0, "%q not in output:\n%s", n, out)
	}
	return pos
}

func assertOrdered(t *testing.T, out string, names ...string) {
	t.Helper()
	pos := order(t, out, names...)
	for i := 1; i < len(pos); i++ {
		assert.Less(t, pos[i-1], pos[i], "%s should come before %s", names[i-1], names[i])
	}
}

func TestList_DefaultSortsByTotalDescending(t *testing.T) {
	env := setupTestEnv(t, seeded()...)

	out, err := env.run(t, "", "list")
	require.NoError(t, err)

	assertOrdered(t, out, "Akio Tobikura", "Kokoro Hanabusa", "Seiya Aido")
	assert.Contains(t, out, "9,000")
	assert.Contains(t, out, "Page 1 of 1 · 3 cards")
}

func TestList_SortAscendingByWild(t *testing.T) {
	env := setupTestEnv(t, seeded()...)

	out, err := env.run(t, "", "list", "--sort", "wild", "--dir", "asc")
	require.NoError(t, err)
	assertOrdered(t, out, "Seiya Aido", "Akio Tobikura", "Kokoro Hanabusa")
}

func TestList_Search(t *testing.T) {
	env := setupTestEnv(t, seeded()...)

	out, err := env.run(t, "", "list", "--search", "KOKORO")
	require.NoError(t, err)
	assert.Contains(t, out, "Kokoro Hanabusa")
	assert.NotContains(t, out, "Akio Tobikura")
	assert.Contains(t, out, "1 card")

	out, err = env.run(t, "", "list", "--search", "nobody")
	require.NoError(t, err)
	assert.Equal(t, "No cards found.\n", out)
}

func TestList_CategoryFilter(t *testing.T) {
	cards := seeded()
	cards[1].Skill = &domain.Skill{Name: "Mend", Description: "Stamina is restored by 50"}
	env := setupTestEnv(t, cards...)

	out, err := env.run(t, "", "list", "--category", "healer")
	require.NoError(t, err)
	assert.Contains(t, out, "Kokoro Hanabusa")
	assert.NotContains(t, out, "Akio Tobikura")
}

func TestList_Grid(t *testing.T) {
	env := setupTestEnv(t, seeded()...)

	out, err := env.run(t, "", "list", "--density", "grid")
	require.NoError(t, err)
	assert.Contains(t, out, "Etoile +5")
	assert.Contains(t, out, "stats not recorded")
	assert.Contains(t, out, "1. Akio Tobikura")
}

func TestList_PageIsClamped(t *testing.T) {
	env := setupTestEnv(t, seeded()...)

	out, err := env.run(t, "", "list", "--page", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 1 of 1")
}

func TestList_InvalidFlags(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "", "list", "--sort", "charm")
	assert.ErrorContains(t, err, "unknown sort key")

	_, err = env.run(t, "", "list", "--category", "dance")
	assert.ErrorContains(t, err, "unknown skill category")
}

func TestList_ServerDown(t *testing.T) {
	env := setupTestEnv(t)
	srv := httptest.NewServer(nil)
	env.url = srv.URL
	srv.Close()

	_, err := env.run(t, "", "list", "--timeout", "1s")
	require.Error(t, err)
	assert.Equal(t, "Could not connect to server. Make sure the backend is running.", errorText(err))
}

func TestShow(t *testing.T) {
	env := setupTestEnv(t, seeded()...)

	out, err := env.run(t, "", "show", "card_b")
	require.NoError(t, err)
	assert.Contains(t, out, "Kokoro Hanabusa")
	assert.Contains(t, out, "Etoile +5")
	assert.Contains(t, out, "7,000")
	assert.Contains(t, out, "Type: score")

	out, err = env.run(t, "", "show", "card_c")
	require.NoError(t, err)
	assert.Contains(t, out, "Stats not yet recorded")

	_, err = env.run(t, "", "show", "missing")
	require.Error(t, err)
	assert.Equal(t, "card missing not found", errorText(err))
}

func TestLoginWhoamiLogout(t *testing.T) {
	env := setupTestEnv(t)

	out, err := env.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not logged in.\n", out)

	env.login(t)
	info, err := os.Stat(env.sessionPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err = env.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as curator")

	out, err = env.run(t, "", "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out.\n", out)
	assert.NoFileExists(t, env.sessionPath)
}

func TestLogin_UsernameFlag(t *testing.T) {
	env := setupTestEnv(t)

	out, err := env.run(t, testPassword+"\n", "login", "-u", testEditor)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as curator.")
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "curator\nnope\n", "login")
	require.Error(t, err)
	assert.Equal(t, "Invalid username or password", errorText(err))
	assert.NoFileExists(t, env.sessionPath)
}

func TestWhoami_ExpiredSession(t *testing.T) {
	env := setupTestEnv(t)
	require.NoError(t, os.WriteFile(env.sessionPath, []byte("username = \"curator\"\ntoken = \"stale\"\n"), 0o600))

	out, err := env.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "the session has expired")
}

func TestEdit_RequiresLogin(t *testing.T) {
	env := setupTestEnv(t, seeded()...)

	_, err := env.run(t, "", "edit", "card_a", "--wild", "1")
	assert.ErrorIs(t, err, errLoginRequired)
}

func TestEdit_NothingToChange(t *testing.T) {
	env := setupTestEnv(t, seeded()...)
	env.login(t)

	_, err := env.run(t, "", "edit", "card_a")
	assert.ErrorContains(t, err, "nothing to change")
}

func TestEdit_Saves(t *testing.T) {
	env := setupTestEnv(t, seeded()...)
	env.login(t)

	out, err := env.run(t, "", "edit", "card_c", "--wild", "4,100", "--pop", "4,200", "--cool", "4,300", "--skill-desc", "Stamina is restored by 30")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved Seiya Aido.")
	assert.Contains(t, out, "12,600")

	stored, err := env.store.GetCard(context.Background(), "card_c")
	require.NoError(t, err)
	assert.Equal(t, "4,100", stored.Stats.Wild)
	assert.Equal(t, "Sparkle", stored.Skill.Name)
	assert.Equal(t, "Stamina is restored by 30", stored.Skill.Description)

	out, err = env.run(t, "", "list", "--category", "healer")
	require.NoError(t, err)
	assert.Contains(t, out, "Seiya Aido")
}

func TestEdit_RejectedByServer(t *testing.T) {
	env := setupTestEnv(t, seeded()...)
	env.login(t)

	_, err := env.run(t, "", "edit", "card_a", "--name", "")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(errorText(err), "Error saving card: "), errorText(err))

	stored, err := env.store.GetCard(context.Background(), "card_a")
	require.NoError(t, err)
	assert.Equal(t, "Akio Tobikura", stored.Name)
}

func TestEdit_UnknownCard(t *testing.T) {
	env := setupTestEnv(t, seeded()...)
	env.login(t)

	_, err := env.run(t, "", "edit", "missing", "--wild", "1")
	require.Error(t, err)
	assert.Equal(t, "card missing not found", errorText(err))
}

func TestDelete_Declined(t *testing.T) {
	env := setupTestEnv(t, seeded()...)
	env.login(t)

	out, err := env.run(t, "n\n", "delete", "card_b")
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to delete this card? [y/N]")
	assert.Contains(t, out, "Cancelled.")

	_, err = env.store.GetCard(context.Background(), "card_b")
	assert.NoError(t, err)
}

func TestDelete_Confirmed(t *testing.T) {
	env := setupTestEnv(t, seeded()...)
	env.login(t)

	out, err := env.run(t, "y\n", "delete", "card_b")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted Kokoro Hanabusa.")

	out, err = env.run(t, "", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Kokoro Hanabusa")
}

func TestDelete_YesFlagSkipsPrompt(t *testing.T) {
	env := setupTestEnv(t, seeded()...)
	env.login(t)

	out, err := env.run(t, "", "delete", "-y", "card_a")
	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.Contains(t, out, "Deleted Akio Tobikura.")
}

func TestDelete_RequiresLogin(t *testing.T) {
	env := setupTestEnv(t, seeded()...)

	_, err := env.run(t, "y\n", "delete", "card_a")
	assert.ErrorIs(t, err, errLoginRequired)
}

func TestExport(t *testing.T) {
	env := setupTestEnv(t, seeded()...)
	path := filepath.Join(t.TempDir(), "cards.json")

	out, err := env.run(t, "", "export", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported collection to ")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    {\n        \"")
	assert.Contains(t, string(data), "Kokoro Hanabusa")
}

func TestExport_Stdout(t *testing.T) {
	env := setupTestEnv(t, seeded()...)

	out, err := env.run(t, "", "export", "-o", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "["))
}

func TestConfigCreatedOnFirstRun(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "", "list")
	require.NoError(t, err)
	assert.FileExists(t, env.configPath)
}
