package persons_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"peoplectl/apiclient"
	"peoplectl/internal/backend"
	apperrors "peoplectl/internal/errors"
	"peoplectl/internal/utils"
	"peoplectl/persons"
	fakesessionstore "peoplectl/session/repofake"
)

type integrationConfig struct{}

func (integrationConfig) GetPort() string                     { return ":0" }
func (integrationConfig) GetDatabasePath() string             { return ":memory:" }
func (integrationConfig) GetSecretKey() string                { return "integration-secret" }
func (integrationConfig) GetAccessTokenExpiry() time.Duration { return time.Hour }
func (integrationConfig) GetEnv() string                      { return "DEV" }

// newIntegrationClient runs persons.Client against the embedded backend.
func newIntegrationClient(t *testing.T) (*persons.Client, *fakesessionstore.FakeStore) {
	t.Helper()

	store, err := backend.OpenStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	server := httptest.NewServer(backend.New(integrationConfig{}, store, zerolog.Nop()).Handler())
	t.Cleanup(server.Close)

	sessions := fakesessionstore.NewFakeStore()
	return persons.NewClient(apiclient.New(server.URL, sessions), sessions), sessions
}

func TestIntegrationSignupLoginCRUD(t *testing.T) {
	client, sessions := newIntegrationClient(t)
	ctx := context.Background()
	creds := persons.Credentials{Username: "alice", Password: "pw"}

	require.NoError(t, client.Signup(ctx, creds))
	_, ok := sessions.Token()
	require.False(t, ok, "signup must not store a token")

	require.NoError(t, client.Login(ctx, creds))
	token, ok := sessions.Token()
	require.True(t, ok)
	require.NotEmpty(t, token.AccessToken)
	require.Equal(t, "bearer", token.TokenType)

	created, err := client.Create(ctx, persons.PersonInput{Name: "Alice", Roll: "R1", Age: 20, Gender: "F"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	// Round-trip: the listed record matches the created input exactly.
	items, err := client.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Alice", items[0].Name)
	require.Equal(t, "R1", items[0].Roll)
	require.Equal(t, 20, items[0].Age)
	require.Equal(t, "F", items[0].Gender)

	ref := items[0].Ref()

	patched, err := client.Patch(ctx, ref, persons.PersonPatch{Age: utils.Ptr(21)})
	require.NoError(t, err)
	require.Equal(t, 21, patched.Age)
	require.Equal(t, "Alice", patched.Name)
	require.Equal(t, "R1", patched.Roll)
	require.Equal(t, "F", patched.Gender)

	replaced, err := client.Replace(ctx, ref, persons.PersonInput{Name: "Alicia", Roll: "R9", Age: 22, Gender: "F"})
	require.NoError(t, err)
	require.Equal(t, "Alicia", replaced.Name)

	require.NoError(t, client.Delete(ctx, ref))

	items, err = client.List(ctx, "")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestIntegrationStaleTokenForcesLogout(t *testing.T) {
	client, sessions := newIntegrationClient(t)
	ctx := context.Background()

	// A token the backend never minted.
	require.NoError(t, sessions.SetToken(oauth2.Token{AccessToken: "forged", TokenType: "bearer"}))

	_, err := client.List(ctx, "")
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)

	_, ok := sessions.Token()
	require.False(t, ok)
}

func TestIntegrationSearch(t *testing.T) {
	client, _ := newIntegrationClient(t)
	ctx := context.Background()
	creds := persons.Credentials{Username: "alice", Password: "pw"}

	require.NoError(t, client.Signup(ctx, creds))
	require.NoError(t, client.Login(ctx, creds))

	for _, in := range []persons.PersonInput{
		{Name: "Alice", Roll: "R1", Age: 20, Gender: "F"},
		{Name: "Bob", Roll: "R2", Age: 30, Gender: "M"},
	} {
		_, err := client.Create(ctx, in)
		require.NoError(t, err)
	}

	items, err := client.List(ctx, "ali")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Alice", items[0].Name)
}
