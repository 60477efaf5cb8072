package apiclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"peoplectl/apiclient"
	apperrors "peoplectl/internal/errors"
	fakesessionstore "peoplectl/session/repofake"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*apiclient.Client, *fakesessionstore.FakeStore) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := fakesessionstore.NewFakeStore()
	return apiclient.New(server.URL, store), store
}

func TestDoAttachesBearerHeaderWhenAuthenticated(t *testing.T) {
	var gotAuth, gotContentType, gotRequestID string
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	})
	require.NoError(t, store.SetToken(oauth2.Token{AccessToken: "T", TokenType: "bearer"}))

	err := client.Do(context.Background(), http.MethodPost, "/persons", map[string]string{"name": "Alice"}, nil, true)
	require.NoError(t, err)
	require.Equal(t, "Bearer T", gotAuth)
	require.Equal(t, "application/json", gotContentType)
	require.NotEmpty(t, gotRequestID)
}

func TestDoOmitsAuthAndContentTypeWhenAbsent(t *testing.T) {
	var gotAuth, gotContentType string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	})

	err := client.Do(context.Background(), http.MethodGet, "/persons", nil, nil, true)
	require.NoError(t, err)
	require.Empty(t, gotAuth, "no token stored, no Authorization header")
	require.Empty(t, gotContentType, "no body, no Content-Type header")
}

func TestDoDecodesResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"T","token_type":"bearer"}`))
	})

	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := client.Do(context.Background(), http.MethodPost, "/auth/login", map[string]string{"username": "u"}, &out, false)
	require.NoError(t, err)
	require.Equal(t, "T", out.AccessToken)
}

func TestDo401OnAuthenticatedCallClearsSession(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Invalid authentication credentials"}`, http.StatusUnauthorized)
	})
	require.NoError(t, store.SetToken(oauth2.Token{AccessToken: "stale"}))

	err := client.Do(context.Background(), http.MethodGet, "/persons", nil, nil, true)
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)
	require.Equal(t, 1, store.ClearCallCount())

	_, ok := store.Token()
	require.False(t, ok)
}

func TestDo401OnUnauthenticatedCallIsAPIError(t *testing.T) {
	// A failed login is a server-reported error, not a session expiry.
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Incorrect username or password"}`, http.StatusUnauthorized)
	})

	err := client.Do(context.Background(), http.MethodPost, "/auth/login", map[string]string{"username": "u"}, nil, false)
	require.NotErrorIs(t, err, apperrors.ErrSessionExpired)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Incorrect username or password", apiErr.Detail)
	require.Equal(t, 0, store.ClearCallCount())
}

func TestDoNonJSONErrorBodyKeptAsRawText(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	err := client.Do(context.Background(), http.MethodGet, "/persons", nil, nil, true)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Empty(t, apiErr.Detail)
	require.Equal(t, "upstream exploded", apiErr.RawText)
	require.Equal(t, "upstream exploded", apiErr.Error())
}

func TestDoMalformedSuccessBodyIsDecodeError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	var out map[string]any
	err := client.Do(context.Background(), http.MethodGet, "/persons", nil, &out, true)

	var decodeErr *apiclient.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, "<html>not json</html>", decodeErr.RawText)
}

func TestDoTransportFailureIsRequestError(t *testing.T) {
	store := fakesessionstore.NewFakeStore()
	// Nothing listens here; connection is refused.
	client := apiclient.New("http://127.0.0.1:1", store)

	err := client.Do(context.Background(), http.MethodGet, "/persons", nil, nil, true)

	var reqErr *apiclient.RequestError
	require.ErrorAs(t, err, &reqErr)
}
