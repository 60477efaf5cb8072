package ui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"peoplectl/apiclient"
	apperrors "peoplectl/internal/errors"
	"peoplectl/persons"
	fakesessionstore "peoplectl/session/repofake"
)

func newTestApp(t *testing.T, withToken bool) (App, *fakesessionstore.FakeStore) {
	t.Helper()

	store := fakesessionstore.NewFakeStore()
	if withToken {
		require.NoError(t, store.SetToken(oauth2.Token{AccessToken: "T", TokenType: "bearer"}))
	}
	client := persons.NewClient(apiclient.New("http://127.0.0.1:1", store), store)
	return NewApp("People Manager", client, store), store
}

func TestInitialPageFollowsTokenPresence(t *testing.T) {
	app, _ := newTestApp(t, false)
	require.Equal(t, pageLogin, app.page)
	require.Nil(t, app.Init())

	app, _ = newTestApp(t, true)
	require.Equal(t, pagePersons, app.page)
	require.NotNil(t, app.Init(), "entering the authenticated view triggers a list fetch")
}

func TestLoginSuccessSwitchesToPersonsAndRefreshes(t *testing.T) {
	app, _ := newTestApp(t, false)

	model, cmd := app.Update(loginDoneMsg{})
	app = model.(App)
	require.Equal(t, pagePersons, app.page)
	require.NotNil(t, cmd)
	require.Contains(t, app.View(), "Logged in")
}

func TestSignupSuccessStaysUnauthenticated(t *testing.T) {
	app, _ := newTestApp(t, false)

	model, _ := app.Update(signupDoneMsg{})
	app = model.(App)
	require.Equal(t, pageLogin, app.page)
	require.Contains(t, app.View(), "Account created")
}

func TestSessionExpiryForcesLoginPage(t *testing.T) {
	app, _ := newTestApp(t, true)

	model, _ := app.Update(sessionExpiredMsg{})
	app = model.(App)
	require.Equal(t, pageLogin, app.page)
	require.Contains(t, app.View(), "Session expired")
}

func TestLogoutReturnsToLoginPage(t *testing.T) {
	app, _ := newTestApp(t, true)

	model, _ := app.Update(loggedOutMsg{})
	app = model.(App)
	require.Equal(t, pageLogin, app.page)
	require.Contains(t, app.View(), "Logged out")
}

func TestCtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t, true)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestErrorTextPrefersServerDetail(t *testing.T) {
	require.Equal(t, "Session expired. Please log in again.", errorText(apperrors.ErrSessionExpired))
	require.Equal(t, "Person not found", errorText(&apiclient.APIError{StatusCode: 404, Detail: "Person not found"}))
	require.Equal(t, "upstream exploded", errorText(&apiclient.APIError{StatusCode: 502, RawText: "upstream exploded"}))
	require.Equal(t, "Server sent an unexpected response", errorText(&apiclient.DecodeError{RawText: "<html>"}))
	require.Equal(t, "network error: dial refused", errorText(&apiclient.RequestError{Err: fmt.Errorf("dial refused")}))
}

func TestErrorNoticeIsSanitized(t *testing.T) {
	app, _ := newTestApp(t, true)

	model, _ := app.Update(errMsg{err: &apiclient.APIError{StatusCode: 400, Detail: "bad\x1b[2Jthing"}})
	app = model.(App)
	require.NotContains(t, app.View(), "\x1b[2J")
}
