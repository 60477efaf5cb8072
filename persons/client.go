package persons

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	"peoplectl/apiclient"
	apperrors "peoplectl/internal/errors"
	"peoplectl/session"
)

// Client performs all people manager operations against the backend. Every
// call except Signup and Login is authenticated with the stored bearer token.
type Client struct {
	api      *apiclient.Client
	sessions session.Store
}

func NewClient(api *apiclient.Client, sessions session.Store) *Client {
	return &Client{api: api, sessions: sessions}
}

// tokenResponse is the login response body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// mutationResponse is the envelope the backend wraps person mutations in.
type mutationResponse struct {
	Message string `json:"message"`
	Data    Person `json:"data"`
}

// listResponse is the envelope of GET /persons.
type listResponse struct {
	Items []Person `json:"items"`
}

// Signup registers a new account. It never stores a token; the caller still
// has to log in.
func (c *Client) Signup(ctx context.Context, creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	return c.api.Do(ctx, http.MethodPost, "/auth/signup", creds, nil, false)
}

// Login exchanges credentials for a bearer token and stores it as the active
// session.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	var resp tokenResponse
	if err := c.api.Do(ctx, http.MethodPost, "/auth/login", creds, &resp, false); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("[Client Login] login response carried no access token")
	}

	token := oauth2.Token{AccessToken: resp.AccessToken, TokenType: resp.TokenType}
	if err := c.sessions.SetToken(token); err != nil {
		return apperrors.Wrapf(err, "[Client Login] storing session token")
	}
	return nil
}

// Logout discards the active session. Purely local; the token is not
// revocable server-side.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

// List fetches all person records, optionally filtered by a name search term.
func (c *Client) List(ctx context.Context, search string) ([]Person, error) {
	path := "/persons"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	var resp listResponse
	if err := c.api.Do(ctx, http.MethodGet, path, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Get fetches a single record by its resolved identifier.
func (c *Client) Get(ctx context.Context, ref Ref) (Person, error) {
	var person Person
	if err := c.api.Do(ctx, http.MethodGet, ref.path(), nil, &person, true); err != nil {
		return Person{}, err
	}
	return person, nil
}

// Create adds a new record.
func (c *Client) Create(ctx context.Context, in PersonInput) (Person, error) {
	if err := in.Validate(); err != nil {
		return Person{}, err
	}

	var resp mutationResponse
	if err := c.api.Do(ctx, http.MethodPost, "/persons", in, &resp, true); err != nil {
		return Person{}, err
	}
	return resp.Data, nil
}

// Replace overwrites every client-supplied field of the record.
func (c *Client) Replace(ctx context.Context, ref Ref, in PersonInput) (Person, error) {
	if err := in.Validate(); err != nil {
		return Person{}, err
	}

	var resp mutationResponse
	if err := c.api.Do(ctx, http.MethodPut, ref.path(), in, &resp, true); err != nil {
		return Person{}, err
	}
	return resp.Data, nil
}

// Patch applies only the supplied fields. An empty patch is rejected locally
// before any network call.
func (c *Client) Patch(ctx context.Context, ref Ref, patch PersonPatch) (Person, error) {
	if patch.IsEmpty() {
		return Person{}, fmt.Errorf("nothing to update")
	}

	var resp mutationResponse
	if err := c.api.Do(ctx, http.MethodPatch, ref.path(), patch, &resp, true); err != nil {
		return Person{}, err
	}
	return resp.Data, nil
}

// Delete removes the record. Confirmation is the caller's responsibility.
func (c *Client) Delete(ctx context.Context, ref Ref) error {
	return c.api.Do(ctx, http.MethodDelete, ref.path(), nil, nil, true)
}
