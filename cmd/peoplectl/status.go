package main

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"peoplectl/internal/config"
)

// statusCmd reports whether a session token is stored and, when the token is
// a JWT, its unverified claims. Purely informational: expiry is still
// discovered reactively through a 401, never locally enforced.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		sessions := newSessionStore(cfg)

		token, ok := sessions.Token()
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "no session: not logged in")
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "session token present (%s)\n", tokenTypeOrDefault(token.TokenType))
		fmt.Fprintf(out, "stored at: %s\n", cfg.GetTokenFile())

		subject, expiry, err := unverifiedClaims(token.AccessToken)
		if err != nil {
			// Opaque tokens are fine; there is just nothing to show.
			return nil
		}
		if subject != "" {
			fmt.Fprintf(out, "subject: %s\n", subject)
		}
		if !expiry.IsZero() {
			fmt.Fprintf(out, "expires: %s\n", expiry.Format(time.RFC3339))
		}
		return nil
	},
}

func tokenTypeOrDefault(tokenType string) string {
	if tokenType == "" {
		return "bearer"
	}
	return tokenType
}

// unverifiedClaims extracts display-only claims without checking the
// signature; the client holds no key and never trusts these values.
func unverifiedClaims(rawToken string) (string, time.Time, error) {
	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return "", time.Time{}, err
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return "", time.Time{}, fmt.Errorf("unexpected claims type")
	}

	subject, _ := claims["sub"].(string)

	var expiry time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiry = exp.Time
	}
	return subject, expiry, nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
