package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"peoplectl/apiclient"
	"peoplectl/cmd/peoplectl/ui"
	"peoplectl/internal/config"
	"peoplectl/persons"
	"peoplectl/session"
)

// rootCmd launches the interactive terminal client.
var rootCmd = &cobra.Command{
	Use:   "peoplectl",
	Short: "Terminal client for the People Manager API",
	Long: `peoplectl manages person records against a People Manager backend:
sign up, log in, then browse, add, edit, and delete records interactively.

Run without arguments to start the interactive interface. The session token
persists across runs until you log out or the backend rejects it.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()

		log, closeLog, err := newClientLogger(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		client := newPersonsClient(cfg, log)
		app := ui.NewApp(cfg.GetAppName(), client, newSessionStore(cfg))

		// The UI owns the terminal; logs go to the configured file, not
		// stdout.
		if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("[peoplectl] running interface: %w", err)
		}
		return nil
	},
}

func newSessionStore(cfg config.ClientConfig) session.Store {
	return session.NewFileStore(cfg.GetTokenFile())
}

func newPersonsClient(cfg config.ClientConfig, log zerolog.Logger) *persons.Client {
	sessions := newSessionStore(cfg)
	api := apiclient.New(cfg.GetAPIBaseURL(), sessions,
		apiclient.WithTimeout(cfg.GetHTTPTimeout()),
		apiclient.WithLogger(log),
	)
	return persons.NewClient(api, sessions)
}

// newClientLogger returns a logger writing to the configured log file, or a
// no-op logger when none is set.
func newClientLogger(cfg config.ClientConfig) (zerolog.Logger, func(), error) {
	path := cfg.GetLogFile()
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("[peoplectl] opening log file %q: %w", path, err)
	}
	log := zerolog.New(file).With().Timestamp().Logger()
	return log, func() { file.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
