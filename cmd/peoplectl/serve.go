package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"peoplectl/internal/backend"
	"peoplectl/internal/config"
)

// serveCmd runs the reference People Manager backend locally, so the client
// has something to talk to out of the box.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference People Manager API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

		displayAppname(cfg.GetAppName())

		store, err := backend.OpenStore(cfg.GetDatabasePath())
		if err != nil {
			return err
		}
		defer store.Close()

		server := &http.Server{
			Addr:    cfg.GetPort(),
			Handler: backend.New(cfg, store, log).Handler(),
		}

		go func() {
			log.Info().Str("addr", server.Addr).Str("db", cfg.GetDatabasePath()).Msg("server listening")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("server stopped")
			}
		}()

		waitForStopSignal()
		return shutdown(server, log)
	},
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info().Msg("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
