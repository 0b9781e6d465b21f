package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/etnz/capgains/api"
	"github.com/google/subcommands"
)

// shutdownTimeout bounds the time given to in-flight requests on shutdown.
const shutdownTimeout = 30 * time.Second

type serveCmd struct {
	addr    string
	origins string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serves the computations over HTTP" }
func (*serveCmd) Usage() string {
	return `cgt serve [-addr <address>] [-origins <list>]

  Starts an HTTP server exposing the computations as a JSON API. The requests
  carry their own history, the ledger files are not read. See 'cgt topic
  serve' for the endpoints.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	addr := os.Getenv(EnvAddr)
	if addr == "" {
		addr = ":8080"
	}
	f.StringVar(&c.addr, "addr", addr, "Address to listen on. Defaults to $"+EnvAddr)
	f.StringVar(&c.origins, "origins", os.Getenv(EnvAllowedOrigins), "Comma separated list of the origins allowed by CORS. Defaults to $"+EnvAllowedOrigins)
}

// config returns the API configuration from the flags.
func (c *serveCmd) config() api.Config {
	var cfg api.Config
	for _, origin := range strings.Split(c.origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}
	return cfg
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// requests are always logged
	log.SetOutput(os.Stderr)

	server := &http.Server{
		Addr:         c.addr,
		Handler:      api.NewRouter(c.config()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", c.addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	case <-ctx.Done():
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: server forced to shutdown: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Println("server exited")
	return subcommands.ExitSuccess
}
