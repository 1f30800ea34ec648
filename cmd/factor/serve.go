package main

import (
	"github.com/spf13/cobra"

	"github.com/seantiz/factor/internal/api"
	"github.com/seantiz/factor/internal/config"
	"github.com/seantiz/factor/internal/engine"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve factorization over HTTP",
		Long: `Starts an HTTP server exposing:

  GET  /v1/factor/{n}?timeout=5s
  POST /v1/factor   {"number": "1,000", "timeout": "5"}
  GET  /healthz
  GET  /metrics

Requests without a timeout are bounded by --default-timeout, and every
timeout is capped at --max-timeout.`,
		Args: cobra.NoArgs,
		RunE: a.serve,
	}

	f := cmd.Flags()
	f.String(config.KeyListenAddr, "", "Address to listen on (default :8080)")
	f.String(config.KeyDefaultTimeout, "", "Timeout for requests that do not set one (default 30s)")
	f.String(config.KeyMaxTimeout, "", "Upper bound on any request timeout (default 5m)")

	return cmd
}

func (a *app) serve(_ *cobra.Command, _ []string) error {
	a.logger.Info("factor: starting",
		"listen_addr", a.cfg.ListenAddr,
		"default_timeout", a.cfg.DefaultTimeout,
		"max_timeout", a.cfg.MaxTimeout,
	)

	eng := engine.NewEngine(a.logger,
		engine.WithDefaultTimeout(a.cfg.DefaultTimeout),
		engine.WithMaxTimeout(a.cfg.MaxTimeout),
	)
	srv := api.NewServer(a.cfg.ListenAddr, eng, a.logger)

	return srv.Run()
}
