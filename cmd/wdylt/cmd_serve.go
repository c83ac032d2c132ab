package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wdylt/wdylt/internal/api"
	"github.com/wdylt/wdylt/internal/authz"
	"github.com/wdylt/wdylt/internal/linkcheck"
	"github.com/wdylt/wdylt/internal/metadata"
)

func (c *cli) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the library as a JSON API",
		Long: `Serves folders, bookmarks and bits over HTTP.

Callers authenticate with an HS256 bearer token (see "wdylt token").
Anonymous callers can only read items that are not private.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			var verifier *authz.Verifier
			if c.cfg.Auth.JWTSecret != "" {
				verifier = authz.NewVerifier(c.cfg.Auth.JWTSecret)
			} else {
				c.logger.Warn("auth.jwt_secret is not set, every caller is anonymous")
			}

			srv := api.New(api.Options{
				Library:  c.lib,
				Verifier: verifier,
				Guard:    authz.AnyOf(authz.RoleGuard(), authz.AllowList(c.cfg.Auth.AdminSubjects...)),
				Checker:  c.newChecker(),
				Fetcher:  metadata.NewFetcher(nil, c.cfg.LinkCheck.Timeout),
				Metrics:  c.metrics,
				Gatherer: c.registry,
				Logger:   c.logger,
				RateLimit: api.RateLimit{
					RPS:   c.cfg.Server.RateLimit.RPS,
					Burst: c.cfg.Server.RateLimit.Burst,
				},
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c.logger.Info("serving", zap.String("addr", addr))
			return srv.Run(ctx, addr, c.cfg.Server.ShutdownTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.addr)")
	return cmd
}

func (c *cli) newChecker() *linkcheck.Checker {
	return linkcheck.New(linkcheck.Options{
		Concurrency:    c.cfg.LinkCheck.Concurrency,
		Timeout:        c.cfg.LinkCheck.Timeout,
		ExcludeDomains: c.cfg.LinkCheck.ExcludeDomains,
		Logger:         c.logger,
	})
}

func (c *cli) tokenCmd() *cobra.Command {
	var (
		name string
		role string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Issue an API bearer token",
		Example: `  wdylt token alice
  wdylt token ops --role admin --ttl 1h`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Auth.JWTSecret == "" {
				return errors.New("auth.jwt_secret is not set")
			}
			token, err := authz.NewVerifier(c.cfg.Auth.JWTSecret).Issue(authz.Principal{
				Subject: args[0],
				Name:    name,
				Role:    role,
			}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", "", `role claim, "admin" grants admin routes`)
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
