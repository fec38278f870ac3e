package main

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/auth"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/cache"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/models"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/render"
	"github.com/spf13/cobra"
)

func (a *app) authClient() (*auth.Client, error) {
	return auth.New(a.client.BaseURL(), a.client.HTTPClient())
}

// limitedAuthClient throttles sign-in attempts when redis is the cache
// backend. The returned func closes the limiter's connection.
func (a *app) limitedAuthClient(ctx context.Context) (*auth.Client, func(), error) {

	noop := func() {}

	if a.cfg.Cache.Backend != "redis" {
		c, err := a.authClient()
		return c, noop, err
	}

	rdb, err := cache.NewRedisClient(ctx, &a.cfg.RedisConnect)
	if err != nil {
		slog.Warn("Sign-in rate limit disabled", slog.String("error", err.Error()))
		c, err := a.authClient()
		return c, noop, err
	}

	c, err := auth.New(a.client.BaseURL(), a.client.HTTPClient(),
		auth.WithLimiter(cache.NewRateLimiter(rdb, &a.cfg.RateConfig)))
	if err != nil {
		_ = rdb.Close()
		return nil, noop, err
	}

	return c, func() { _ = rdb.Close() }, nil
}

func (a *app) printSession(s *models.Session) error {
	if a.jsonOut {
		return render.JSONSuccess(a.out, s)
	}

	return a.printer().Session(s)
}

func (a *app) signInCmd() *cobra.Command {

	var req models.LoginRequest

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {

			c, closeLimiter, err := a.limitedAuthClient(cmd.Context())
			if err != nil {
				return err
			}
			defer closeLimiter()

			session, err := c.SignIn(cmd.Context(), req)
			if err != nil {
				return err
			}

			return a.printSession(session)
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")

	return cmd
}

func (a *app) signUpCmd() *cobra.Command {

	var req models.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {

			c, err := a.authClient()
			if err != nil {
				return err
			}

			session, err := c.SignUp(cmd.Context(), req)
			if err != nil {
				return err
			}

			return a.printSession(session)
		},
	}

	cmd.Flags().StringVar(&req.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")

	return cmd
}
