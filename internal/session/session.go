// Package session owns the authentication token and current-user
// identity. It verifies persisted tokens on startup and exposes the
// login/logout transitions the views delegate to.
package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BalaShivaTeja/note-taking-app/internal/api"
)

// Verifier checks a token against the backend. It is an interface so
// the controller can be unit-tested with a stub.
type Verifier interface {
	Me(ctx context.Context, token string) (api.User, error)
}

type Controller struct {
	store    Store
	verifier Verifier
	log      zerolog.Logger

	token     string
	user      api.User
	verifying bool
}

func New(store Store, verifier Verifier, log zerolog.Logger) *Controller {
	return &Controller{store: store, verifier: verifier, log: log}
}

// Start loads the persisted token and, when one is present, verifies it
// against /me. Any verification failure (including transport errors) is
// treated as an invalid token: the persisted token is cleared and the
// controller ends up unauthenticated.
func (c *Controller) Start(ctx context.Context) {
	token, err := c.store.Load()
	if err != nil {
		c.log.Warn().Err(err).Msg("load persisted token")
		return
	}
	if token == "" {
		return
	}

	c.verifying = true
	defer func() { c.verifying = false }()

	user, err := c.verifier.Me(ctx, token)
	if err != nil {
		c.log.Debug().Err(err).Msg("persisted token rejected")
		if err := c.store.Clear(); err != nil {
			c.log.Warn().Err(err).Msg("clear persisted token")
		}
		c.token = ""
		c.user = api.User{}
		return
	}

	c.token = token
	c.user = user
}

// Login persists the token and adopts the identity optimistically from
// the submitted username; a later /me call may correct it. A persist
// failure only costs durability, so the in-memory session is kept.
func (c *Controller) Login(token, username string) {
	if err := c.store.Save(token); err != nil {
		c.log.Warn().Err(err).Msg("persist token")
	}
	c.token = token
	c.user = api.User{Username: username}
}

// Logout clears the persisted token and the in-memory session.
func (c *Controller) Logout() {
	if err := c.store.Clear(); err != nil {
		c.log.Warn().Err(err).Msg("clear persisted token")
	}
	c.token = ""
	c.user = api.User{}
}

func (c *Controller) Authenticated() bool { return c.token != "" }
func (c *Controller) Verifying() bool     { return c.verifying }
func (c *Controller) Token() string       { return c.token }
func (c *Controller) Username() string    { return c.user.Username }
