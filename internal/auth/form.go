// Package auth holds the login/signup form state machine: client-side
// validation, the signup-then-login submit sequence, and the error and
// loading flags the front end renders.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/BalaShivaTeja/note-taking-app/internal/api"
	"github.com/BalaShivaTeja/note-taking-app/internal/stringsx"
)

type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// Validation errors, in the order the rules run. The first failing rule
// aborts submission before any network call.
var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrBusy is returned when Submit is called while a previous submit
	// is still in flight.
	ErrBusy = errors.New("submit already in progress")
)

// Authenticator is the slice of the API client the form needs.
type Authenticator interface {
	Signup(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
}

type Form struct {
	client Authenticator

	Mode     Mode
	Username string
	Password string
	Confirm  string

	Err     string
	Loading bool
}

func NewForm(client Authenticator) *Form {
	return &Form{client: client, Mode: ModeLogin}
}

// SwitchMode changes between login and signup, clearing messages and
// resetting every field including the confirm-password buffer.
func (f *Form) SwitchMode(m Mode) {
	f.Mode = m
	f.Username = ""
	f.Password = ""
	f.Confirm = ""
	f.Err = ""
}

// Validate applies the client-side rules in order; the first failure
// wins.
func (f *Form) Validate() error {
	if stringsx.IsEmpty(f.Username) {
		return ErrUsernameRequired
	}
	if len(strings.TrimSpace(f.Username)) < 3 {
		return ErrUsernameTooShort
	}
	if f.Password == "" {
		return ErrPasswordRequired
	}
	if len(f.Password) < 6 {
		return ErrPasswordTooShort
	}
	if f.Mode == ModeSignup && f.Password != f.Confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// Submit runs validation and then the network sequence: in signup mode
// POST /signup first, aborting on failure; both modes converge on POST
// /login. On success it returns the token and the trimmed username for
// the session controller's optimistic login. Failures land in f.Err as
// the message to render.
func (f *Form) Submit(ctx context.Context) (token, username string, err error) {
	if f.Loading {
		return "", "", ErrBusy
	}

	f.Err = ""
	if err := f.Validate(); err != nil {
		f.Err = err.Error()
		return "", "", err
	}

	f.Loading = true
	defer func() { f.Loading = false }()

	username = strings.TrimSpace(f.Username)

	if f.Mode == ModeSignup {
		if err := f.client.Signup(ctx, username, f.Password); err != nil {
			f.Err = surface(err, "signup failed")
			return "", "", err
		}
	}

	token, err = f.client.Login(ctx, username, f.Password)
	if err != nil {
		f.Err = surface(err, "login failed")
		return "", "", err
	}
	return token, username, nil
}

// surface maps an error from the API client to the message shown to the
// user: server detail when present, a generic fallback for detail-less
// server errors, a fixed message for transport failures.
func surface(err error, fallback string) string {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr):
		return api.ErrorMessage(err, fallback)
	case errors.Is(err, api.ErrNoToken):
		return "no token received"
	default:
		return "network error, try again"
	}
}
