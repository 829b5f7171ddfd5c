// Package api is the HTTP client for the notes backend REST surface.
//
// All requests take a context, set JSON headers, and return wrapped
// errors: 401 maps to ErrUnauthorized, other non-2xx statuses to
// *APIError with the server detail when present, and transport
// failures are wrapped fmt.Errorf errors. No retries, no caching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Signup registers a new account. A non-2xx response surfaces the
// server detail via *APIError.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/signup", "", credentialsRequest{
		Username: username,
		Password: password,
	}, nil)
}

// Login exchanges credentials for a bearer token. A 200 body without an
// access_token is reported as ErrNoToken.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login", "", credentialsRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", ErrNoToken
	}
	return resp.AccessToken, nil
}

// Me verifies the token and returns the identity it belongs to.
func (c *Client) Me(ctx context.Context, token string) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/me", token, nil, &u)
	return u, err
}

func (c *Client) ListNotes(ctx context.Context, token string) ([]Note, error) {
	var notes []Note
	if err := c.do(ctx, http.MethodGet, "/notes", token, nil, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, token, title, content string) (Note, error) {
	var n Note
	err := c.do(ctx, http.MethodPost, "/notes", token, noteRequest{
		Title:   title,
		Content: content,
	}, &n)
	return n, err
}

func (c *Client) UpdateNote(ctx context.Context, token string, id int64, title, content string) (Note, error) {
	var n Note
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/notes/%d", id), token, noteRequest{
		Title:   title,
		Content: content,
	}, &n)
	return n, err
}

func (c *Client) DeleteNote(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/notes/%d", id), token, nil, nil)
}

// do issues a single request. body and out may be nil; out is only
// decoded on 2xx responses with a non-empty body.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("request")

	// A 401 on a token-carrying request means the session expired. On
	// /signup and /login it is an ordinary rejection with a detail body.
	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return &APIError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
