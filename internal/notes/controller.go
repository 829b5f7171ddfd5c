// Package notes holds the authenticated list view state: the fetched
// notes, the add/edit form buffers, and the create/update/delete flows
// with their reload-after-mutation contract.
package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/BalaShivaTeja/note-taking-app/internal/api"
	"github.com/BalaShivaTeja/note-taking-app/internal/stringsx"
)

// Client is the slice of the API client the view needs, an interface so
// the controller can be unit-tested with a stub.
type Client interface {
	ListNotes(ctx context.Context, token string) ([]api.Note, error)
	CreateNote(ctx context.Context, token, title, content string) (api.Note, error)
	UpdateNote(ctx context.Context, token string, id int64, title, content string) (api.Note, error)
	DeleteNote(ctx context.Context, token string, id int64) error
}

// EditBuffer is the form state while a note is being edited. Its
// presence switches the single visible form from add to edit mode.
type EditBuffer struct {
	ID      int64
	Title   string
	Content string
}

type Controller struct {
	client   Client
	token    string
	onLogout func()
	confirm  func(prompt string) bool

	// Notes holds whatever the last successful fetch returned, in
	// server order.
	Notes   []api.Note
	Loading bool
	Err     string
	AddErr  string

	NewTitle   string
	NewContent string
	Editing    *EditBuffer
}

// NewController builds the view for one authenticated session. onLogout
// is invoked on any 401; confirm gates deletion and is asked before a
// DELETE request is issued.
func NewController(client Client, token string, onLogout func(), confirm func(string) bool) *Controller {
	return &Controller{client: client, token: token, onLogout: onLogout, confirm: confirm}
}

// Fetch reloads the list from the server. It runs once when the view
// appears and again after every successful mutation; the displayed list
// is never patched locally.
func (c *Controller) Fetch(ctx context.Context) {
	c.Loading = true
	defer func() { c.Loading = false }()

	notes, err := c.client.ListNotes(ctx, c.token)
	if errors.Is(err, api.ErrUnauthorized) {
		c.onLogout()
		return
	}
	if err != nil {
		c.Err = surface(err, "failed to load notes")
		return
	}
	c.Notes = notes
	c.Err = ""
}

// Add creates a note from the add-form buffers. Validation failures and
// create errors go to AddErr so the add form can render them inline.
func (c *Controller) Add(ctx context.Context) {
	if stringsx.IsEmpty(c.NewTitle) || stringsx.IsEmpty(c.NewContent) {
		c.AddErr = "title and content are required"
		return
	}
	c.AddErr = ""

	_, err := c.client.CreateNote(ctx, c.token, c.NewTitle, c.NewContent)
	if errors.Is(err, api.ErrUnauthorized) {
		c.onLogout()
		return
	}
	if err != nil {
		c.AddErr = surface(err, "failed to add note")
		return
	}

	c.NewTitle = ""
	c.NewContent = ""
	c.Fetch(ctx)
}

// StartEdit switches the form into edit mode for the given note.
func (c *Controller) StartEdit(n api.Note) {
	c.Editing = &EditBuffer{ID: n.ID, Title: n.Title, Content: n.Content}
}

// CancelEdit returns the form to add mode without saving.
func (c *Controller) CancelEdit() {
	c.Editing = nil
}

// Update saves the edit buffer. On success the form returns to add mode
// and the list is reloaded.
func (c *Controller) Update(ctx context.Context) {
	if c.Editing == nil {
		return
	}
	if stringsx.IsEmpty(c.Editing.Title) || stringsx.IsEmpty(c.Editing.Content) {
		c.Err = "title and content are required"
		return
	}

	_, err := c.client.UpdateNote(ctx, c.token, c.Editing.ID, c.Editing.Title, c.Editing.Content)
	if errors.Is(err, api.ErrUnauthorized) {
		c.onLogout()
		return
	}
	if err != nil {
		c.Err = surface(err, "failed to update note")
		return
	}

	c.Editing = nil
	c.Err = ""
	c.Fetch(ctx)
}

// Delete asks for confirmation first; declining issues no request.
func (c *Controller) Delete(ctx context.Context, id int64) {
	if !c.confirm(fmt.Sprintf("Delete note %d?", id)) {
		return
	}

	err := c.client.DeleteNote(ctx, c.token, id)
	if errors.Is(err, api.ErrUnauthorized) {
		c.onLogout()
		return
	}
	if err != nil {
		c.Err = surface(err, "failed to delete note")
		return
	}
	c.Fetch(ctx)
}

func surface(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return api.ErrorMessage(err, fallback)
	}
	return "network error, try again"
}
