package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BalaShivaTeja/note-taking-app/internal/api"
)

type stubClient struct {
	listFn   func(ctx context.Context, token string) ([]api.Note, error)
	createFn func(ctx context.Context, token, title, content string) (api.Note, error)
	updateFn func(ctx context.Context, token string, id int64, title, content string) (api.Note, error)
	deleteFn func(ctx context.Context, token string, id int64) error
}

func (s stubClient) ListNotes(ctx context.Context, token string) ([]api.Note, error) {
	return s.listFn(ctx, token)
}
func (s stubClient) CreateNote(ctx context.Context, token, title, content string) (api.Note, error) {
	return s.createFn(ctx, token, title, content)
}
func (s stubClient) UpdateNote(ctx context.Context, token string, id int64, title, content string) (api.Note, error) {
	return s.updateFn(ctx, token, id, title, content)
}
func (s stubClient) DeleteNote(ctx context.Context, token string, id int64) error {
	return s.deleteFn(ctx, token, id)
}

func noLogout(t *testing.T) func() {
	t.Helper()
	return func() { t.Fatal("unexpected logout") }
}

func always(string) bool { return true }

func TestFetch(t *testing.T) {
	t.Run("replaces list and clears error", func(t *testing.T) {
		want := []api.Note{
			{ID: 1, Title: "Welcome", Content: "This is your first note!", CreatedAt: time.Now()},
			{ID: 2, Title: "Shopping List", Content: "Milk, Eggs, Bread"},
		}
		c := NewController(stubClient{
			listFn: func(_ context.Context, token string) ([]api.Note, error) {
				require.Equal(t, "tok1", token)
				return want, nil
			},
		}, "tok1", noLogout(t), always)
		c.Err = "stale error"

		c.Fetch(context.Background())
		require.Equal(t, want, c.Notes)
		require.Equal(t, "", c.Err)
		require.False(t, c.Loading)
	})

	t.Run("401 delegates to logout", func(t *testing.T) {
		loggedOut := false
		c := NewController(stubClient{
			listFn: func(context.Context, string) ([]api.Note, error) {
				return nil, api.ErrUnauthorized
			},
		}, "tok1", func() { loggedOut = true }, always)

		c.Fetch(context.Background())
		require.True(t, loggedOut)
		require.Equal(t, "", c.Err)
	})

	t.Run("server error sets generic message", func(t *testing.T) {
		c := NewController(stubClient{
			listFn: func(context.Context, string) ([]api.Note, error) {
				return nil, &api.APIError{Status: 500}
			},
		}, "tok1", noLogout(t), always)

		c.Fetch(context.Background())
		require.Equal(t, "failed to load notes", c.Err)
	})

	t.Run("network error sets generic message", func(t *testing.T) {
		c := NewController(stubClient{
			listFn: func(context.Context, string) ([]api.Note, error) {
				return nil, errors.New("connection refused")
			},
		}, "tok1", noLogout(t), always)

		c.Fetch(context.Background())
		require.Equal(t, "network error, try again", c.Err)
	})
}

func TestAdd(t *testing.T) {
	t.Run("required fields checked before any call", func(t *testing.T) {
		c := NewController(stubClient{
			createFn: func(context.Context, string, string, string) (api.Note, error) {
				t.Fatal("unexpected create call")
				return api.Note{}, nil
			},
		}, "tok1", noLogout(t), always)
		c.NewTitle = "Groceries"
		c.NewContent = "   "

		c.Add(context.Background())
		require.Equal(t, "title and content are required", c.AddErr)
	})

	t.Run("success clears form and refetches", func(t *testing.T) {
		var calls []string
		c := NewController(stubClient{
			createFn: func(_ context.Context, _, title, content string) (api.Note, error) {
				calls = append(calls, "create")
				require.Equal(t, "Groceries", title)
				require.Equal(t, "Milk, eggs", content)
				return api.Note{ID: 3, Title: title, Content: content}, nil
			},
			listFn: func(context.Context, string) ([]api.Note, error) {
				calls = append(calls, "list")
				return []api.Note{{ID: 3, Title: "Groceries", Content: "Milk, eggs"}}, nil
			},
		}, "tok1", noLogout(t), always)
		c.NewTitle = "Groceries"
		c.NewContent = "Milk, eggs"

		c.Add(context.Background())
		require.Equal(t, []string{"create", "list"}, calls)
		require.Equal(t, "", c.NewTitle)
		require.Equal(t, "", c.NewContent)
		require.Equal(t, "", c.AddErr)
		require.Len(t, c.Notes, 1)
	})

	t.Run("server detail lands in AddErr", func(t *testing.T) {
		c := NewController(stubClient{
			createFn: func(context.Context, string, string, string) (api.Note, error) {
				return api.Note{}, &api.APIError{Status: 422, Detail: "title too long"}
			},
		}, "tok1", noLogout(t), always)
		c.NewTitle = "t"
		c.NewContent = "c"

		c.Add(context.Background())
		require.Equal(t, "title too long", c.AddErr)
		// Buffers survive so the user can correct and retry.
		require.Equal(t, "t", c.NewTitle)
	})

	t.Run("401 delegates to logout", func(t *testing.T) {
		loggedOut := false
		c := NewController(stubClient{
			createFn: func(context.Context, string, string, string) (api.Note, error) {
				return api.Note{}, api.ErrUnauthorized
			},
		}, "tok1", func() { loggedOut = true }, always)
		c.NewTitle = "t"
		c.NewContent = "c"

		c.Add(context.Background())
		require.True(t, loggedOut)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("success exits edit mode and refetches", func(t *testing.T) {
		var calls []string
		c := NewController(stubClient{
			updateFn: func(_ context.Context, _ string, id int64, title, content string) (api.Note, error) {
				calls = append(calls, "update")
				require.Equal(t, int64(2), id)
				require.Equal(t, "Shopping", title)
				return api.Note{ID: id, Title: title, Content: content}, nil
			},
			listFn: func(context.Context, string) ([]api.Note, error) {
				calls = append(calls, "list")
				return nil, nil
			},
		}, "tok1", noLogout(t), always)
		c.StartEdit(api.Note{ID: 2, Title: "Shopping List", Content: "Milk"})
		c.Editing.Title = "Shopping"

		c.Update(context.Background())
		require.Equal(t, []string{"update", "list"}, calls)
		require.Nil(t, c.Editing)
	})

	t.Run("empty fields rejected before any call", func(t *testing.T) {
		c := NewController(stubClient{
			updateFn: func(context.Context, string, int64, string, string) (api.Note, error) {
				t.Fatal("unexpected update call")
				return api.Note{}, nil
			},
		}, "tok1", noLogout(t), always)
		c.StartEdit(api.Note{ID: 2, Title: "x", Content: "y"})
		c.Editing.Content = ""

		c.Update(context.Background())
		require.Equal(t, "title and content are required", c.Err)
		require.NotNil(t, c.Editing) // still in edit mode
	})

	t.Run("failure keeps edit mode", func(t *testing.T) {
		c := NewController(stubClient{
			updateFn: func(context.Context, string, int64, string, string) (api.Note, error) {
				return api.Note{}, &api.APIError{Status: 500}
			},
		}, "tok1", noLogout(t), always)
		c.StartEdit(api.Note{ID: 2, Title: "x", Content: "y"})

		c.Update(context.Background())
		require.Equal(t, "failed to update note", c.Err)
		require.NotNil(t, c.Editing)
	})

	t.Run("401 delegates to logout", func(t *testing.T) {
		loggedOut := false
		c := NewController(stubClient{
			updateFn: func(context.Context, string, int64, string, string) (api.Note, error) {
				return api.Note{}, api.ErrUnauthorized
			},
		}, "tok1", func() { loggedOut = true }, always)
		c.StartEdit(api.Note{ID: 2, Title: "x", Content: "y"})

		c.Update(context.Background())
		require.True(t, loggedOut)
	})
}

func TestDelete(t *testing.T) {
	t.Run("declined confirmation issues no request", func(t *testing.T) {
		c := NewController(stubClient{
			deleteFn: func(context.Context, string, int64) error {
				t.Fatal("unexpected delete call")
				return nil
			},
		}, "tok1", noLogout(t), func(string) bool { return false })

		c.Delete(context.Background(), 2)
	})

	t.Run("confirmed delete refetches", func(t *testing.T) {
		var calls []string
		c := NewController(stubClient{
			deleteFn: func(_ context.Context, _ string, id int64) error {
				calls = append(calls, "delete")
				require.Equal(t, int64(2), id)
				return nil
			},
			listFn: func(context.Context, string) ([]api.Note, error) {
				calls = append(calls, "list")
				return nil, nil
			},
		}, "tok1", noLogout(t), always)

		c.Delete(context.Background(), 2)
		require.Equal(t, []string{"delete", "list"}, calls)
	})

	t.Run("401 delegates to logout", func(t *testing.T) {
		loggedOut := false
		c := NewController(stubClient{
			deleteFn: func(context.Context, string, int64) error {
				return api.ErrUnauthorized
			},
		}, "tok1", func() { loggedOut = true }, always)

		c.Delete(context.Background(), 2)
		require.True(t, loggedOut)
	})
}

func TestCancelEdit(t *testing.T) {
	c := NewController(stubClient{}, "tok1", noLogout(t), always)
	c.StartEdit(api.Note{ID: 1, Title: "t", Content: "c"})
	require.NotNil(t, c.Editing)

	c.CancelEdit()
	require.Nil(t, c.Editing)
}
