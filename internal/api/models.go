package api

import "time"

// Note is a single note as returned by the backend. Ids and timestamps
// are server-assigned; the client never generates them.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// User is the identity returned by GET /me. Extra fields in the
// response body are ignored.
type User struct {
	Username string `json:"username"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type errorBody struct {
	Detail string `json:"detail"`
}
