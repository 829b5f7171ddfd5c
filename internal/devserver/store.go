package devserver

import (
	"errors"
	"sync"
	"time"
)

// Note mirrors the wire shape the client consumes.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	errUserExists   = errors.New("username already registered")
	errUserUnknown  = errors.New("unknown user")
	errNoteNotFound = errors.New("note not found")
)

// store keeps everything in memory: users with their bcrypt hashes and
// per-user note lists in creation order. Ids are assigned max+1 across
// the store. State does not survive a restart; this is a dev harness,
// not the production backend.
type store struct {
	mu     sync.Mutex
	users  map[string][]byte
	notes  map[string][]Note
	nextID int64
}

func newStore() *store {
	return &store{
		users:  make(map[string][]byte),
		notes:  make(map[string][]Note),
		nextID: 1,
	}
}

func (s *store) addUser(username string, hash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return errUserExists
	}
	s.users[username] = hash
	return nil
}

func (s *store) userHash(username string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.users[username]
	if !ok {
		return nil, errUserUnknown
	}
	return hash, nil
}

func (s *store) hasUser(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[username]
	return ok
}

func (s *store) listNotes(username string) []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Note, len(s.notes[username]))
	copy(out, s.notes[username])
	return out
}

func (s *store) createNote(username, title, content string) Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := Note{
		ID:        s.nextID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.notes[username] = append(s.notes[username], n)
	return n
}

func (s *store) updateNote(username string, id int64, title, content string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.notes[username]
	for i := range list {
		if list[i].ID == id {
			list[i].Title = title
			list[i].Content = content
			return list[i], nil
		}
	}
	return Note{}, errNoteNotFound
}

func (s *store) deleteNote(username string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.notes[username]
	for i := range list {
		if list[i].ID == id {
			s.notes[username] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return errNoteNotFound
}
