// Package devserver is an in-memory backend implementing the REST
// surface the client consumes: /signup, /login, /me and the /notes
// CRUD. It exists for local development and integration tests; the
// production backend is a separate system.
//
// Error bodies carry a "detail" field, matching what the client
// surfaces to the user.
package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type Server struct {
	secret   []byte
	tokenTTL time.Duration
	log      zerolog.Logger
	store    *store
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func New(secret string, log zerolog.Logger) *Server {
	return &Server{
		secret:   []byte(secret),
		tokenTTL: 72 * time.Hour,
		log:      log,
		store:    newStore(),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/signup", s.signup)
	r.Post("/login", s.login)
	r.Get("/me", s.me)

	r.Get("/notes", s.listNotes)
	r.Post("/notes", s.createNote)
	r.Put("/notes/{id}", s.updateNote)
	r.Delete("/notes/{id}", s.deleteNote)

	return r
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, "username and password required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "hash password")
		return
	}
	if err := s.store.addUser(req.Username, hash); err != nil {
		writeDetail(w, http.StatusBadRequest, "username already registered")
		return
	}

	s.log.Info().Str("username", req.Username).Msg("user registered")
	writeJSON(w, http.StatusCreated, map[string]string{"username": req.Username})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid json")
		return
	}

	hash, err := s.store.userHash(req.Username)
	if err != nil || bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
		writeDetail(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = req.Username
	claims["exp"] = time.Now().Add(s.tokenTTL).Unix()

	signed, err := token.SignedString(s.secret)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "sign token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_token": signed})
}

// authenticate resolves the bearer token to a username, or writes a 401
// and returns false.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		writeDetail(w, http.StatusUnauthorized, "missing bearer token")
		return "", false
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		writeDetail(w, http.StatusUnauthorized, "invalid or expired token")
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "invalid token claims")
		return "", false
	}
	username, _ := claims["username"].(string)
	if username == "" || !s.store.hasUser(username) {
		writeDetail(w, http.StatusUnauthorized, "invalid or expired token")
		return "", false
	}
	return username, true
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	username, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"username": username})
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	username, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.store.listNotes(username))
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	username, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Title == "" || req.Content == "" {
		writeDetail(w, http.StatusBadRequest, "title and content required")
		return
	}

	writeJSON(w, http.StatusCreated, s.store.createNote(username, req.Title, req.Content))
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	username, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Title == "" || req.Content == "" {
		writeDetail(w, http.StatusBadRequest, "title and content required")
		return
	}

	n, err := s.store.updateNote(username, id, req.Title, req.Content)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Note not found")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	username, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.store.deleteNote(username, id); err != nil {
		writeDetail(w, http.StatusNotFound, "Note not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
