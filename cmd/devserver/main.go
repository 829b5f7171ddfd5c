package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/BalaShivaTeja/note-taking-app/internal/devserver"
)

// Dev backend for the notes client. Everything is in memory; restart
// and it forgets.
func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	addr := os.Getenv("DEVSERVER_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	secret := os.Getenv("DEVSERVER_SECRET")
	if secret == "" {
		secret = "dev-secret"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           devserver.New(secret, log).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("dev notes backend listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
