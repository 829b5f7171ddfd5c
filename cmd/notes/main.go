// Command notes is an interactive terminal client for the notes
// backend: sign up or log in, then list, add, edit and delete your
// notes. The session token is persisted so a restart picks the session
// back up after verifying it against the server.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/BalaShivaTeja/note-taking-app/internal/api"
	"github.com/BalaShivaTeja/note-taking-app/internal/auth"
	"github.com/BalaShivaTeja/note-taking-app/internal/config"
	"github.com/BalaShivaTeja/note-taking-app/internal/notes"
	"github.com/BalaShivaTeja/note-taking-app/internal/session"
	"github.com/BalaShivaTeja/note-taking-app/internal/stringsx"
)

func main() {
	_ = godotenv.Load()

	serverFlag := flag.String("server", "", "override server base URL (e.g. http://localhost:8000)")
	flag.Parse()

	cfg := config.Load()
	if *serverFlag != "" {
		cfg.ServerURL = strings.TrimRight(*serverFlag, "/")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	client := api.New(cfg.ServerURL, cfg.HTTPTimeout, log)
	sess := session.New(session.NewFileStore(cfg.TokenPath), client, log)

	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)

	fmt.Println("notes client:", cfg.ServerURL)
	fmt.Println("verifying session...")
	sess.Start(ctx)

	for {
		if !sess.Authenticated() {
			if !runAuth(ctx, in, client, sess) {
				return
			}
			continue
		}
		if !runNotes(ctx, in, client, sess) {
			return
		}
	}
}

// runAuth drives the unauthenticated view. It returns false when the
// user quits.
func runAuth(ctx context.Context, in *bufio.Scanner, client *api.Client, sess *session.Controller) bool {
	fmt.Println("\nyou are logged out. commands: login, signup, quit")
	cmd, ok := prompt(in, "> ")
	if !ok {
		return false
	}

	form := auth.NewForm(client)
	switch cmd {
	case "login":
		form.SwitchMode(auth.ModeLogin)
	case "signup":
		form.SwitchMode(auth.ModeSignup)
	case "quit", "exit":
		return false
	default:
		if cmd != "" {
			fmt.Println("unknown command:", cmd)
		}
		return true
	}

	form.Username, _ = prompt(in, "username: ")
	form.Password, _ = promptRaw(in, "password: ")
	if form.Mode == auth.ModeSignup {
		form.Confirm, _ = promptRaw(in, "confirm password: ")
	}

	token, username, err := form.Submit(ctx)
	if err != nil {
		fmt.Println("error:", form.Err)
		return true
	}

	sess.Login(token, username)
	fmt.Println("welcome,", username)
	return true
}

// runNotes drives the authenticated view until logout, session expiry
// or quit. It returns false when the user quits.
func runNotes(ctx context.Context, in *bufio.Scanner, client *api.Client, sess *session.Controller) bool {
	view := notes.NewController(client, sess.Token(), sess.Logout, func(q string) bool {
		answer, _ := prompt(in, q+" [y/N]: ")
		return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
	})

	view.Fetch(ctx)
	render(view)

	for sess.Authenticated() {
		line, ok := prompt(in, fmt.Sprintf("%s> ", sess.Username()))
		if !ok {
			return false
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "list":
			view.Fetch(ctx)
			render(view)
		case "add":
			view.NewTitle, _ = prompt(in, "title: ")
			view.NewContent, _ = prompt(in, "content: ")
			view.Add(ctx)
			render(view)
		case "edit":
			editNote(ctx, in, view, fields[1:])
			render(view)
		case "delete":
			id, err := parseID(fields[1:])
			if err != nil {
				fmt.Println("usage: delete <id>")
				continue
			}
			view.Delete(ctx, id)
			render(view)
		case "logout":
			sess.Logout()
			return true
		case "help":
			fmt.Println("commands: list, add, edit <id>, delete <id>, logout, quit")
		case "quit", "exit":
			return false
		default:
			fmt.Println("unknown command:", fields[0], "(try help)")
		}

		if !sess.Authenticated() {
			fmt.Println("session expired, please log in again")
		}
	}
	return true
}

func editNote(ctx context.Context, in *bufio.Scanner, view *notes.Controller, args []string) {
	id, err := parseID(args)
	if err != nil {
		fmt.Println("usage: edit <id>")
		return
	}

	view.CancelEdit()
	for _, n := range view.Notes {
		if n.ID == id {
			view.StartEdit(n)
			break
		}
	}
	if view.Editing == nil {
		fmt.Println("no such note:", id)
		return
	}

	// Empty input keeps the current value.
	if title, _ := prompt(in, fmt.Sprintf("title [%s]: ", view.Editing.Title)); title != "" {
		view.Editing.Title = title
	}
	if content, _ := prompt(in, fmt.Sprintf("content [%s]: ", stringsx.Summary(view.Editing.Content, 40))); content != "" {
		view.Editing.Content = content
	}

	view.Update(ctx)
}

func render(view *notes.Controller) {
	if view.Err != "" {
		fmt.Println("error:", view.Err)
		view.Err = ""
		return
	}
	if view.AddErr != "" {
		fmt.Println("error:", view.AddErr)
		view.AddErr = ""
		return
	}
	if len(view.Notes) == 0 {
		fmt.Println("no notes yet. use add to create one")
		return
	}
	for _, n := range view.Notes {
		fmt.Printf("  [%d] %s | %s (%s)\n",
			n.ID, n.Title, stringsx.Summary(n.Content, 60),
			n.CreatedAt.Local().Format("Jan 2, 2006 15:04"))
	}
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one id")
	}
	return strconv.ParseInt(args[0], 10, 64)
}

// prompt reads one trimmed line; ok is false on EOF.
func prompt(in *bufio.Scanner, label string) (string, bool) {
	s, ok := promptRaw(in, label)
	return strings.TrimSpace(s), ok
}

// promptRaw keeps the line as typed. Passwords are not trimmed.
func promptRaw(in *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimRight(in.Text(), "\r\n"), true
}
