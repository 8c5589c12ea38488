// Package cli implements the interactive QuickNotes terminal client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/quicknotes/internal/client/api"
	"github.com/dmitrijs2005/quicknotes/internal/client/config"
	"github.com/dmitrijs2005/quicknotes/internal/client/googlelogin"
	"github.com/dmitrijs2005/quicknotes/internal/client/session"
)

// notesAPI is the part of api.Client the CLI uses.
type notesAPI interface {
	Signup(ctx context.Context, name, email, password string) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Google(ctx context.Context, credential string) (*api.AuthResult, error)
	Me(ctx context.Context, token string) (*api.User, error)
	ListNotes(ctx context.Context, token, search string) ([]api.Note, error)
	CreateNote(ctx context.Context, token, title, content string) (*api.Note, error)
	UpdateNote(ctx context.Context, token string, id int64, title, content string) error
	DeleteNote(ctx context.Context, token string, id int64) error
}

type sessionStore interface {
	Load() (*session.Session, error)
	Save(s *session.Session) error
	Clear() error
}

type App struct {
	config  *config.Config
	client  notesAPI
	store   sessionStore
	reader  *bufio.Reader
	out     io.Writer
	session *session.Session

	// googleToken runs the browser sign-in; nil means the user pastes a token.
	googleToken func(ctx context.Context) (string, error)

	// Client-side paging over the last fetched list.
	notes  []api.Note
	search string
	page   int
}

func NewApp(c *config.Config) (*App, error) {
	store := session.NewFileStore(c.SessionFile)
	a := newApp(c, api.New(c.ServerURL, c.RequestTimeout), store, os.Stdin, os.Stdout)

	if c.GoogleClientID != "" {
		flow := googlelogin.New(c.GoogleClientID, c.GoogleClientSecret, func(authURL string) {
			fmt.Fprintf(a.out, "Open this URL in your browser to sign in with Google:\n%s\n", authURL)
		})
		a.googleToken = flow.IDToken
	}

	sess, err := store.Load()
	if err != nil {
		return nil, err
	}
	a.session = sess
	return a, nil
}

func newApp(c *config.Config, client notesAPI, store sessionStore, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		client: client,
		store:  store,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to QuickNotes (type 'help' for commands)")
	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Logged in as %s <%s>\n", a.session.User.Name, a.session.User.Email)
	}
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return ""
	}
	return "(" + a.session.User.Email + ")"
}

func (a *App) token() string {
	if a.session == nil {
		return ""
	}
	return a.session.Token
}
