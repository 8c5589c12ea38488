package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/quicknotes/internal/client/api"
	"github.com/dmitrijs2005/quicknotes/internal/client/session"
	"github.com/dmitrijs2005/quicknotes/internal/common"
)

var (
	errNotLoggedIn     = errors.New("please log in first")
	errAlreadyLoggedIn = errors.New("already logged in, log out first")
	errSessionExpired  = errors.New("session expired, please log in again")
)

// getSimpleText, getPassword and getMultiline are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Signup creates an account. It does not log in, matching the server, which
// issues no token on signup.
func (a *App) Signup(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadyLoggedIn
	}

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.client.Signup(ctx, name, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account created for %s. You can log in now.\n", user.Email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadyLoggedIn
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	return a.startSession(ctx, res)
}

// Google signs in with a Google ID token, obtained through the browser when
// an OAuth client is configured and pasted by the user otherwise.
func (a *App) Google(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadyLoggedIn
	}

	var (
		credential string
		err        error
	)
	if a.googleToken != nil {
		credential, err = a.googleToken(ctx)
	} else {
		credential, err = getSimpleText(a.reader, "Paste a Google ID token (credential)", a.out)
	}
	if err != nil {
		return err
	}

	res, err := a.client.Google(ctx, credential)
	if err != nil {
		return err
	}
	return a.startSession(ctx, res)
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if err := a.endSession(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	user, err := a.client.Me(ctx, a.token())
	if err != nil {
		return a.check(err)
	}
	fmt.Fprintf(a.out, "%s <%s> (id %d)\n", user.Name, user.Email, user.ID)
	return nil
}

func (a *App) startSession(ctx context.Context, res *api.AuthResult) error {
	sess := &session.Session{Token: res.Token, User: res.User}
	if err := a.store.Save(sess); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	a.session = sess

	fmt.Fprintf(a.out, "Welcome, %s!\n", res.User.Name)
	return a.List(ctx, "")
}

func (a *App) endSession() error {
	a.session = nil
	a.notes = nil
	a.search = ""
	a.page = 0
	return a.store.Clear()
}

// check drops the local session when the server no longer accepts its token.
func (a *App) check(err error) error {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Unauthorized() {
		if clearErr := a.endSession(); clearErr != nil {
			return clearErr
		}
		return errSessionExpired
	}
	return err
}
