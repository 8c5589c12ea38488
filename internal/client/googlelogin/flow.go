// Package googlelogin obtains a Google ID token for the CLI with the OAuth
// authorization-code flow and a loopback redirect.
package googlelogin

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"golang.org/x/oauth2"
	googleOAuth "golang.org/x/oauth2/google"

	"github.com/dmitrijs2005/quicknotes/internal/common"
)

var Scopes = []string{"openid", "email", "profile"}

var ErrNoIDToken = errors.New("token response carries no id_token")

// Flow runs one sign-in per call to IDToken. Prompt is called with the URL
// the user has to open in a browser.
type Flow struct {
	config *oauth2.Config
	Prompt func(authURL string)
}

func New(clientID, clientSecret string, prompt func(authURL string)) *Flow {
	return NewWithEndpoint(clientID, clientSecret, googleOAuth.Endpoint, prompt)
}

func NewWithEndpoint(clientID, clientSecret string, endpoint oauth2.Endpoint, prompt func(authURL string)) *Flow {
	return &Flow{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       Scopes,
			Endpoint:     endpoint,
		},
		Prompt: prompt,
	}
}

type callbackResult struct {
	code string
	err  error
}

// IDToken waits for the browser to come back to the loopback listener,
// exchanges the code and returns the id_token from the token response.
func (f *Flow) IDToken(ctx context.Context) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}

	cfg := *f.config
	cfg.RedirectURL = "http://" + ln.Addr().String() + "/callback"

	state, err := common.MakeRandHexString(16)
	if err != nil {
		ln.Close()
		return "", err
	}
	verifier := oauth2.GenerateVerifier()

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		// Requests not carrying our state are not answers to this sign-in.
		if q.Get("state") != state {
			http.Error(w, "Unknown sign-in request.", http.StatusBadRequest)
			return
		}

		var res callbackResult
		switch {
		case q.Get("error") != "":
			res.err = fmt.Errorf("authorization denied: %s", q.Get("error"))
		case q.Get("code") == "":
			res.err = errors.New("missing authorization code")
		default:
			res.code = q.Get("code")
		}

		if res.err != nil {
			http.Error(w, "Sign-in failed. You can close this window.", http.StatusBadRequest)
		} else {
			fmt.Fprintln(w, "Signed in. You can close this window and return to the terminal.")
		}

		select {
		case results <- res:
		default:
		}
	})

	srv := &http.Server{Handler: mux}
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()

	f.Prompt(cfg.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier)))

	var res callbackResult
	select {
	case res = <-results:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	if res.err != nil {
		return "", res.err
	}

	tok, err := cfg.Exchange(ctx, res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}

	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		return "", ErrNoIDToken
	}
	return idToken, nil
}
