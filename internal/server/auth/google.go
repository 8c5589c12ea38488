package auth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

var (
	errGoogleNotConfigured = errors.New("google client id is not configured")
	errEmptyCredential     = errors.New("empty credential")
	errMissingEmail        = errors.New("token carries no email")
)

// GoogleIdentity is what QuickNotes needs from a verified Google ID token.
type GoogleIdentity struct {
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
}

type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleIdentity, error)
}

// IDTokenVerifier checks signature, issuer, expiry and audience of Google ID
// tokens against Google's published keys.
type IDTokenVerifier struct {
	audience string
	validate func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{audience: clientID, validate: idtoken.Validate}
}

func (v *IDTokenVerifier) Verify(ctx context.Context, credential string) (*GoogleIdentity, error) {
	// idtoken skips the audience check for an empty audience.
	if v.audience == "" {
		return nil, errGoogleNotConfigured
	}
	if credential == "" {
		return nil, errEmptyCredential
	}

	payload, err := v.validate(ctx, credential, v.audience)
	if err != nil {
		return nil, fmt.Errorf("validate id token: %w", err)
	}

	id := identityFromPayload(payload)
	if id.Email == "" {
		return nil, errMissingEmail
	}
	return id, nil
}

func identityFromPayload(p *idtoken.Payload) *GoogleIdentity {
	id := &GoogleIdentity{Subject: p.Subject}
	id.Email, _ = p.Claims["email"].(string)
	id.Name, _ = p.Claims["name"].(string)

	switch v := p.Claims["email_verified"].(type) {
	case bool:
		id.EmailVerified = v
	case string:
		id.EmailVerified = v == "true"
	}
	return id
}
