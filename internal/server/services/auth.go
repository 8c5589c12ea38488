// Package services contains server-side business logic. This file implements
// AuthService: email/password signup and login, Google sign-in with account
// linking, and issuing bearer tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/quicknotes/internal/common"
	"github.com/dmitrijs2005/quicknotes/internal/server/auth"
	"github.com/dmitrijs2005/quicknotes/internal/server/config"
	"github.com/dmitrijs2005/quicknotes/internal/server/models"
	"github.com/dmitrijs2005/quicknotes/internal/server/repositories/repomanager"
)

// AuthResult is a freshly issued bearer token and the account it belongs to.
type AuthResult struct {
	Token string                 `json:"token"`
	User  *models.AccountSummary `json:"user"`
}

type AuthService struct {
	repomanager                 repomanager.RepositoryManager
	google                      auth.GoogleVerifier
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	passwordHashCost            int
}

// NewAuthService constructs an AuthService using repositories, a Google
// ID-token verifier and server config.
func NewAuthService(m repomanager.RepositoryManager, google auth.GoogleVerifier, cfg *config.Config) *AuthService {
	return &AuthService{
		repomanager:                 m,
		google:                      google,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		passwordHashCost:            cfg.PasswordHashCost,
	}
}

// Signup registers an email/password account. It does not log the user in.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.AccountSummary, error) {
	if name == "" || email == "" || password == "" {
		return nil, common.ErrMissingSignupFields
	}

	hash, err := auth.HashPassword(password, s.passwordHashCost)
	if err != nil {
		if errors.Is(err, common.ErrPasswordTooLong) {
			return nil, common.ErrPasswordTooLong
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account, err := s.repomanager.Accounts().Create(ctx, &models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrUserExists
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return account.Summary(), nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrMissingLoginFields
	}

	account, err := s.repomanager.Accounts().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error searching account: %w", err)
	}

	if !account.HasPassword() {
		return nil, common.ErrUseGoogleSignIn
	}
	if !auth.CheckPassword(*account.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(account)
}

// GoogleAuth signs in with a Google ID token. An unknown email creates a new
// account; an existing email/password account gets the Google identity
// attached on its first Google sign-in.
func (s *AuthService) GoogleAuth(ctx context.Context, credential string) (*AuthResult, error) {
	identity, err := s.google.Verify(ctx, credential)
	if err != nil || !identity.EmailVerified {
		return nil, common.ErrGoogleAuthFailed
	}

	account, err := s.findOrCreateGoogleAccount(ctx, identity)
	if err != nil {
		return nil, err
	}

	return s.issue(account)
}

// Me returns the summary of the account a token was issued to.
func (s *AuthService) Me(ctx context.Context, accountID int64) (*models.AccountSummary, error) {
	account, err := s.repomanager.Accounts().FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error searching account: %w", err)
	}
	return account.Summary(), nil
}

// --- helpers below ---

func (s *AuthService) findOrCreateGoogleAccount(ctx context.Context, identity *auth.GoogleIdentity) (*models.Account, error) {
	repo := s.repomanager.Accounts()

	account, err := repo.FindByEmail(ctx, identity.Email)
	if err == nil {
		return s.linkGoogle(ctx, account, identity)
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching account: %w", err)
	}

	provider := common.GoogleProvider
	subject := identity.Subject
	account, err = repo.Create(ctx, &models.Account{
		Name:       identity.Name,
		Email:      identity.Email,
		Provider:   &provider,
		ProviderID: &subject,
	})
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, common.ErrorAlreadyExists) {
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	// Another request created the account first.
	account, err = repo.FindByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// The Google identity belongs to an account under another email.
			return nil, common.ErrGoogleAuthFailed
		}
		return nil, fmt.Errorf("error searching account: %w", err)
	}
	return s.linkGoogle(ctx, account, identity)
}

func (s *AuthService) linkGoogle(ctx context.Context, account *models.Account, identity *auth.GoogleIdentity) (*models.Account, error) {
	if account.HasProvider() {
		return account, nil
	}

	repo := s.repomanager.Accounts()
	linked, err := repo.LinkProvider(ctx, account.ID, common.GoogleProvider, identity.Subject, identity.Name)
	switch {
	case err == nil:
		return linked, nil
	case errors.Is(err, common.ErrorNotFound):
		// Linked concurrently; the stored identity wins.
		current, err := repo.FindByID(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("error searching account: %w", err)
		}
		return current, nil
	case errors.Is(err, common.ErrorAlreadyExists):
		return nil, common.ErrGoogleAuthFailed
	default:
		return nil, fmt.Errorf("error linking account: %w", err)
	}
}

func (s *AuthService) issue(account *models.Account) (*AuthResult, error) {
	token, err := auth.GenerateToken(account.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &AuthResult{Token: token, User: account.Summary()}, nil
}
