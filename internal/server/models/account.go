// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is a QuickNotes user. PasswordHash is nil for accounts created
// through Google sign-in; Provider and ProviderID are nil until the account
// signs in with Google for the first time.
type Account struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash *string
	Provider     *string
	ProviderID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can log in with email/password.
func (a *Account) HasPassword() bool {
	return a.PasswordHash != nil && *a.PasswordHash != ""
}

// HasProvider reports whether an external identity is already attached.
func (a *Account) HasProvider() bool {
	return a.Provider != nil && *a.Provider != ""
}

// Summary strips everything that must not leave the server.
func (a *Account) Summary() *AccountSummary {
	return &AccountSummary{ID: a.ID, Name: a.Name, Email: a.Email}
}

// AccountSummary is the account as returned to clients.
type AccountSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
