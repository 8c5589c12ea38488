package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/quicknotes/internal/common"
	"github.com/dmitrijs2005/quicknotes/internal/server/auth"
	"github.com/dmitrijs2005/quicknotes/internal/server/models"
	"github.com/dmitrijs2005/quicknotes/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(google fakeGoogle) (*AuthService, *repomanager.MemoryRepositoryManager) {
	m := repomanager.NewMemoryRepositoryManager()
	return NewAuthService(m, google, testConfig()), m
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	s, m := newAuthService(nil)

	got, err := s.Signup(ctx, "Ann", "a@x.io", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, "a@x.io", got.Email)
	assert.NotZero(t, got.ID)

	stored, err := m.Accounts().FindByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	require.True(t, stored.HasPassword())
	assert.NotEqual(t, "p1", *stored.PasswordHash)
	assert.True(t, auth.CheckPassword(*stored.PasswordHash, "p1"))
}

func TestSignup_Validation(t *testing.T) {
	s, _ := newAuthService(nil)

	for _, in := range [][3]string{{"", "a@x.io", "p"}, {"Ann", "", "p"}, {"Ann", "a@x.io", ""}} {
		_, err := s.Signup(context.Background(), in[0], in[1], in[2])
		assert.Equal(t, common.ErrMissingSignupFields, err)
		assert.ErrorIs(t, err, common.ErrorValidation)
	}

	_, err := s.Signup(context.Background(), "Ann", "a@x.io", strings.Repeat("p", auth.MaxPasswordBytes+1))
	assert.Equal(t, common.ErrPasswordTooLong, err)
}

func TestSignup_Duplicate(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService(nil)

	_, err := s.Signup(ctx, "Ann", "a@x.io", "p1")
	require.NoError(t, err)

	_, err = s.Signup(ctx, "Other", "a@x.io", "p2")
	assert.Equal(t, common.ErrUserExists, err)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService(nil)

	signed, err := s.Signup(ctx, "Ann", "a@x.io", "p1")
	require.NoError(t, err)

	res, err := s.Login(ctx, "a@x.io", "p1")
	require.NoError(t, err)
	assert.Equal(t, signed, res.User)

	id, err := auth.GetAccountIDFromToken(res.Token, []byte(testConfig().SecretKey))
	require.NoError(t, err)
	assert.Equal(t, signed.ID, id)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	s, m := newAuthService(nil)

	_, err := s.Signup(ctx, "Ann", "a@x.io", "p1")
	require.NoError(t, err)

	provider, sub := common.GoogleProvider, "g-1"
	_, err = m.Accounts().Create(ctx, &models.Account{Name: "G", Email: "g@x.io", Provider: &provider, ProviderID: &sub})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{name: "missing email", email: "", password: "p1", want: common.ErrMissingLoginFields},
		{name: "missing password", email: "a@x.io", password: "", want: common.ErrMissingLoginFields},
		{name: "unknown email", email: "nobody@x.io", password: "p1", want: common.ErrUserNotFound},
		{name: "wrong password", email: "a@x.io", password: "p2", want: common.ErrInvalidCredentials},
		{name: "google only", email: "g@x.io", password: "anything", want: common.ErrUseGoogleSignIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Login(ctx, tt.email, tt.password)
			assert.Nil(t, res)
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestGoogleAuth_CreatesOnceAndReturnsSameAccount(t *testing.T) {
	ctx := context.Background()
	s, m := newAuthService(fakeGoogle{
		"cred": {Subject: "g-1", Email: "b@x.io", Name: "Bob", EmailVerified: true},
	})

	first, err := s.GoogleAuth(ctx, "cred")
	require.NoError(t, err)
	assert.Equal(t, "Bob", first.User.Name)
	assert.NotEmpty(t, first.Token)

	second, err := s.GoogleAuth(ctx, "cred")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	stored, err := m.Accounts().FindByEmail(ctx, "b@x.io")
	require.NoError(t, err)
	assert.False(t, stored.HasPassword())
	require.True(t, stored.HasProvider())
	assert.Equal(t, "g-1", *stored.ProviderID)

	// An OAuth-only account can never log in with a password.
	_, err = s.Login(ctx, "b@x.io", "whatever")
	assert.Equal(t, common.ErrUseGoogleSignIn, err)
}

func TestGoogleAuth_LinksPasswordAccount(t *testing.T) {
	ctx := context.Background()
	s, m := newAuthService(fakeGoogle{
		"cred": {Subject: "g-9", Email: "a@x.io", Name: "Google Name", EmailVerified: true},
	})

	signed, err := s.Signup(ctx, "Ann", "a@x.io", "p1")
	require.NoError(t, err)

	res, err := s.GoogleAuth(ctx, "cred")
	require.NoError(t, err)
	assert.Equal(t, signed.ID, res.User.ID)
	assert.Equal(t, "Ann", res.User.Name, "existing name is kept")

	stored, err := m.Accounts().FindByID(ctx, signed.ID)
	require.NoError(t, err)
	require.True(t, stored.HasProvider())
	assert.Equal(t, common.GoogleProvider, *stored.Provider)
	assert.Equal(t, "g-9", *stored.ProviderID)

	// Password login still works after linking.
	_, err = s.Login(ctx, "a@x.io", "p1")
	assert.NoError(t, err)
}

func TestGoogleAuth_AlreadyLinkedIsNotMutated(t *testing.T) {
	ctx := context.Background()
	s, m := newAuthService(fakeGoogle{
		"cred": {Subject: "g-other", Email: "c@x.io", Name: "New", EmailVerified: true},
	})

	provider, sub := common.GoogleProvider, "g-orig"
	created, err := m.Accounts().Create(ctx, &models.Account{Name: "Orig", Email: "c@x.io", Provider: &provider, ProviderID: &sub})
	require.NoError(t, err)

	res, err := s.GoogleAuth(ctx, "cred")
	require.NoError(t, err)
	assert.Equal(t, created.ID, res.User.ID)
	assert.Equal(t, "Orig", res.User.Name)

	stored, err := m.Accounts().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "g-orig", *stored.ProviderID)
}

func TestGoogleAuth_Rejected(t *testing.T) {
	s, _ := newAuthService(fakeGoogle{
		"unverified": {Subject: "g-1", Email: "a@x.io", EmailVerified: false},
	})

	for _, cred := range []string{"", "garbage", "unverified"} {
		res, err := s.GoogleAuth(context.Background(), cred)
		assert.Nil(t, res)
		assert.Equal(t, common.ErrGoogleAuthFailed, err, "credential %q", cred)
	}
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService(nil)

	signed, err := s.Signup(ctx, "Ann", "a@x.io", "p1")
	require.NoError(t, err)

	got, err := s.Me(ctx, signed.ID)
	require.NoError(t, err)
	assert.Equal(t, signed, got)

	_, err = s.Me(ctx, 999)
	assert.Equal(t, common.ErrUserNotFound, err)
}

func TestAuthService_StoreErrorsAreInternal(t *testing.T) {
	ctx := context.Background()
	s := NewAuthService(brokenManager{}, fakeGoogle{
		"cred": {Subject: "g", Email: "a@x.io", EmailVerified: true},
	}, testConfig())

	_, err := s.Signup(ctx, "Ann", "a@x.io", "p")
	assertInternal(t, err)
	_, err = s.Login(ctx, "a@x.io", "p")
	assertInternal(t, err)
	_, err = s.GoogleAuth(ctx, "cred")
	assertInternal(t, err)
	_, err = s.Me(ctx, 1)
	assertInternal(t, err)
}

func assertInternal(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)

	var reqErr *common.RequestError
	assert.False(t, errors.As(err, &reqErr), "store failure must not surface as a request error")
}
