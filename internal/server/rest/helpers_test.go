package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/quicknotes/internal/logging"
	"github.com/dmitrijs2005/quicknotes/internal/server/auth"
	"github.com/dmitrijs2005/quicknotes/internal/server/config"
	"github.com/dmitrijs2005/quicknotes/internal/server/models"
	"github.com/dmitrijs2005/quicknotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/quicknotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/quicknotes/internal/server/services"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		EndpointAddrHTTP:            "127.0.0.1:0",
		APIPrefix:                   "/api",
		SecretKey:                   testSecret,
		AccessTokenValidityDuration: time.Hour,
		PasswordHashCost:            bcrypt.MinCost,
		AllowedOrigins:              []string{"*"},
		ShutdownTimeout:             time.Second,
	}
}

type fakeGoogle map[string]*auth.GoogleIdentity

func (f fakeGoogle) Verify(ctx context.Context, credential string) (*auth.GoogleIdentity, error) {
	id, ok := f[credential]
	if !ok {
		return nil, errors.New("invalid token")
	}
	c := *id
	return &c, nil
}

func newServerWith(cfg *config.Config, m repomanager.RepositoryManager, google fakeGoogle) *HTTPServer {
	as := services.NewAuthService(m, google, cfg)
	ns := services.NewNoteService(m)
	return NewHTTPServer(cfg, logging.Nop{}, as, ns, m)
}

func newTestHandler(google fakeGoogle) http.Handler {
	return newServerWith(testConfig(), repomanager.NewMemoryRepositoryManager(), google).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorBody](t, rr).Error
}

// signupAndLogin registers an account and returns its bearer token.
func signupAndLogin(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/api/auth/signup", `{"name":"N","email":"`+email+`","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/api/auth/login", `{"email":"`+email+`","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[services.AuthResult](t, rr).Token
}

func createNote(t *testing.T, h http.Handler, token, title, content string) *models.Note {
	t.Helper()
	body, err := json.Marshal(map[string]string{"title": title, "content": content})
	require.NoError(t, err)
	rr := do(t, h, http.MethodPost, "/api/notes", string(body), token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[noteResponse](t, rr).Note
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("down") }

// failingNotesManager serves accounts from memory but fails every note call.
type failingNotesManager struct {
	*repomanager.MemoryRepositoryManager
}

func (failingNotesManager) Notes() notes.Repository { return failingNotes{} }

type failingNotes struct{}

var errNotesDown = errors.New("notes table locked")

func (failingNotes) Create(context.Context, *models.Note) (*models.Note, error) {
	return nil, errNotesDown
}
func (failingNotes) ListOwned(context.Context, int64, models.NoteFilter) ([]*models.Note, int, error) {
	return nil, 0, errNotesDown
}
func (failingNotes) UpdateOwned(context.Context, *models.Note) error { return errNotesDown }
func (failingNotes) DeleteOwned(context.Context, int64, int64) error { return errNotesDown }
