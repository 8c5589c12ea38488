package rest

import (
	"net/http"

	"github.com/dmitrijs2005/quicknotes/internal/common"
	"github.com/dmitrijs2005/quicknotes/internal/server/models"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	Message string                 `json:"message"`
	User    *models.AccountSummary `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleRequest struct {
	Credential string `json:"credential"`
}

type meResponse struct {
	User *models.AccountSummary `json:"user"`
}

func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err, msgSomethingWentWrong)
		return
	}

	user, err := s.auth.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err, msgSomethingWentWrong)
		return
	}

	writeJSON(w, http.StatusCreated, signupResponse{Message: "User created successfully", User: user})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err, msgSomethingWentWrong)
		return
	}

	res, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err, msgSomethingWentWrong)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *HTTPServer) handleGoogle(w http.ResponseWriter, r *http.Request) {
	var req googleRequest
	if err := decodeBody(w, r, &req); err != nil {
		// Not even a credential to check.
		s.writeError(w, r, common.ErrGoogleAuthFailed, msgSomethingWentWrong)
		return
	}

	res, err := s.auth.GoogleAuth(r.Context(), req.Credential)
	if err != nil {
		s.writeError(w, r, err, msgSomethingWentWrong)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountIDFromContext(r.Context())

	user, err := s.auth.Me(r.Context(), accountID)
	if err != nil {
		s.writeError(w, r, err, msgSomethingWentWrong)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{User: user})
}
