package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/quicknotes/internal/common"
)

const maxBodyBytes = 1 << 20

const msgSomethingWentWrong = "Something went wrong"

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError turns a service error into a response. Request errors keep their
// message; everything else is logged and answered with fallback and a 500.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if reqErr, ok := isRequestError(err); ok {
		writeJSON(w, statusFor(reqErr.Kind), errorBody{Error: reqErr.Message})
		return
	}

	s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: fallback})
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, common.ErrorValidation), errors.Is(kind, common.ErrorAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(kind, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON object into dst. An empty body leaves dst zero so
// that the missing-field checks answer it.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return common.ErrInvalidRequestBody
	}
	return nil
}

func isRequestError(err error) (*common.RequestError, bool) {
	var reqErr *common.RequestError
	ok := errors.As(err, &reqErr)
	return reqErr, ok
}
