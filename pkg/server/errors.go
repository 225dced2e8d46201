package server

import (
	"encoding/json"
	"errors"
	"net/http"

	errs "github.com/matzehuels/latticekit/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeMalformedInput, errs.ErrCodeInvalidInput, errs.ErrCodeInvalidConfig,
		errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidPath, errs.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeNetwork:
		return http.StatusBadGateway
	case errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	status := StatusFor(code)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		code, status = errs.ErrCodeInvalidInput, http.StatusRequestEntityTooLarge
	}
	if code == "" {
		code = errs.ErrCodeInternal
	}

	msg := errs.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}

func notFoundError(r *http.Request) error {
	return errs.New(errs.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

func writeMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorBody{
		Code:    errs.ErrCodeUnsupported,
		Message: "method " + r.Method + " not allowed on " + r.URL.Path,
	})
}
