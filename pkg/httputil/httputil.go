// Package httputil maps domain errors to HTTP responses. Internal errors are
// returned without their description so infrastructure details never leak to
// clients.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"dokdig/pkg/domainerr"
)

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

var statusByCode = map[domainerr.Code]int{
	domainerr.CodeBadRequest:   http.StatusBadRequest,
	domainerr.CodeValidation:   http.StatusBadRequest,
	domainerr.CodeInvalidState: http.StatusConflict,
	domainerr.CodeUnauthorized: http.StatusUnauthorized,
	domainerr.CodeForbidden:    http.StatusForbidden,
	domainerr.CodeNotFound:     http.StatusNotFound,
	domainerr.CodeConflict:     http.StatusConflict,
	domainerr.CodeUnavailable:  http.StatusBadGateway,
	domainerr.CodeTimeout:      http.StatusGatewayTimeout,
	domainerr.CodeInternal:     http.StatusInternalServerError,
}

// WriteError writes a JSON error response derived from the error's code.
func WriteError(w http.ResponseWriter, err error) {
	code := domainerr.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := errorBody{Error: string(code)}
	if code != domainerr.CodeInternal {
		var de *domainerr.Error
		if errors.As(err, &de) {
			body.Description = de.Message()
		}
	}
	WriteJSON(w, status, body)
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
