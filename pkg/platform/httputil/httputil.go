// Package httputil centralizes JSON response writing so every handler emits
// the same envelopes.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "pidkit/pkg/domain-errors"
)

var codeStatuses = map[dErrors.Code]int{
	dErrors.CodeBadRequest:  http.StatusBadRequest,
	dErrors.CodeValidation:  http.StatusBadRequest,
	dErrors.CodeNotFound:    http.StatusNotFound,
	dErrors.CodeConflict:    http.StatusConflict,
	dErrors.CodeUnavailable: http.StatusServiceUnavailable,
	dErrors.CodeInternal:    http.StatusInternalServerError,
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope.
// Internal errors expose only their code; other codes include the message as
// error_description so clients can surface it.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status, ok := codeStatuses[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal {
		if msg := dErrors.MessageOf(err); msg != "" {
			body["error_description"] = msg
		}
	}
	WriteJSON(w, status, body)
}
