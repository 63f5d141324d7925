package server

import (
	"encoding/json"
	"net/http"
)

// apiError is the machine-readable half of an error reply.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// envelope is the wire shape of every reply: exactly one of Data or
// Error is set.
type envelope struct {
	Data  any       `json:"data,omitempty"`
	Error *apiError `json:"error,omitempty"`
}

// Error codes clients can dispatch on.
const (
	codeBadRequest = "bad_request"
	codeInternal   = "internal_error"
)

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// The status line is already out; nothing useful to do with an
	// encode failure here.
	_ = json.NewEncoder(w).Encode(body)
}

// writeData replies 200 with the payload under "data".
func writeData(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, envelope{Data: v})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{Error: &apiError{Code: code, Message: message}})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, codeBadRequest, message)
}

func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, codeInternal, message)
}
