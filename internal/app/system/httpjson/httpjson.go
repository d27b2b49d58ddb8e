// Package httpjson writes the API's JSON response envelope and maps
// application errors onto HTTP status codes.
//
// Every response body has the shape:
//
//	{ "message": string, "data": T | null, "error": string (optional) }
//
// Success reads are 200, creates are 201. Errors use the taxonomy in
// this package: 400 bad request (business-rule violation), 401
// unauthenticated, 403 forbidden, 404 not found, 409 conflict, and
// 500 for anything unexpected. Internal detail never leaks past the
// error string chosen by the caller.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Envelope is the wire shape of every response.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// OK writes a 200 envelope.
func OK(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusOK, Envelope{Message: message, Data: data})
}

// Created writes a 201 envelope.
func Created(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusCreated, Envelope{Message: message, Data: data})
}

// Fail writes an error envelope with the given status. The message is
// shown to users; it doubles as the machine-readable error string.
func Fail(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Message: message, Data: nil, Error: message})
}

// BadRequest writes a 400 envelope.
func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 envelope.
func Unauthorized(w http.ResponseWriter, message string) {
	Fail(w, http.StatusUnauthorized, message)
}

// Forbidden writes a 403 envelope.
func Forbidden(w http.ResponseWriter, message string) {
	Fail(w, http.StatusForbidden, message)
}

// NotFound writes a 404 envelope.
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, message)
}

// Conflict writes a 409 envelope.
func Conflict(w http.ResponseWriter, message string) {
	Fail(w, http.StatusConflict, message)
}

// ConflictWithData writes a 409 envelope that still carries data, for
// create endpoints that hand back the existing record.
func ConflictWithData(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusConflict, Envelope{Message: message, Data: data, Error: message})
}

// Internal logs the underlying error and writes a generic 500 envelope.
// The error itself stays in the log.
func Internal(w http.ResponseWriter, log *zap.Logger, message string, err error) {
	if log != nil {
		log.Error(message, zap.Error(err))
	}
	Fail(w, http.StatusInternalServerError, message)
}

// Decode reads a JSON request body into dst. Returns false (after
// writing a 400 envelope) when the body is malformed.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		BadRequest(w, "invalid request body")
		return false
	}
	return true
}

// DecodeOptional is Decode for endpoints where the whole body is
// optional. An empty body leaves dst at its zero value.
func DecodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(w, "invalid request body")
		return false
	}
	return true
}
