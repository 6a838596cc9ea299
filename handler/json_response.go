package handler

import (
	"encoding/json"
	"net/http"
)

// Envelope is a JSON object body. Success and Fail add the "success" flag
// every API response carries.
type Envelope map[string]any

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	WriteJSON(w, j.status, j.body)
	return nil
}

type JSONOption func(*jsonResponse)

func WithStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// JSON renders v as-is with status 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Success renders fields plus "success": true.
func Success(fields Envelope, opts ...JSONOption) Response {
	body := make(Envelope, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	return JSON(body, opts...)
}

// Fail renders {"success": false, "message": message}.
func Fail(status int, message string) Response {
	return JSON(Envelope{"success": false, "message": message}, WithStatus(status))
}

type errorResponse struct{ err error }

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }

// Error hands err to the route's ErrorHandler.
func Error(err error) Response {
	return errorResponse{err: err}
}

// WriteJSON writes v with the given status. Encoding errors are ignored
// because the status line has already been sent.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
