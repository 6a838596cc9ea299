// Package handler adapts typed request handlers to net/http and renders
// the JSON envelope used by every API route.
//
// A handler receives a Context and its bound request and returns a
// Response:
//
//	func (h *Handler) login(ctx handler.Context, req LoginRequest) handler.Response {
//		user, err := h.auth.Authenticate(ctx, ...)
//		if errors.Is(err, auth.ErrInvalidCredentials) {
//			return handler.Fail(http.StatusUnauthorized, "Invalid credentials")
//		}
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.Success(handler.Envelope{"user": user})
//	}
//
// Errors returned through handler.Error, and bind or render failures, go
// to the route's ErrorHandler. NewErrorHandler classifies them with
// Classify: HTTPError carries its own status and message, validation errors
// become 400, malformed bodies 400 or 415, and anything else a 500 with a
// per-route fallback message.
package handler
