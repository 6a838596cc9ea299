package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/btcpulse/pkg/binder"
	"github.com/dmitrymomot/btcpulse/pkg/logger"
	"github.com/dmitrymomot/btcpulse/pkg/requestid"
	"github.com/dmitrymomot/btcpulse/pkg/validator"
)

// ErrorInfo is the client-facing classification of an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Fields     validator.ValidationErrors
}

// Classify maps err to a status and message. HTTPError wins, then
// validation errors (400), then bind errors (400 or 415). Anything else is
// a 500 with fallback as the message.
func Classify(err error, fallback string) ErrorInfo {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return ErrorInfo{StatusCode: httpErr.Code, Message: httpErr.Message}
	}

	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return ErrorInfo{StatusCode: http.StatusBadRequest, Message: ve.First(), Fields: ve}
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return ErrorInfo{StatusCode: ErrUnsupportedMedia.Code, Message: ErrUnsupportedMedia.Message}
	case binder.IsBindError(err):
		return ErrorInfo{StatusCode: ErrBadRequest.Code, Message: ErrBadRequest.Message}
	}

	return ErrorInfo{StatusCode: http.StatusInternalServerError, Message: fallback}
}

type errorHandlerConfig struct {
	fallback string
}

type ErrorHandlerOption func(*errorHandlerConfig)

// WithFallbackMessage sets the message sent for unclassified errors.
func WithFallbackMessage(msg string) ErrorHandlerOption {
	return func(c *errorHandlerConfig) { c.fallback = msg }
}

// NewErrorHandler renders errors as {"success":false,"message":...} and
// logs them: client errors at WARN, server errors at ERROR. A nil log
// discards.
func NewErrorHandler(log *slog.Logger, opts ...ErrorHandlerOption) ErrorHandler {
	cfg := errorHandlerConfig{fallback: ErrInternalServerError.Message}
	for _, opt := range opts {
		opt(&cfg)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := Classify(err, cfg.fallback)

		level := slog.LevelWarn
		if info.StatusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			logger.Status(info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("http"),
		)

		body := Envelope{"success": false, "message": info.Message}
		if len(info.Fields) > 0 {
			body["errors"] = info.Fields
		}
		WriteJSON(ctx.ResponseWriter(), info.StatusCode, body)
	}
}
