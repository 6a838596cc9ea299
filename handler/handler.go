package handler

import (
	"net/http"
)

// HandlerFunc handles a request whose body has been bound into R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to the client.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind decodes a request into v.
type Bind func(r *http.Request, v any) error

// ErrorHandler renders an error returned by binding or rendering.
type ErrorHandler func(ctx Context, err error)

// Empty is the request type for handlers that read nothing from the body.
type Empty struct{}

type wrapConfig struct {
	binders      []Bind
	errorHandler ErrorHandler
}

type WrapOption func(*wrapConfig)

// WithBinder appends a binder. Binders run in order.
func WithBinder(b Bind) WrapOption {
	return func(c *wrapConfig) {
		if b != nil {
			c.binders = append(c.binders, b)
		}
	}
}

func WithErrorHandler(h ErrorHandler) WrapOption {
	return func(c *wrapConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// Wrap adapts a typed handler to http.HandlerFunc. Without WithErrorHandler
// errors are rendered by NewErrorHandler(nil).
//
//	r.Post("/login", handler.Wrap(h.login,
//		handler.WithBinder(binder.JSON()),
//		handler.WithErrorHandler(errs),
//	))
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption) http.HandlerFunc {
	cfg := &wrapConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.errorHandler == nil {
		cfg.errorHandler = NewErrorHandler(nil)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				cfg.errorHandler(ctx, err)
				return
			}
		}

		resp := h(ctx, req)
		if resp == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}
