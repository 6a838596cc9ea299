package account

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/btcpulse/handler"
	"github.com/dmitrymomot/btcpulse/pkg/auth"
	"github.com/dmitrymomot/btcpulse/pkg/binder"
	"github.com/dmitrymomot/btcpulse/pkg/logger"
	"github.com/dmitrymomot/btcpulse/pkg/ratelimiter"
)

const (
	msgUserExists         = "User exists"
	msgInvalidCredentials = "Invalid credentials"
	msgAdminsOnly         = "Access denied: Admins only"
	msgTooManyAttempts    = "Too many login attempts, try again later"
)

func (m *Module) registerHandler() http.HandlerFunc {
	return handler.Wrap(m.register,
		handler.WithBinder(binder.JSON()),
		handler.WithErrorHandler(handler.NewErrorHandler(m.logger,
			handler.WithFallbackMessage("Server error during registration"))),
	)
}

func (m *Module) register(ctx handler.Context, req auth.RegisterInput) handler.Response {
	user, err := m.auth.Register(ctx, req, m.enricher.FromRequest(ctx.Request()))
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return handler.Fail(http.StatusBadRequest, msgUserExists)
		}
		return handler.Error(err)
	}
	return m.issue(user, http.StatusCreated)
}

func (m *Module) loginHandler() http.HandlerFunc {
	return handler.Wrap(m.login,
		handler.WithBinder(binder.JSON()),
		handler.WithErrorHandler(handler.NewErrorHandler(m.logger,
			handler.WithFallbackMessage("Server error during login"))),
	)
}

func (m *Module) login(ctx handler.Context, req auth.LoginInput) handler.Response {
	user, err := m.auth.Authenticate(ctx, req, m.enricher.FromRequest(ctx.Request()))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return handler.Fail(http.StatusUnauthorized, msgInvalidCredentials)
		}
		return handler.Error(err)
	}
	return m.issue(user, http.StatusOK)
}

func (m *Module) issue(user *auth.User, status int) handler.Response {
	token, err := m.auth.IssueToken(user)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success(handler.Envelope{
		"token": token,
		"user":  user.Profile(),
	}, handler.WithStatus(status))
}

func (m *Module) loginLimited(w http.ResponseWriter, r *http.Request, _ *ratelimiter.Result) {
	m.logger.WarnContext(r.Context(), "login rate limited",
		logger.ClientIP(ratelimiter.ByIP(r)),
		logger.Component("account"),
	)
	handler.WriteJSON(w, http.StatusTooManyRequests, handler.Envelope{
		"success": false,
		"message": msgTooManyAttempts,
	})
}

func (m *Module) limiterFailed(r *http.Request, err error) {
	m.logger.ErrorContext(r.Context(), "login rate limiter unavailable",
		logger.Error(err),
		logger.Component("account"),
	)
}

// priceHandler always answers 200; the chain falls back to a static quote.
func (m *Module) priceHandler() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ handler.Empty) handler.Response {
		q := m.prices.Fetch(ctx)
		return handler.Success(handler.Envelope{
			"price":     q.Price,
			"currency":  q.Currency,
			"source":    q.Source,
			"timestamp": q.Timestamp,
		})
	}, handler.WithErrorHandler(handler.NewErrorHandler(m.logger)))
}

func (m *Module) adminUsersHandler() http.HandlerFunc {
	return handler.Wrap(m.adminUsers,
		handler.WithErrorHandler(handler.NewErrorHandler(m.logger,
			handler.WithFallbackMessage("Server error"))),
	)
}

func (m *Module) adminUsers(ctx handler.Context, _ handler.Empty) handler.Response {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return handler.Fail(http.StatusUnauthorized, "Unauthorized")
	}
	if _, err := m.auth.RequireAdmin(ctx, claims); err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			return handler.Fail(http.StatusForbidden, msgAdminsOnly)
		}
		return handler.Error(err)
	}

	users, err := m.auth.ListUsers(ctx)
	if err != nil {
		return handler.Error(err)
	}
	if users == nil {
		users = []auth.User{}
	}
	return handler.Success(handler.Envelope{"users": users})
}
