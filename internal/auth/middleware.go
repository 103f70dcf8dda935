package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/member-directory/internal/authstate"
	apperrors "github.com/spec-kit/member-directory/pkg/util"
)

const (
	stateKey = "auth_state"
	tokenKey = "auth_session_token"
)

// Middleware resolves the caller's authorization state on every request.
// Requests without (or with invalid) credentials proceed anonymously; the
// guards decide what an anonymous caller may reach.
type Middleware struct {
	tokens  *TokenManager
	tracker *authstate.Tracker
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, tracker *authstate.Tracker) *Middleware {
	return &Middleware{tokens: tokens, tracker: tracker}
}

// Handle attaches the authorization state snapshot to the request.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	st := authstate.Anonymous()

	if bearer := bearerToken(c); bearer != "" {
		if claims, err := m.tokens.ParseToken(bearer); err == nil {
			st = m.tracker.Lookup(c.Context(), claims.SessionToken)
			c.Locals(tokenKey, claims.SessionToken)
		}
	}

	c.Locals(stateKey, st)
	return c.Next()
}

// Guard enforces a policy, rendering the guard decision as HTTP: allowed
// requests continue, denials redirect to the policy's target, and pending
// state answers 503 so the client retries instead of being misrouted.
func (m *Middleware) Guard(policy Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st := StateFromContext(c)
		decision := Decide(st, m.tracker.Loading(), policy)

		switch {
		case decision.Allow:
			return c.Next()
		case decision.Pending:
			c.Set("Retry-After", "1")
			return fiber.NewError(http.StatusServiceUnavailable, "authorization state loading")
		default:
			target := decision.RedirectTo
			if decision.Notice != "" {
				target += "?notice=" + url.QueryEscape(decision.Notice)
			}
			return c.Redirect(target, http.StatusFound)
		}
	}
}

// RequireSession rejects requests without an authenticated session. Used by
// API-style endpoints where a redirect makes no sense.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !StateFromContext(c).Authenticated {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// StateFromContext retrieves the authorization state snapshot.
func StateFromContext(c *fiber.Ctx) authstate.State {
	if st, ok := c.Locals(stateKey).(authstate.State); ok {
		return st
	}
	return authstate.Anonymous()
}

// SessionTokenFromContext retrieves the opaque session token, when present.
func SessionTokenFromContext(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals(tokenKey).(string)
	return token, ok && token != ""
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
