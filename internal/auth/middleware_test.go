package auth_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/member-directory/internal/auth"
	"github.com/spec-kit/member-directory/internal/authstate"
	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/session"
)

// fakeStore serves a fixed session set without redis.
type fakeStore struct {
	sessions map[string]domain.Session
}

func (f *fakeStore) SignUp(context.Context, string, string, string) (*domain.Session, error) {
	return nil, session.ErrNoSession
}

func (f *fakeStore) SignInWithPassword(context.Context, string, string) (*domain.Session, error) {
	return nil, session.ErrInvalidCredentials
}

func (f *fakeStore) SignOut(context.Context, string) error { return nil }

func (f *fakeStore) GetSession(_ context.Context, token string) (*domain.Session, error) {
	if sess, ok := f.sessions[token]; ok {
		return &sess, nil
	}
	return nil, session.ErrNoSession
}

func (f *fakeStore) RefreshSession(context.Context, string) (*domain.Session, error) {
	return nil, session.ErrNoSession
}

func (f *fakeStore) ActiveSessions(context.Context) ([]domain.Session, error) {
	out := make([]domain.Session, 0, len(f.sessions))
	for _, sess := range f.sessions {
		out = append(out, sess)
	}
	return out, nil
}

func (f *fakeStore) OnAuthStateChange(session.ChangeCallback) func() {
	return func() {}
}

type fixedResolver struct {
	byUser map[string]authstate.Resolution
}

func (r fixedResolver) Resolve(_ context.Context, userID string) (authstate.Resolution, error) {
	return r.byUser[userID], nil
}

func guardedApp(t *testing.T, policy auth.Policy) (*fiber.App, *auth.TokenManager) {
	t.Helper()

	now := time.Now()
	store := &fakeStore{sessions: map[string]domain.Session{
		"tok-basic":   {Token: "tok-basic", UserID: "basic-user", IssuedAt: now, ExpiresAt: now.Add(time.Hour)},
		"tok-devotee": {Token: "tok-devotee", UserID: "devotee-user", IssuedAt: now, ExpiresAt: now.Add(time.Hour)},
	}}
	resolver := fixedResolver{byUser: map[string]authstate.Resolution{
		"basic-user":   {Role: domain.RoleBasic},
		"devotee-user": {HasProfile: true, Role: domain.RoleDevotee},
	}}

	tracker := authstate.New(store, resolver, zap.NewNop())
	require.NoError(t, tracker.Start(context.Background()))
	t.Cleanup(tracker.Close)

	tokens := auth.NewTokenManager("test-secret", 60)
	middleware := auth.NewMiddleware(tokens, tracker)

	app := fiber.New()
	app.Use(middleware.Handle)
	app.Get("/gated", middleware.Guard(policy), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, tokens
}

func bearerFor(t *testing.T, tokens *auth.TokenManager, userID, sessionToken string) string {
	t.Helper()
	token, _, err := tokens.GenerateToken(userID, sessionToken)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestGuardRedirectsAnonymousToAuth(t *testing.T) {
	app, _ := guardedApp(t, auth.PolicyStrict)

	req := httptest.NewRequest("GET", "/gated", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, auth.PathAuth, resp.Header.Get("Location"))
}

func TestGuardRedirectsBasicMemberHome(t *testing.T) {
	app, tokens := guardedApp(t, auth.PolicyStrict)

	req := httptest.NewRequest("GET", "/gated", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, "basic-user", "tok-basic"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, auth.PathHome, resp.Header.Get("Location"))
}

func TestGuardAdmitsDevotee(t *testing.T) {
	app, tokens := guardedApp(t, auth.PolicyStrict)

	req := httptest.NewRequest("GET", "/gated", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, "devotee-user", "tok-devotee"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGuardAdminNoticeInRedirect(t *testing.T) {
	app, tokens := guardedApp(t, auth.PolicyAdminOnly)

	req := httptest.NewRequest("GET", "/gated", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, "devotee-user", "tok-devotee"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "notice=")
}

func TestGuardIgnoresMalformedBearer(t *testing.T) {
	app, _ := guardedApp(t, auth.PolicyAuthenticatedOnly)

	req := httptest.NewRequest("GET", "/gated", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)

	// A garbage token degrades to anonymous rather than erroring.
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, auth.PathAuth, resp.Header.Get("Location"))
}
