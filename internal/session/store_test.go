package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/member-directory/internal/auth/password"
	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/events"
)

type mockAccountRepo struct {
	mu       sync.Mutex
	byEmail  map[string]*domain.Account
	createFn func(ctx context.Context, account *domain.Account) error
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{byEmail: make(map[string]*domain.Account)}
}

func (m *mockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	if m.createFn != nil {
		return m.createFn(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account.ID = "acc-" + account.Email
	m.byEmail[account.Email] = account
	return nil
}

func (m *mockAccountRepo) Update(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byEmail[account.Email] = account
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range m.byEmail {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if account, ok := m.byEmail[email]; ok {
		return account, nil
	}
	return nil, pgx.ErrNoRows
}

type mockRoleRepo struct {
	mu    sync.Mutex
	roles map[string]domain.Role
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{roles: make(map[string]domain.Role)}
}

func (m *mockRoleRepo) Get(_ context.Context, userID string) (domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if role, ok := m.roles[userID]; ok {
		return role, nil
	}
	return "", pgx.ErrNoRows
}

func (m *mockRoleRepo) GetMany(_ context.Context, userIDs []string) (map[string]domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]domain.Role)
	for _, id := range userIDs {
		if role, ok := m.roles[id]; ok {
			out[id] = role
		}
	}
	return out, nil
}

func (m *mockRoleRepo) Set(_ context.Context, userID string, role domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[userID] = role
	return nil
}

func newTestStore(t *testing.T) (Store, *mockAccountRepo, *mockRoleRepo) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	accounts := newMockAccountRepo()
	roles := newMockRoleRepo()
	store := NewRedisStore(client, accounts, roles, events.NewInMemoryDispatcher(), Options{
		SessionTTL: time.Hour,
		BcryptCost: 4,
	}, zap.NewNop())
	return store, accounts, roles
}

func TestSignUpOpensSessionAndAssignsDefaultRole(t *testing.T) {
	store, _, roles := newTestStore(t)
	ctx := context.Background()

	sess, err := store.SignUp(ctx, "ana@example.com", "s3cret-pass", "Ana")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	assert.Equal(t, "Ana", sess.Name)

	role, err := roles.Get(ctx, sess.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleBasic, role)

	got, err := store.GetSession(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.SignUp(ctx, "ana@example.com", "s3cret-pass", "Ana")
	require.NoError(t, err)

	_, err = store.SignUp(ctx, "ana@example.com", "other-pass", "Imposter")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInWithPassword(t *testing.T) {
	store, accounts, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.SignUp(ctx, "ana@example.com", "s3cret-pass", "Ana")
	require.NoError(t, err)

	sess, err := store.SignInWithPassword(ctx, "ana@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", sess.Email)

	_, err = store.SignInWithPassword(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = store.SignInWithPassword(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	account, err := accounts.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	account.Status = domain.AccountStatusSuspended
	require.NoError(t, accounts.Update(ctx, account))

	_, err = store.SignInWithPassword(ctx, "ana@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrAccountSuspended)
}

func TestSignOutRemovesSessionAndNotifies(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	var mu sync.Mutex
	var seen []AuthEvent
	unsubscribe := store.OnAuthStateChange(func(event AuthEvent, _ Change) {
		mu.Lock()
		seen = append(seen, event)
		mu.Unlock()
	})
	defer unsubscribe()

	sess, err := store.SignUp(ctx, "ana@example.com", "s3cret-pass", "Ana")
	require.NoError(t, err)

	require.NoError(t, store.SignOut(ctx, sess.Token))
	_, err = store.GetSession(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNoSession)

	// Signing out an already-gone session is not an error.
	require.NoError(t, store.SignOut(ctx, sess.Token))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []AuthEvent{SignedIn, SignedOut}, seen)
}

func TestRefreshSessionExtendsExpiry(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	sess, err := store.SignUp(ctx, "ana@example.com", "s3cret-pass", "Ana")
	require.NoError(t, err)

	refreshed, err := store.RefreshSession(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, refreshed.Token)
	assert.False(t, refreshed.ExpiresAt.Before(sess.ExpiresAt))

	_, err = store.RefreshSession(ctx, "unknown-token")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestActiveSessionsListsLiveSessions(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.SignUp(ctx, "ana@example.com", "s3cret-pass", "Ana")
	require.NoError(t, err)
	second, err := store.SignUp(ctx, "ben@example.com", "s3cret-pass", "Ben")
	require.NoError(t, err)

	sessions, err := store.ActiveSessions(ctx)
	require.NoError(t, err)

	tokens := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		tokens = append(tokens, sess.Token)
	}
	assert.ElementsMatch(t, []string{first.Token, second.Token}, tokens)
}

func TestPasswordHashingIsNotPlaintext(t *testing.T) {
	store, accounts, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.SignUp(ctx, "ana@example.com", "s3cret-pass", "Ana")
	require.NoError(t, err)

	account, err := accounts.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", account.PasswordHash)
	assert.NoError(t, password.Compare(account.PasswordHash, "s3cret-pass"))
}
