// Package session owns the identity side of the directory: account sign-up
// and sign-in, redis-persisted sessions, and auth-state-change notification.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/member-directory/internal/auth/password"
	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/events"
	"github.com/spec-kit/member-directory/internal/repository"
)

var (
	// ErrNoSession indicates the token does not resolve to a live session.
	ErrNoSession = errors.New("no session")
	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken indicates a duplicate registration.
	ErrEmailTaken = errors.New("email already registered")
	// ErrAccountSuspended indicates the account may not sign in.
	ErrAccountSuspended = errors.New("account suspended")
)

// AuthEvent names a session-state transition.
type AuthEvent string

const (
	SignedIn       AuthEvent = "SIGNED_IN"
	SignedOut      AuthEvent = "SIGNED_OUT"
	TokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

// Change carries the session affected by an auth event. Session is nil for
// SignedOut.
type Change struct {
	Token   string
	UserID  string
	Session *domain.Session
}

// ChangeCallback receives auth-state-change notifications. Callbacks are
// invoked synchronously on the goroutine that mutated the session state and
// must not call back into the store; defer further requests to another
// goroutine or queue.
type ChangeCallback func(event AuthEvent, change Change)

// Store issues and tracks authentication sessions.
type Store interface {
	SignUp(ctx context.Context, email, password, name string) (*domain.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	SignOut(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (*domain.Session, error)
	RefreshSession(ctx context.Context, token string) (*domain.Session, error)
	ActiveSessions(ctx context.Context) ([]domain.Session, error)
	OnAuthStateChange(cb ChangeCallback) (unsubscribe func())
}

const sessionKeyPrefix = "session:"

// Options configures the redis-backed store.
type Options struct {
	SessionTTL  time.Duration
	BcryptCost  int
	DefaultRole domain.Role
}

type redisStore struct {
	client     *redis.Client
	accounts   repository.AccountRepository
	roles      repository.RoleRepository
	dispatcher events.Dispatcher
	opts       Options
	logger     *zap.Logger
}

// NewRedisStore builds a Store persisting sessions in redis and accounts in
// postgres.
func NewRedisStore(client *redis.Client, accounts repository.AccountRepository, roles repository.RoleRepository, dispatcher events.Dispatcher, opts Options, logger *zap.Logger) Store {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 7 * 24 * time.Hour
	}
	if opts.DefaultRole == "" {
		opts.DefaultRole = domain.RoleBasic
	}
	return &redisStore{
		client:     client,
		accounts:   accounts,
		roles:      roles,
		dispatcher: dispatcher,
		opts:       opts,
		logger:     logger,
	}
}

func (s *redisStore) SignUp(ctx context.Context, email, plainPassword, name string) (*domain.Session, error) {
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := password.Hash(plainPassword, s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Status:       domain.AccountStatusActive,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	if err := s.roles.Set(ctx, account.ID, s.opts.DefaultRole); err != nil {
		return nil, err
	}

	return s.openSession(ctx, account)
}

func (s *redisStore) SignInWithPassword(ctx context.Context, email, plainPassword string) (*domain.Session, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if account.Status != domain.AccountStatusActive {
		return nil, ErrAccountSuspended
	}
	if err := password.Compare(account.PasswordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(ctx, account)
}

func (s *redisStore) SignOut(ctx context.Context, token string) error {
	sess, err := s.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil
		}
		return err
	}

	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return err
	}

	s.publish(ctx, events.EventSignedOut, Change{Token: token, UserID: sess.UserID})
	return nil
}

func (s *redisStore) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	if sess.Expired(time.Now()) {
		_ = s.client.Del(ctx, sessionKeyPrefix+token).Err()
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *redisStore) RefreshSession(ctx context.Context, token string) (*domain.Session, error) {
	sess, err := s.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}

	sess.ExpiresAt = time.Now().Add(s.opts.SessionTTL)
	if err := s.put(ctx, sess); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTokenRefreshed, Change{Token: sess.Token, UserID: sess.UserID, Session: sess})
	return sess, nil
}

func (s *redisStore) ActiveSessions(ctx context.Context) ([]domain.Session, error) {
	var sessions []domain.Session

	iter := s.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		raw, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		var sess domain.Session
		if err := json.Unmarshal(raw, &sess); err != nil {
			s.logger.Warn("dropping unreadable session record", zap.String("key", iter.Val()), zap.Error(err))
			continue
		}
		if sess.Expired(time.Now()) {
			continue
		}
		sessions = append(sessions, sess)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *redisStore) OnAuthStateChange(cb ChangeCallback) func() {
	deliver := func(event AuthEvent) events.EventHandler {
		return func(_ context.Context, e events.Event) error {
			payload, ok := e.Payload.(events.AuthStatePayload)
			if !ok {
				return nil
			}
			cb(event, Change{Token: payload.Token, UserID: payload.UserID, Session: payload.Session})
			return nil
		}
	}

	unsubs := []func(){
		s.dispatcher.Subscribe(events.EventSignedIn, deliver(SignedIn)),
		s.dispatcher.Subscribe(events.EventSignedOut, deliver(SignedOut)),
		s.dispatcher.Subscribe(events.EventTokenRefreshed, deliver(TokenRefreshed)),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

func (s *redisStore) openSession(ctx context.Context, account *domain.Account) (*domain.Session, error) {
	now := time.Now()
	sess := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    account.ID,
		Email:     account.Email,
		Name:      account.Name,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.opts.SessionTTL),
	}
	if err := s.put(ctx, sess); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventSignedIn, Change{Token: sess.Token, UserID: sess.UserID, Session: sess})
	return sess, nil
}

func (s *redisStore) put(ctx context.Context, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrNoSession
	}
	return s.client.Set(ctx, sessionKeyPrefix+sess.Token, raw, ttl).Err()
}

func (s *redisStore) publish(ctx context.Context, eventType events.EventType, change Change) {
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload: events.AuthStatePayload{
			Token:   change.Token,
			UserID:  change.UserID,
			Session: change.Session,
		},
	})
}
