// Package authstate maintains the observable authorization state for every
// live session: whether the subject has a directory profile and which role
// it holds. The tracker is kept consistent with the session store through
// its change notifications; it never polls.
package authstate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/repository"
	"github.com/spec-kit/member-directory/internal/session"
)

// Resolution is the outcome of a profile/role lookup for one subject.
type Resolution struct {
	HasProfile bool
	Role       domain.Role
}

// ProfileResolver resolves profile-existence and role for a subject.
type ProfileResolver interface {
	Resolve(ctx context.Context, userID string) (Resolution, error)
}

type repositoryResolver struct {
	profiles repository.ProfileRepository
	roles    repository.RoleRepository
}

// NewRepositoryResolver resolves against the profiles and user_roles tables.
func NewRepositoryResolver(profiles repository.ProfileRepository, roles repository.RoleRepository) ProfileResolver {
	return &repositoryResolver{profiles: profiles, roles: roles}
}

func (r *repositoryResolver) Resolve(ctx context.Context, userID string) (Resolution, error) {
	var res Resolution

	if _, err := r.profiles.GetByUserID(ctx, userID); err == nil {
		res.HasProfile = true
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return Resolution{}, err
	}

	role, err := r.roles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No role row means basic-tier access only.
			return res, nil
		}
		return Resolution{}, err
	}
	if role.Valid() {
		res.Role = role
	}
	return res, nil
}

// State is a snapshot of one session's authorization state.
type State struct {
	Authenticated bool
	Token         string
	UserID        string
	HasProfile    bool
	Role          domain.Role
	// Resolved is false while the profile/role lookup for this session is
	// still in flight. Unresolved authenticated states carry no privileges.
	Resolved bool
}

// Anonymous is the zero state used for requests without a session.
func Anonymous() State {
	return State{Resolved: true}
}

// IsAdmin reports whether the subject holds the admin role.
func (st State) IsAdmin() bool {
	return st.Authenticated && st.Role == domain.RoleAdmin
}

// IsDevotee reports whether the subject holds an elevated role. Admin
// implies devotee access.
func (st State) IsDevotee() bool {
	return st.Authenticated && st.Role.Elevated()
}

type entry struct {
	session    domain.Session
	hasProfile bool
	role       domain.Role
	resolved   bool
}

type resolveTask struct {
	token  string
	userID string
}

// Tracker is the process-wide auth/role registry. Construct with New, call
// Start once, and Close on shutdown. All consumers receive immutable State
// snapshots.
type Tracker struct {
	store    session.Store
	resolver ProfileResolver
	logger   *zap.Logger

	mu      sync.RWMutex
	entries map[string]*entry
	// touched records tokens that received a change notification before the
	// initial session scan completed, so the scan cannot overwrite fresher
	// event-driven state. It is released once Start finishes.
	touched map[string]struct{}
	loading bool
	closed  bool

	tasks       chan resolveTask
	done        chan struct{}
	workerDone  chan struct{}
	unsubscribe func()
	closeOnce   sync.Once
}

// New constructs a Tracker. It does nothing until Start is called.
func New(store session.Store, resolver ProfileResolver, logger *zap.Logger) *Tracker {
	return &Tracker{
		store:      store,
		resolver:   resolver,
		logger:     logger,
		entries:    make(map[string]*entry),
		touched:    make(map[string]struct{}),
		loading:    true,
		tasks:      make(chan resolveTask, 256),
		done:       make(chan struct{}),
		workerDone: make(chan struct{}),
	}
}

// Start subscribes to session-change notifications and then reconciles the
// store's active sessions. The subscription is established first so no event
// fired during the initial scan can be missed; overlap between the two is
// resolved per token in favor of the event.
func (t *Tracker) Start(ctx context.Context) error {
	t.unsubscribe = t.store.OnAuthStateChange(t.handleChange)

	go t.worker(ctx)

	sessions, err := t.store.ActiveSessions(ctx)
	if err != nil {
		// Fail open to the anonymous state rather than blocking startup;
		// sessions are re-admitted lazily via Lookup.
		t.logger.Error("initial session scan failed", zap.Error(err))
	}

	t.mu.Lock()
	for _, sess := range sessions {
		if _, seen := t.touched[sess.Token]; seen {
			continue
		}
		if _, exists := t.entries[sess.Token]; exists {
			continue
		}
		t.entries[sess.Token] = &entry{session: sess}
	}
	pending := make([]resolveTask, 0, len(t.entries))
	for token, e := range t.entries {
		if !e.resolved {
			pending = append(pending, resolveTask{token: token, userID: e.session.UserID})
		}
	}
	t.loading = false
	t.touched = nil
	t.mu.Unlock()

	for _, task := range pending {
		t.enqueue(task)
	}
	return nil
}

// Loading reports whether the initial session reconciliation is still in
// progress. It becomes false exactly once and never reverts.
func (t *Tracker) Loading() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loading
}

// Close stops the resolution worker and detaches from the session store.
func (t *Tracker) Close() {
	t.closeOnce.Do(func() {
		if t.unsubscribe != nil {
			t.unsubscribe()
		}
		t.mu.Lock()
		t.closed = true
		t.mu.Unlock()
		close(t.done)
		<-t.workerDone
	})
}

// handleChange is the session store notification callback. It updates the
// held session state synchronously and defers profile/role resolution to the
// worker; issuing store requests from inside the callback would re-enter the
// store while it still holds its notification state.
func (t *Tracker) handleChange(event session.AuthEvent, change session.Change) {
	var task *resolveTask

	t.mu.Lock()
	if t.loading {
		t.touched[change.Token] = struct{}{}
	}

	switch event {
	case session.SignedIn, session.TokenRefreshed:
		if change.Session == nil {
			break
		}
		e, exists := t.entries[change.Token]
		if exists && e.session.UserID == change.Session.UserID {
			// Token refresh for a known subject keeps its resolution.
			e.session = *change.Session
		} else {
			t.entries[change.Token] = &entry{session: *change.Session}
			task = &resolveTask{token: change.Token, userID: change.Session.UserID}
		}
	case session.SignedOut:
		// Clear synchronously so stale privileged state cannot leak into a
		// subsequent anonymous request.
		delete(t.entries, change.Token)
	}
	t.mu.Unlock()

	if task != nil {
		t.enqueue(*task)
	}
}

func (t *Tracker) enqueue(task resolveTask) {
	t.mu.RLock()
	closed := t.closed
	t.mu.RUnlock()
	if closed {
		return
	}

	select {
	case t.tasks <- task:
	default:
		// Queue overflow leaves the session unresolved, which carries no
		// privileges; the next Lookup resolves it inline.
		t.logger.Warn("resolution queue full, deferring", zap.String("token", task.token))
	}
}

// sweepInterval bounds how long an expired session that nobody looks up can
// linger in the registry.
const sweepInterval = time.Minute

func (t *Tracker) worker(ctx context.Context) {
	defer close(t.workerDone)
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.sweep(time.Now())
		case task := <-t.tasks:
			res, err := t.resolver.Resolve(ctx, task.userID)
			t.apply(task, res, err)
		}
	}
}

func (t *Tracker) sweep(now time.Time) {
	t.mu.Lock()
	for token, e := range t.entries {
		if e.session.Expired(now) {
			delete(t.entries, token)
		}
	}
	t.mu.Unlock()
}

// apply installs a resolution outcome, dropping it when the tracked entry no
// longer refers to the same subject (the session changed while the lookup
// was in flight).
func (t *Tracker) apply(task resolveTask, res Resolution, err error) {
	if err != nil {
		// Fail open to the least-privileged state; guards never see this.
		t.logger.Error("profile resolution failed",
			zap.String("user_id", task.userID), zap.Error(err))
		res = Resolution{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	e, exists := t.entries[task.token]
	if !exists || e.session.UserID != task.userID {
		return
	}
	e.hasProfile = res.HasProfile
	e.role = res.Role
	e.resolved = true
}

// State returns the snapshot for a token without touching the store. A held
// session that has passed its expiry is treated as anonymous; the store
// destroys such sessions by TTL without a sign-out notification.
func (t *Tracker) State(token string) State {
	now := time.Now()

	t.mu.RLock()
	e, exists := t.entries[token]
	if !exists {
		t.mu.RUnlock()
		return Anonymous()
	}
	if e.session.Expired(now) {
		t.mu.RUnlock()
		t.evictExpired(token, now)
		return Anonymous()
	}
	st := State{
		Authenticated: true,
		Token:         token,
		UserID:        e.session.UserID,
		HasProfile:    e.hasProfile,
		Role:          e.role,
		Resolved:      e.resolved,
	}
	t.mu.RUnlock()
	return st
}

// evictExpired drops the entry unless a fresh session replaced it between
// the read and this write.
func (t *Tracker) evictExpired(token string, now time.Time) {
	t.mu.Lock()
	if e, exists := t.entries[token]; exists && e.session.Expired(now) {
		delete(t.entries, token)
	}
	t.mu.Unlock()
}

// Lookup returns the snapshot for a token, admitting sessions the tracker
// has not seen yet (for example ones opened before this process started and
// missed by a failed initial scan). Resolution happens inline on this path.
func (t *Tracker) Lookup(ctx context.Context, token string) State {
	st := t.State(token)
	if st.Authenticated {
		if !st.Resolved {
			t.refresh(ctx, token, st.UserID)
			return t.State(token)
		}
		return st
	}

	sess, err := t.store.GetSession(ctx, token)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			t.logger.Error("session lookup failed", zap.Error(err))
		}
		return Anonymous()
	}

	t.mu.Lock()
	if _, exists := t.entries[token]; !exists {
		t.entries[token] = &entry{session: *sess}
	}
	t.mu.Unlock()

	t.refresh(ctx, token, sess.UserID)
	return t.State(token)
}

// SignUp registers an account and opens a session via the store. The
// tracker's own notification handling admits the new session.
func (t *Tracker) SignUp(ctx context.Context, email, password, name string) (*domain.Session, error) {
	return t.store.SignUp(ctx, email, password, name)
}

// SignIn authenticates via the store.
func (t *Tracker) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	return t.store.SignInWithPassword(ctx, email, password)
}

// SignOut ends the stored session and clears local role/profile state. The
// local clear does not depend on the notification arriving.
func (t *Tracker) SignOut(ctx context.Context, token string) error {
	err := t.store.SignOut(ctx, token)

	t.mu.Lock()
	if t.loading {
		t.touched[token] = struct{}{}
	}
	delete(t.entries, token)
	t.mu.Unlock()

	return err
}

// RefreshProfile re-resolves profile/role for the token's subject, for use
// after the subject edits its own profile.
func (t *Tracker) RefreshProfile(ctx context.Context, token string) error {
	st := t.State(token)
	if !st.Authenticated {
		return session.ErrNoSession
	}
	return t.refresh(ctx, token, st.UserID)
}

func (t *Tracker) refresh(ctx context.Context, token, userID string) error {
	res, err := t.resolver.Resolve(ctx, userID)
	t.apply(resolveTask{token: token, userID: userID}, res, err)
	return err
}
