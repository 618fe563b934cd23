package authkit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/coursia/authkit/channel"
	"github.com/coursia/authkit/session"
	"github.com/coursia/authkit/token"
)

// Service is the auth engine: registration, login, provider sign-in,
// logout, and session restore. All methods are safe for concurrent use.
// Build one through [Builder].
type Service struct {
	cfg       Config
	log       *slog.Logger
	tokens    *token.Manager
	store     *session.Store
	providers map[string]channel.ProviderSpec
	opener    channel.Opener
	metrics   *Metrics
	audit     *auditDispatcher

	mu      sync.RWMutex
	current *Session
}

// CurrentUser returns the signed-in user, or nil when signed out. The
// returned pointer is shared; callers must not mutate it.
func (s *Service) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	return s.current.User
}

// CurrentSession returns a copy of the live session, or nil when signed out.
func (s *Service) CurrentSession() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// IsAuthenticated reports whether a session is live.
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Logout ends the session: in-memory state is dropped first, then the
// persisted pair is cleared. It is idempotent and safe to call signed out.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	hadSession := s.current != nil
	var userID, email string
	if hadSession && s.current.User != nil {
		userID = s.current.User.ID
		email = s.current.User.Email
	}
	s.current = nil
	s.mu.Unlock()

	err := s.store.Clear(ctx)

	if hadSession {
		s.metrics.Inc(MetricLogout)
		s.emitAudit(ctx, AuditEvent{
			Timestamp: time.Now().UTC(),
			EventType: AuditLogout,
			UserID:    userID,
			Email:     email,
			Success:   err == nil,
			Error:     errString(err),
		})
	}

	return err
}

// Close flushes the audit dispatcher. The service is unusable afterwards
// only for auditing; auth operations keep working.
func (s *Service) Close() {
	s.audit.close()
}

// MetricsSnapshot returns a deep copy of the in-process metrics.
func (s *Service) MetricsSnapshot() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// AuditDropped returns how many audit events were dropped on a full buffer.
func (s *Service) AuditDropped() uint64 {
	return s.audit.droppedCount()
}

// restore adopts a persisted session when its token still verifies, and
// clears the stale pair otherwise. Called once from Build.
func (s *Service) restore(ctx context.Context) {
	tok, user, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			// Heal a half-present pair left by external tampering.
			if cerr := s.store.Clear(ctx); cerr != nil {
				s.log.Warn("failed to clear partial session", "error", cerr)
			}
		}
		return
	}

	start := time.Now()
	valid := s.tokens.Validate(tok)
	s.metrics.Observe(MetricTokenValidateLatency, time.Since(start))

	if !valid {
		s.metrics.Inc(MetricSessionRestoreRejected)
		s.log.Info("discarding persisted session", "reason", "token invalid or expired")
		if err := s.store.Clear(ctx); err != nil {
			s.log.Warn("failed to clear stale session", "error", err)
		}
		s.emitAudit(ctx, AuditEvent{
			Timestamp: time.Now().UTC(),
			EventType: AuditSessionRestore,
			Email:     user.Email,
			Success:   false,
			Error:     "token invalid or expired",
		})
		return
	}

	s.setSession(&Session{Token: tok, User: user})
	s.metrics.Inc(MetricSessionRestored)
	s.log.Debug("session restored", "email", user.Email)
	s.emitAudit(ctx, AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: AuditSessionRestore,
		UserID:    user.ID,
		Email:     user.Email,
		Success:   true,
	})
}

func (s *Service) setSession(sess *Session) {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
}

// establish persists the token/user pair and installs the in-memory
// session. On a persistence failure nothing is installed.
func (s *Service) establish(ctx context.Context, user *User) (*Session, error) {
	tok, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	if err := s.store.Persist(ctx, tok, user); err != nil {
		return nil, err
	}

	sess := &Session{Token: tok, User: user}
	s.setSession(sess)
	return sess, nil
}

func (s *Service) emitAudit(ctx context.Context, event AuditEvent) {
	s.audit.emit(ctx, event)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
