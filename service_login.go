package authkit

import (
	"context"
	"time"

	"github.com/coursia/authkit/account"
)

// Login signs a registered user in by email, or the reserved demo identity
// by email and password. Unknown emails fail with [ErrNotFound].
//
// TODO: the registered-users directory stores no credential hash, so
// non-demo logins cannot verify the password yet. Add a hash field to the
// directory record and check it here once registration starts storing one.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if s.cfg.Demo.Enabled && email == s.cfg.Demo.Email && password == s.cfg.Demo.Password {
		user := account.NewUser(s.cfg.Demo.Name, s.cfg.Demo.Email, account.RoleStudent, account.ProviderEmail)
		sess, err := s.establish(ctx, user)
		if err != nil {
			s.auditLogin(ctx, email, "", err)
			return nil, err
		}
		s.metrics.Inc(MetricLoginSuccess)
		s.log.Info("demo login", "email", email)
		s.auditLogin(ctx, email, user.ID, nil)
		return sess, nil
	}

	user, found, err := s.store.FindRegistered(ctx, email)
	if err != nil {
		return nil, err
	}
	if !found {
		s.metrics.Inc(MetricLoginFailure)
		s.auditLogin(ctx, email, "", ErrNotFound)
		return nil, ErrNotFound
	}

	sess, err := s.establish(ctx, user)
	if err != nil {
		s.auditLogin(ctx, email, user.ID, err)
		return nil, err
	}

	s.metrics.Inc(MetricLoginSuccess)
	s.log.Info("login", "email", email)
	s.auditLogin(ctx, email, user.ID, nil)
	return sess, nil
}

func (s *Service) auditLogin(ctx context.Context, email, userID string, outcome error) {
	s.emitAudit(ctx, AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: AuditLogin,
		UserID:    userID,
		Email:     email,
		Success:   outcome == nil,
		Error:     errString(outcome),
	})
}
