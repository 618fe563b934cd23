package authkit

import (
	"context"
	"errors"
	"time"

	"github.com/coursia/authkit/account"
	"github.com/coursia/authkit/channel"
)

// SignInWithProvider runs one federated sign-in handshake against the named
// provider and blocks until it resolves. A blocked surface fails with
// [ErrChannelBlocked], a dismissed one with [ErrUserCancelled]; cancelling
// ctx dismisses the surface. On success the selected identity becomes a
// signed-in user.
func (s *Service) SignInWithProvider(ctx context.Context, provider string) (*Session, error) {
	spec, ok := s.providers[provider]
	if !ok {
		return nil, ErrUnknownProvider
	}

	opener := s.opener
	if opener == nil {
		// Headless build: no way to show a surface.
		opener = channel.OpenerFunc(func(context.Context, channel.OpenRequest) (channel.Surface, error) {
			return nil, channel.ErrBlocked
		})
	}

	h := channel.New(opener, spec, channel.Config{
		PollInterval: s.cfg.Provider.PollInterval,
		Logger:       s.log,
	})

	identity, err := h.Run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, channel.ErrBlocked):
			s.metrics.Inc(MetricProviderSignInBlocked)
		case errors.Is(err, channel.ErrCancelled):
			s.metrics.Inc(MetricProviderSignInCancelled)
		}
		s.auditProvider(ctx, provider, "", "", err)
		return nil, err
	}

	user := userFromIdentity(identity)

	sess, err := s.establish(ctx, user)
	if err != nil {
		s.auditProvider(ctx, provider, identity.Email, user.ID, err)
		return nil, err
	}

	s.metrics.Inc(MetricProviderSignInSuccess)
	s.log.Info("provider sign-in", "provider", provider, "email", identity.Email)
	s.auditProvider(ctx, provider, identity.Email, user.ID, nil)
	return sess, nil
}

// userFromIdentity expands a chooser selection into a full account record.
// Unknown roles on the selection default to student.
func userFromIdentity(id channel.Identity) *account.User {
	role := account.Role(id.Role)
	if !role.Valid() {
		role = account.RoleStudent
	}

	user := account.NewUser(id.Name, id.Email, role, account.Provider(id.Provider))
	user.AvatarURL = id.AvatarURL
	return user
}

func (s *Service) auditProvider(ctx context.Context, provider, email, userID string, outcome error) {
	s.emitAudit(ctx, AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: AuditProviderSignIn,
		UserID:    userID,
		Email:     email,
		Provider:  provider,
		Success:   outcome == nil,
		Error:     errString(outcome),
	})
}
