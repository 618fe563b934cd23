package authkit

import (
	"context"
	"strings"
	"time"

	"github.com/coursia/authkit/account"
)

const minPasswordLength = 8

// Register creates an account, records it in the registered-users
// directory, and signs the new user in. The email must look like an email,
// the password must be at least 8 characters, and the role must be one of
// the known roles (empty defaults to student). A duplicate email fails with
// [ErrDuplicateAccount] and leaves the directory unchanged.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	role := in.Role
	if role == "" {
		role = RoleStudent
	}

	if err := validateRegisterInput(in.Email, in.Password, role); err != nil {
		s.metrics.Inc(MetricRegisterInvalid)
		s.auditRegister(ctx, in.Email, "", err)
		return nil, err
	}

	email := strings.TrimSpace(in.Email)

	if _, found, err := s.store.FindRegistered(ctx, email); err != nil {
		return nil, err
	} else if found {
		s.metrics.Inc(MetricRegisterDuplicate)
		s.auditRegister(ctx, email, "", ErrDuplicateAccount)
		return nil, ErrDuplicateAccount
	}

	user := account.NewUser(in.Name, email, role, account.ProviderEmail)

	// Issue before touching storage: a token has no side effects, so a
	// signing failure leaves the directory untouched.
	tok, err := s.tokens.Issue(user)
	if err != nil {
		s.auditRegister(ctx, email, user.ID, err)
		return nil, err
	}

	if err := s.store.AppendRegistered(ctx, user); err != nil {
		s.auditRegister(ctx, email, user.ID, err)
		return nil, err
	}

	if err := s.store.Persist(ctx, tok, user); err != nil {
		// Roll the directory entry back so a retry of the same email is
		// not rejected as a duplicate.
		if rerr := s.store.RemoveRegistered(ctx, user.ID); rerr != nil {
			s.log.Warn("failed to roll back directory entry", "email", email, "error", rerr)
		}
		s.auditRegister(ctx, email, user.ID, err)
		return nil, err
	}

	sess := &Session{Token: tok, User: user}
	s.setSession(sess)

	s.metrics.Inc(MetricRegisterSuccess)
	s.log.Info("account registered", "email", email, "role", string(role))
	s.auditRegister(ctx, email, user.ID, nil)
	return sess, nil
}

func validateRegisterInput(email, password string, role Role) error {
	if !strings.Contains(email, "@") {
		return ErrEmailMalformed
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if !role.Valid() {
		return ErrRoleInvalid
	}
	return nil
}

func (s *Service) auditRegister(ctx context.Context, email, userID string, outcome error) {
	s.emitAudit(ctx, AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: AuditRegister,
		UserID:    userID,
		Email:     email,
		Success:   outcome == nil,
		Error:     errString(outcome),
	})
}
