package authkit

import (
	"errors"
	"fmt"

	"github.com/coursia/authkit/channel"
)

// Every public operation reports failure through one of these sentinels
// (possibly wrapped with detail). Messages are written for direct display.
var (
	// ErrValidation is the kind shared by all input validation failures.
	ErrValidation = errors.New("validation failed")
	// ErrEmailMalformed wraps ErrValidation for emails without an '@'.
	ErrEmailMalformed = fmt.Errorf("%w: please enter a valid email address", ErrValidation)
	// ErrPasswordTooShort wraps ErrValidation for passwords under 8 characters.
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	// ErrRoleInvalid wraps ErrValidation for unknown account roles.
	ErrRoleInvalid = fmt.Errorf("%w: unknown account role", ErrValidation)
	// ErrDuplicateAccount is returned by Register for an already-registered email.
	ErrDuplicateAccount = errors.New("an account with this email already exists")
	// ErrNotFound is returned by Login for an unknown email.
	ErrNotFound = errors.New("no account found with this email")
	// ErrUnknownProvider is returned by SignInWithProvider for an
	// unconfigured provider name.
	ErrUnknownProvider = errors.New("unknown sign-in provider")

	// ErrChannelBlocked is the channel sentinel for a surface the
	// environment refused to create, re-exported so callers only need
	// errors.Is against this package.
	ErrChannelBlocked = channel.ErrBlocked
	// ErrUserCancelled is the channel sentinel for a surface closed
	// before any selection.
	ErrUserCancelled = channel.ErrCancelled
)
