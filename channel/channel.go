package channel

import (
	"context"
	"errors"
)

var (
	// ErrBlocked is returned when the environment refuses to create the
	// authentication surface (popup blocked by policy).
	ErrBlocked = errors.New("authentication window was blocked, please allow popups for this site")
	// ErrCancelled is returned when the surface is closed before a
	// selection message arrives.
	ErrCancelled = errors.New("sign-in was cancelled")
)

// Message is one inbound payload from an authentication surface. Surfaces
// may deliver unrelated or malformed messages; the handshake ignores
// anything that does not name its provider and carry an email.
type Message struct {
	Source   string `json:"source"`
	Provider string `json:"provider"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// messageSource is the Source value the built-in choosers stamp on their
// selection messages.
const messageSource = "authkit-provider"

// Identity is the minimal identity selected on a chooser. The service layer
// expands it into a full account record.
type Identity struct {
	Provider  string
	Email     string
	Name      string
	Role      string
	AvatarURL string
}

// OpenRequest describes the surface a handshake wants opened.
type OpenRequest struct {
	Provider string
	URL      string
	Width    int
	Height   int
}

// Surface is one live authentication surface. Messages delivers inbound
// payloads until the surface goes away; Closed reports whether the user has
// dismissed it; Close tears it down and must be idempotent.
type Surface interface {
	Messages() <-chan Message
	Closed() bool
	Close() error
}

// Opener creates authentication surfaces. Returning an error (or a nil
// surface) means the environment blocked the attempt; the handshake maps
// that to [ErrBlocked] without installing any listeners.
type Opener interface {
	Open(ctx context.Context, req OpenRequest) (Surface, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, req OpenRequest) (Surface, error)

// Open implements Opener.
func (f OpenerFunc) Open(ctx context.Context, req OpenRequest) (Surface, error) {
	return f(ctx, req)
}
