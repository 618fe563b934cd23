package channel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	mu         sync.Mutex
	msgs       chan Message
	closed     bool
	closeCalls int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{msgs: make(chan Message, 4)}
}

func (s *fakeSurface) Messages() <-chan Message { return s.msgs }

func (s *fakeSurface) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *fakeSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeCalls++
	s.closed = true
	return nil
}

func (s *fakeSurface) userCloses() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *fakeSurface) closeCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeCalls
}

func openerFor(s *fakeSurface) Opener {
	return OpenerFunc(func(context.Context, OpenRequest) (Surface, error) {
		return s, nil
	})
}

func fastConfig() Config {
	return Config{PollInterval: 5 * time.Millisecond}
}

func selection(provider, email string) Message {
	return Message{
		Source:   messageSource,
		Provider: provider,
		Email:    email,
		Name:     "Sofia Marin",
		Role:     "student",
	}
}

func TestRunResolvesOnSelectionMessage(t *testing.T) {
	surface := newFakeSurface()
	h := New(openerFor(surface), GoogleProvider(), fastConfig())

	surface.msgs <- selection("google", "sofia.marin@gmail.com")

	identity, err := h.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sofia.marin@gmail.com", identity.Email)
	assert.Equal(t, "google", identity.Provider)
	assert.Equal(t, StateClosed, h.State())
	assert.Equal(t, 1, surface.closeCallCount(), "surface must be closed after resolution")
}

func TestRunResolvesCancelledWhenSurfaceClosed(t *testing.T) {
	surface := newFakeSurface()
	h := New(openerFor(surface), GitHubProvider(), fastConfig())

	surface.userCloses()

	_, err := h.Run(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, StateClosed, h.State())
}

func TestRunResolvesBlockedWhenOpenerRefuses(t *testing.T) {
	blocked := OpenerFunc(func(context.Context, OpenRequest) (Surface, error) {
		return nil, errors.New("popup policy")
	})
	h := New(blocked, GoogleProvider(), fastConfig())

	_, err := h.Run(context.Background())
	assert.ErrorIs(t, err, ErrBlocked)
	assert.Equal(t, StateClosed, h.State())
}

func TestRunIgnoresForeignAndMalformedMessages(t *testing.T) {
	surface := newFakeSurface()
	h := New(openerFor(surface), GoogleProvider(), fastConfig())

	surface.msgs <- Message{Source: "something-else", Provider: "google", Email: "x@y.com"}
	surface.msgs <- selection("github", "wrong-provider@y.com")
	surface.msgs <- Message{Source: messageSource, Provider: "google"} // no email
	surface.msgs <- selection("google", "sofia.marin@gmail.com")

	identity, err := h.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sofia.marin@gmail.com", identity.Email)
}

func TestResolutionIsExactlyOnce(t *testing.T) {
	surface := newFakeSurface()
	h := New(openerFor(surface), GoogleProvider(), fastConfig())

	surface.msgs <- selection("google", "sofia.marin@gmail.com")

	identity, err := h.Run(context.Background())
	require.NoError(t, err)

	// The close-observation trigger fires after the message already won
	// the race. It must change nothing.
	surface.userCloses()
	h.resolve(StateCancelled, Identity{}, ErrCancelled)

	assert.Equal(t, StateClosed, h.State())
	assert.Equal(t, "sofia.marin@gmail.com", identity.Email)
	assert.Equal(t, 1, surface.closeCallCount(), "teardown must not run twice")
}

func TestRunHonorsContextCancellation(t *testing.T) {
	surface := newFakeSurface()
	h := New(openerFor(surface), GoogleProvider(), fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Run(ctx)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, StateClosed, h.State())
}

func TestRunResolvesCancelledWhenMessageStreamEnds(t *testing.T) {
	surface := newFakeSurface()
	h := New(openerFor(surface), GoogleProvider(), fastConfig())

	close(surface.msgs)

	_, err := h.Run(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestNoResidualWaitersAfterRun(t *testing.T) {
	surface := newFakeSurface()
	h := New(openerFor(surface), GoogleProvider(), fastConfig())

	surface.userCloses()
	_, err := h.Run(context.Background())
	require.ErrorIs(t, err, ErrCancelled)

	// Both waiters have exited: a late message must sit in the buffer
	// untouched rather than being consumed by a leaked listener.
	surface.msgs <- selection("google", "late@gmail.com")
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, surface.msgs, 1)
	assert.Equal(t, StateClosed, h.State())
}

func TestProviderSpecsShareOneProtocol(t *testing.T) {
	for _, spec := range []ProviderSpec{GoogleProvider(), GitHubProvider()} {
		spec := spec
		t.Run(spec.Name, func(t *testing.T) {
			surface := newFakeSurface()
			h := New(openerFor(surface), spec, fastConfig())

			candidate := spec.Candidates[0]
			surface.msgs <- Message{
				Source:   messageSource,
				Provider: spec.Name,
				Email:    candidate.Email,
				Name:     candidate.Name,
				Role:     candidate.Role,
			}

			identity, err := h.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, candidate.Email, identity.Email)

			width, height := spec.SurfaceSize()
			assert.Equal(t, 500, width)
			assert.Equal(t, 600, height)
			assert.NotEmpty(t, spec.ChooserURL("state-1"))
		})
	}
}
