package channel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle phase of one handshake.
type State uint8

const (
	// StateIdle is the state before Run is called.
	StateIdle State = iota
	// StateOpening means the surface is being requested.
	StateOpening
	// StateAwaitingResult means the surface exists and the two terminal
	// triggers are racing.
	StateAwaitingResult
	// StateResolved means a selection message won the race.
	StateResolved
	// StateCancelled means the closed-surface poll won the race.
	StateCancelled
	// StateBlocked means the environment refused to create the surface.
	StateBlocked
	// StateClosed is terminal: outcome delivered, everything torn down.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpening:
		return "opening"
	case StateAwaitingResult:
		return "awaiting_result"
	case StateResolved:
		return "resolved"
	case StateCancelled:
		return "cancelled"
	case StateBlocked:
		return "blocked"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

const defaultPollInterval = time.Second

// Config controls handshake timing and logging.
type Config struct {
	// PollInterval is how often the closed-surface poll fires. Default 1s.
	PollInterval time.Duration
	Logger       *slog.Logger
}

// Handshake drives a single sign-in attempt to exactly one outcome. A
// Handshake is single-use: construct, Run once, discard.
type Handshake struct {
	spec   ProviderSpec
	opener Opener
	poll   time.Duration
	log    *slog.Logger

	mu       sync.Mutex
	state    State
	resolved bool
	identity Identity
	err      error
	surface  Surface

	done chan struct{}
}

// New prepares a handshake against the given provider. Nothing happens
// until Run.
func New(opener Opener, spec ProviderSpec, cfg Config) *Handshake {
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handshake{
		spec:   spec,
		opener: opener,
		poll:   poll,
		log:    logger,
		state:  StateIdle,
		done:   make(chan struct{}),
	}
}

// State returns the current lifecycle phase.
func (h *Handshake) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Run opens the surface and blocks until the attempt resolves. It returns
// the selected identity, or ErrBlocked / ErrCancelled. By the time Run
// returns, the message listener and the poll have both exited and the
// surface is closed, on every path.
func (h *Handshake) Run(ctx context.Context) (Identity, error) {
	h.setState(StateOpening)

	width, height := h.spec.SurfaceSize()
	req := OpenRequest{
		Provider: h.spec.Name,
		URL:      h.spec.ChooserURL(uuid.NewString()),
		Width:    width,
		Height:   height,
	}

	surface, err := h.opener.Open(ctx, req)
	if err != nil || surface == nil {
		h.mu.Lock()
		h.resolved = true
		h.state = StateBlocked
		h.err = ErrBlocked
		h.mu.Unlock()
		h.log.Warn("authentication surface blocked", "provider", h.spec.Name)
		h.setState(StateClosed)
		return Identity{}, ErrBlocked
	}

	h.mu.Lock()
	h.surface = surface
	h.state = StateAwaitingResult
	h.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		h.listen(surface)
	}()
	go func() {
		defer wg.Done()
		h.watchClosed(ctx, surface)
	}()

	<-h.done
	wg.Wait()

	h.mu.Lock()
	identity, outcome := h.identity, h.err
	h.state = StateClosed
	h.mu.Unlock()

	return identity, outcome
}

// listen waits for the single selection message scoped to this attempt.
// Payloads from other providers or without an email are ignored and the
// wait continues.
func (h *Handshake) listen(surface Surface) {
	for {
		select {
		case msg, ok := <-surface.Messages():
			if !ok {
				// Surface tore down its message stream without a
				// selection: same outcome as the user closing it.
				h.resolve(StateCancelled, Identity{}, ErrCancelled)
				return
			}
			if !h.accepts(msg) {
				continue
			}
			h.resolve(StateResolved, Identity{
				Provider:  msg.Provider,
				Email:     msg.Email,
				Name:      msg.Name,
				Role:      msg.Role,
				AvatarURL: msg.Avatar,
			}, nil)
			return
		case <-h.done:
			return
		}
	}
}

// watchClosed polls for the user having dismissed the surface. Context
// cancellation resolves the attempt as cancelled too.
func (h *Handshake) watchClosed(ctx context.Context, surface Surface) {
	ticker := time.NewTicker(h.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if surface.Closed() {
				h.resolve(StateCancelled, Identity{}, ErrCancelled)
				return
			}
		case <-ctx.Done():
			h.resolve(StateCancelled, Identity{}, ErrCancelled)
			return
		case <-h.done:
			return
		}
	}
}

func (h *Handshake) accepts(msg Message) bool {
	return msg.Source == messageSource && msg.Provider == h.spec.Name && msg.Email != ""
}

// resolve records the outcome exactly once and performs teardown. A second
// call, from whichever trigger lost the race, is a no-op.
func (h *Handshake) resolve(state State, identity Identity, outcome error) {
	h.mu.Lock()
	if h.resolved {
		h.mu.Unlock()
		return
	}
	h.resolved = true
	h.state = state
	h.identity = identity
	h.err = outcome
	surface := h.surface
	h.mu.Unlock()

	close(h.done)
	if surface != nil {
		_ = surface.Close()
	}

	h.log.Debug("handshake resolved",
		"provider", h.spec.Name,
		"state", state.String(),
	)
}

func (h *Handshake) setState(s State) {
	h.mu.Lock()
	h.state = s
	h.mu.Unlock()
}
