package authkit

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// AuditEvent describes one auth decision for an external audit trail.
type AuditEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	Email     string            `json:"email,omitempty"`
	Provider  string            `json:"provider,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Audit event types.
const (
	AuditLogin          = "login"
	AuditRegister       = "register"
	AuditProviderSignIn = "provider_sign_in"
	AuditLogout         = "logout"
	AuditSessionRestore = "session_restore"
)

// AuditSink receives audit events. Write must be safe for concurrent use
// and must not block indefinitely.
type AuditSink interface {
	Write(event AuditEvent) error
}

// NoOpSink discards all events.
type NoOpSink struct{}

func (NoOpSink) Write(AuditEvent) error { return nil }

// ChannelSink forwards events to a Go channel. If the channel is full the
// event is dropped.
type ChannelSink struct {
	ch chan<- AuditEvent
}

// NewChannelSink wraps ch as an AuditSink.
func NewChannelSink(ch chan<- AuditEvent) *ChannelSink {
	return &ChannelSink{ch: ch}
}

func (s *ChannelSink) Write(event AuditEvent) error {
	select {
	case s.ch <- event:
	default:
	}
	return nil
}

// JSONWriterSink writes one JSON object per line to an io.Writer.
type JSONWriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSONWriterSink wraps w as an AuditSink.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{w: w}
}

func (s *JSONWriterSink) Write(event AuditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.w.Write(data)
	return err
}
