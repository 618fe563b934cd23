package internaldefs

import (
	authkit "github.com/coursia/authkit"
)

// CounterDef binds one core counter to its stable exported name.
type CounterDef struct {
	ID   authkit.MetricID
	Name string
	Help string
}

// HistogramDef binds one core histogram to its stable exported name.
type HistogramDef struct {
	ID   authkit.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in exposition order.
var CounterDefs = []CounterDef{
	{ID: authkit.MetricLoginSuccess, Name: "authkit_login_success_total", Help: "Successful login attempts."},
	{ID: authkit.MetricLoginFailure, Name: "authkit_login_failure_total", Help: "Login attempts for unknown emails."},
	{ID: authkit.MetricRegisterSuccess, Name: "authkit_register_success_total", Help: "Successful account registrations."},
	{ID: authkit.MetricRegisterDuplicate, Name: "authkit_register_duplicate_total", Help: "Registrations rejected as duplicate."},
	{ID: authkit.MetricRegisterInvalid, Name: "authkit_register_invalid_total", Help: "Registrations rejected by validation."},
	{ID: authkit.MetricProviderSignInSuccess, Name: "authkit_provider_sign_in_success_total", Help: "Provider handshakes resolved with a selection."},
	{ID: authkit.MetricProviderSignInCancelled, Name: "authkit_provider_sign_in_cancelled_total", Help: "Provider handshakes abandoned by the user."},
	{ID: authkit.MetricProviderSignInBlocked, Name: "authkit_provider_sign_in_blocked_total", Help: "Provider handshakes whose surface was refused."},
	{ID: authkit.MetricSessionRestored, Name: "authkit_session_restored_total", Help: "Persisted sessions adopted on startup."},
	{ID: authkit.MetricSessionRestoreRejected, Name: "authkit_session_restore_rejected_total", Help: "Persisted sessions discarded as invalid on startup."},
	{ID: authkit.MetricLogout, Name: "authkit_logout_total", Help: "Logout operations."},
}

// HistogramDefs lists every exported histogram in exposition order.
var HistogramDefs = []HistogramDef{
	{ID: authkit.MetricTokenValidateLatency, Name: "authkit_token_validate_latency_seconds", Help: "Token validation latency histogram."},
}

// HistogramBounds are the upper bucket bounds as Prometheus le label values.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix are the bounds as instrument-name-safe suffixes.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or trims a raw bucket slice to the fixed width.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to cumulative counts.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
