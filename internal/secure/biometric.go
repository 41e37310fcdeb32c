package secure

import "context"

// BiometricGate abstracts the platform biometric prompt. The host
// application supplies a real implementation; the default denies.
type BiometricGate interface {
	// IsAvailable reports whether hardware exists and a biometric is enrolled.
	IsAvailable() bool
	// Authenticate shows the prompt and reports whether it was confirmed.
	Authenticate(ctx context.Context) (bool, error)
}

// UnavailableGate is the no-hardware fallback.
type UnavailableGate struct{}

func (UnavailableGate) IsAvailable() bool { return false }

func (UnavailableGate) Authenticate(context.Context) (bool, error) { return false, nil }
