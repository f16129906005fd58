package phase

import (
	"errors"
	"strings"
)

// Phase is the posture the user is currently working in.
type Phase string

const (
	Sitting  Phase = "sitting"
	Standing Phase = "standing"
	Paused   Phase = "paused"
	Inactive Phase = "inactive"
)

// ErrInvalidPhase indicates a phase name that cannot be started.
var ErrInvalidPhase = errors.New("invalid phase")

// Alternate returns the phase that follows p in the sit/stand cycle.
// Anything that is not Sitting alternates to Sitting.
func (p Phase) Alternate() Phase {
	if p == Sitting {
		return Standing
	}
	return Sitting
}

// IsWorking reports whether p is a timer-bearing phase.
func (p Phase) IsWorking() bool {
	return p == Sitting || p == Standing
}

// DisplayName is the capitalised label shown to users.
func (p Phase) DisplayName() string {
	switch p {
	case Sitting:
		return "Sitting"
	case Standing:
		return "Standing"
	case Paused:
		return "Paused"
	default:
		return "Inactive"
	}
}

// Parse resolves a user supplied phase name to a working phase.
func Parse(value string) (Phase, error) {
	switch Phase(strings.ToLower(strings.TrimSpace(value))) {
	case Sitting:
		return Sitting, nil
	case Standing:
		return Standing, nil
	default:
		return "", ErrInvalidPhase
	}
}
