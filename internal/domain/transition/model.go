package transition

import (
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
)

// State is the manager's confirmation state.
type State string

const (
	StateIdle                 State = "idle"
	StateAwaitingConfirmation State = "awaiting_confirmation"
)

// Pending is a held decision to move from one phase to the next.
type Pending struct {
	From      phase.Phase `json:"from"`
	To        phase.Phase `json:"to"`
	Timestamp time.Time   `json:"timestamp"`
}
