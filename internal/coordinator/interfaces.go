package coordinator

import (
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
)

// Notifier delivers reminders and transition prompts. Implementations decline
// silently when the user has not granted permission.
type Notifier interface {
	SchedulePhaseNotification(p phase.Phase, delay time.Duration)
	SendTransitionNotification(from, to phase.Phase, sound bool)
	// CancelPhaseNotifications drops reminders that have not fired yet and
	// keeps what was already delivered.
	CancelPhaseNotifications()
	CancelAllNotifications()
}
