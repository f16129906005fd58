package notify

import (
	"errors"
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
)

var (
	ErrUnknownAction = errors.New("unknown notification action")
	ErrNoResponder   = errors.New("no responder registered")
)

// Kind distinguishes reminders from actionable prompts.
type Kind string

const (
	KindPhaseReminder    Kind = "phase_reminder"
	KindTransitionPrompt Kind = "transition_prompt"
)

// Action is a user answer to a transition prompt.
type Action string

const (
	ActionTransition Action = "transition"
	ActionContinue   Action = "continue"
	ActionSnooze     Action = "snooze"
)

// ParseAction resolves an action name.
func ParseAction(value string) (Action, error) {
	switch a := Action(value); a {
	case ActionTransition, ActionContinue, ActionSnooze:
		return a, nil
	default:
		return "", ErrUnknownAction
	}
}

// Notification is one delivered message.
type Notification struct {
	ID          string      `json:"id"`
	Kind        Kind        `json:"kind"`
	Title       string      `json:"title"`
	Body        string      `json:"body"`
	Phase       phase.Phase `json:"phase,omitempty"`
	From        phase.Phase `json:"from,omitempty"`
	To          phase.Phase `json:"to,omitempty"`
	Sound       bool        `json:"sound"`
	Actions     []Action    `json:"actions,omitempty"`
	DeliveredAt time.Time   `json:"delivered_at"`
}
