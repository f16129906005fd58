package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/domain/schedule"
	"github.com/rpggio/moveit/internal/domain/stats"
	"github.com/rpggio/moveit/internal/notify"
)

// ErrInvalidParams indicates tool arguments that do not decode.
var ErrInvalidParams = errors.New("invalid params")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, phase.ErrInvalidPhase):
		return &APIError{Code: "INVALID_PHASE", Message: "phase must be sitting or standing", RecoveryHint: "Use \"sitting\" or \"standing\""}
	case errors.Is(err, schedule.ErrInvalidSchedule):
		return &APIError{Code: "INVALID_SCHEDULE", Message: "durations must be positive and times HH:MM", RecoveryHint: "Check the schedule values"}
	case errors.Is(err, stats.ErrInvalidPeriod):
		return &APIError{Code: "INVALID_PERIOD", Message: "unknown statistics period", RecoveryHint: "Use today, week or month"}
	case errors.Is(err, notify.ErrUnknownAction):
		return &APIError{Code: "INVALID_ACTION", Message: "unknown prompt answer", RecoveryHint: "Use transition, continue or snooze"}
	case errors.Is(err, ErrInvalidParams):
		return &APIError{Code: "INVALID_PARAMS", Message: err.Error()}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
