package coordinator

import (
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/domain/schedule"
	"github.com/rpggio/moveit/internal/domain/stats"
	"github.com/rpggio/moveit/internal/domain/transition"
	"github.com/rpggio/moveit/internal/timer"
)

// State is a point-in-time snapshot of everything a UI observes.
type State struct {
	CurrentPhase          phase.Phase         `json:"current_phase"`
	DisplayPhase          phase.Phase         `json:"display_phase"`
	Status                timer.Status        `json:"status"`
	Remaining             time.Duration       `json:"remaining"`
	RemainingText         string              `json:"remaining_text"`
	Progress              float64             `json:"progress"`
	IsPaused              bool                `json:"is_paused"`
	IsCompleted           bool                `json:"is_completed"`
	PendingTransition     *transition.Pending `json:"pending_transition,omitempty"`
	IsShowingConfirmation bool                `json:"is_showing_confirmation"`
	TodayStats            stats.DailyStats    `json:"today_stats"`
	Schedule              schedule.Schedule   `json:"schedule"`
	At                    time.Time           `json:"at"`
}
