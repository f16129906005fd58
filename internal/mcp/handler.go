package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpggio/moveit/internal/coordinator"
	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/domain/schedule"
	"github.com/rpggio/moveit/internal/domain/session"
	"github.com/rpggio/moveit/internal/domain/stats"
	"github.com/rpggio/moveit/internal/notify"
)

// Timer is the command and query surface the tools drive.
type Timer interface {
	StartSession(ctx context.Context, p phase.Phase) (bool, error)
	PauseSession(ctx context.Context) bool
	ResumeSession(ctx context.Context) bool
	SkipPhase(ctx context.Context) bool
	StopSession(ctx context.Context) bool
	ConfirmTransition(ctx context.Context) bool
	SnoozeTransition(ctx context.Context, d time.Duration) bool
	CancelTransition(ctx context.Context) bool
	ContinuePhase(ctx context.Context) bool
	ResetAllStatistics(ctx context.Context) stats.DailyStatistics
	UpdateScheduleWith(ctx context.Context, change func(schedule.Schedule) schedule.Schedule) (schedule.Schedule, error)

	State() coordinator.State
	Schedule() schedule.Schedule
	TodaySessions() []session.Record
	Statistics(ctx context.Context, p stats.Period) (stats.Summary, []stats.DailyStatistics, error)
}

// Notifications exposes the notification inbox and prompt answers.
type Notifications interface {
	Notifications() []notify.Notification
	HandleAction(ctx context.Context, action notify.Action, snooze time.Duration) (bool, error)
}

// Handler dispatches MCP tool calls.
type Handler struct {
	timer         Timer
	notifications Notifications
}

// NewHandler creates a new MCP handler.
func NewHandler(timer Timer, notifications Notifications) *Handler {
	return &Handler{timer: timer, notifications: notifications}
}

// Handle dispatches a tool call to the timer.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "start_session":
		var req StartSessionParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		p, err := phase.Parse(req.Phase)
		if err != nil {
			return nil, mapError(err)
		}
		applied, err := h.timer.StartSession(ctx, p)
		if err != nil {
			return nil, mapError(err)
		}
		return h.command(applied), nil
	case "pause_session":
		return h.command(h.timer.PauseSession(ctx)), nil
	case "resume_session":
		return h.command(h.timer.ResumeSession(ctx)), nil
	case "skip_phase":
		return h.command(h.timer.SkipPhase(ctx)), nil
	case "stop_session":
		return h.command(h.timer.StopSession(ctx)), nil
	case "confirm_transition":
		return h.command(h.timer.ConfirmTransition(ctx)), nil
	case "snooze_transition":
		var req SnoozeTransitionParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		d := time.Duration(req.Seconds) * time.Second
		return h.command(h.timer.SnoozeTransition(ctx, d)), nil
	case "cancel_transition":
		return h.command(h.timer.CancelTransition(ctx)), nil
	case "continue_phase":
		return h.command(h.timer.ContinuePhase(ctx)), nil
	case "answer_prompt":
		var req AnswerPromptParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		action, err := notify.ParseAction(req.Action)
		if err != nil {
			return nil, mapError(err)
		}
		applied, err := h.notifications.HandleAction(ctx, action, time.Duration(req.Seconds)*time.Second)
		if err != nil {
			return nil, mapError(err)
		}
		return h.command(applied), nil
	case "get_state":
		return toStateResponse(h.timer.State()), nil
	case "get_schedule":
		return toScheduleResponse(h.timer.Schedule()), nil
	case "update_schedule":
		var req UpdateScheduleParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		applied, err := h.timer.UpdateScheduleWith(ctx, req.Apply)
		if err != nil {
			return nil, mapError(err)
		}
		return toScheduleResponse(applied), nil
	case "get_today_sessions":
		return toSessionResponses(h.timer.TodaySessions()), nil
	case "get_statistics":
		var req GetStatisticsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		period, err := stats.ParsePeriod(req.Period)
		if err != nil {
			return nil, mapError(err)
		}
		sum, days, err := h.timer.Statistics(ctx, period)
		if err != nil {
			return nil, mapError(err)
		}
		return toStatisticsResponse(sum, days), nil
	case "get_notifications":
		return h.notifications.Notifications(), nil
	case "reset_statistics":
		today := h.timer.ResetAllStatistics(ctx)
		return toStatisticsResponse(stats.Summarize(stats.PeriodToday, []stats.DailyStatistics{today}), []stats.DailyStatistics{today}), nil
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func (h *Handler) command(applied bool) CommandResponse {
	return CommandResponse{Applied: applied, State: toStateResponse(h.timer.State())}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return mapError(fmt.Errorf("%w: %v", ErrInvalidParams, err))
	}
	return nil
}
