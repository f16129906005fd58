package mcp

import (
	"time"

	"github.com/rpggio/moveit/internal/coordinator"
	"github.com/rpggio/moveit/internal/domain/schedule"
	"github.com/rpggio/moveit/internal/domain/session"
	"github.com/rpggio/moveit/internal/domain/stats"
	"github.com/rpggio/moveit/internal/domain/transition"
)

// ToolDefinition describes one MCP tool and its JSON input schema.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type StartSessionParams struct {
	Phase string `json:"phase"`
}

type SnoozeTransitionParams struct {
	Seconds int `json:"seconds,omitempty"`
}

type AnswerPromptParams struct {
	Action  string `json:"action"`
	Seconds int    `json:"seconds,omitempty"`
}

// UpdateScheduleParams carries only the fields to change.
type UpdateScheduleParams struct {
	SittingMinutes       *float64 `json:"sitting_minutes,omitempty"`
	StandingMinutes      *float64 `json:"standing_minutes,omitempty"`
	SnoozeMinutes        *float64 `json:"snooze_minutes,omitempty"`
	NotificationsEnabled *bool    `json:"notifications_enabled,omitempty"`
	SoundEnabled         *bool    `json:"sound_enabled,omitempty"`
	AutoStart            *bool    `json:"auto_start,omitempty"`
	AskBeforeTransition  *bool    `json:"ask_before_transition,omitempty"`
	WorkStartTime        *string  `json:"work_start_time,omitempty"`
	WorkEndTime          *string  `json:"work_end_time,omitempty"`
}

// Apply overlays the set fields on s.
func (p UpdateScheduleParams) Apply(s schedule.Schedule) schedule.Schedule {
	if p.SittingMinutes != nil {
		s.SittingDuration = minutes(*p.SittingMinutes)
	}
	if p.StandingMinutes != nil {
		s.StandingDuration = minutes(*p.StandingMinutes)
	}
	if p.SnoozeMinutes != nil {
		s.SnoozeDuration = minutes(*p.SnoozeMinutes)
	}
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.AutoStart != nil {
		s.AutoStart = *p.AutoStart
	}
	if p.AskBeforeTransition != nil {
		s.AskBeforeTransition = *p.AskBeforeTransition
	}
	if p.WorkStartTime != nil {
		s.WorkStartTime = *p.WorkStartTime
	}
	if p.WorkEndTime != nil {
		s.WorkEndTime = *p.WorkEndTime
	}
	return s
}

type GetStatisticsParams struct {
	Period string `json:"period,omitempty"`
}

type PendingTransitionResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

type TodayResponse struct {
	SittingSeconds     int64   `json:"sitting_seconds"`
	StandingSeconds    int64   `json:"standing_seconds"`
	TotalSeconds       int64   `json:"total_seconds"`
	SittingPercentage  float64 `json:"sitting_percentage"`
	StandingPercentage float64 `json:"standing_percentage"`
}

type StateResponse struct {
	Phase                string                     `json:"phase"`
	DisplayPhase         string                     `json:"display_phase"`
	Status               string                     `json:"status"`
	RemainingSeconds     int64                      `json:"remaining_seconds"`
	Remaining            string                     `json:"remaining"`
	Progress             float64                    `json:"progress"`
	IsPaused             bool                       `json:"is_paused"`
	IsCompleted          bool                       `json:"is_completed"`
	AwaitingConfirmation bool                       `json:"awaiting_confirmation"`
	PendingTransition    *PendingTransitionResponse `json:"pending_transition,omitempty"`
	Today                TodayResponse              `json:"today"`
}

type CommandResponse struct {
	Applied bool          `json:"applied"`
	State   StateResponse `json:"state"`
}

type ScheduleResponse struct {
	SittingMinutes       float64 `json:"sitting_minutes"`
	StandingMinutes      float64 `json:"standing_minutes"`
	SnoozeMinutes        float64 `json:"snooze_minutes"`
	NotificationsEnabled bool    `json:"notifications_enabled"`
	SoundEnabled         bool    `json:"sound_enabled"`
	AutoStart            bool    `json:"auto_start"`
	AskBeforeTransition  bool    `json:"ask_before_transition"`
	WorkStartTime        string  `json:"work_start_time"`
	WorkEndTime          string  `json:"work_end_time"`
}

type SessionResponse struct {
	ID              string     `json:"id"`
	Phase           string     `json:"phase"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	DurationSeconds int64      `json:"duration_seconds"`
}

type DayResponse struct {
	Date                string `json:"date"`
	SittingSeconds      int64  `json:"sitting_seconds"`
	StandingSeconds     int64  `json:"standing_seconds"`
	PausedSeconds       int64  `json:"paused_seconds"`
	NumberOfTransitions int    `json:"number_of_transitions"`
}

type StatisticsResponse struct {
	Period                 string        `json:"period"`
	Days                   int           `json:"days"`
	TotalSittingSeconds    int64         `json:"total_sitting_seconds"`
	TotalStandingSeconds   int64         `json:"total_standing_seconds"`
	TotalPausedSeconds     int64         `json:"total_paused_seconds"`
	AverageSittingSeconds  int64         `json:"average_sitting_seconds"`
	AverageStandingSeconds int64         `json:"average_standing_seconds"`
	AveragePausedSeconds   int64         `json:"average_paused_seconds"`
	Transitions            int           `json:"transitions"`
	ProductivityScore      float64       `json:"productivity_score"`
	BalanceScore           float64       `json:"balance_score"`
	Daily                  []DayResponse `json:"daily"`
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

func toStateResponse(st coordinator.State) StateResponse {
	resp := StateResponse{
		Phase:                string(st.CurrentPhase),
		DisplayPhase:         string(st.DisplayPhase),
		Status:               string(st.Status),
		RemainingSeconds:     seconds(st.Remaining),
		Remaining:            st.RemainingText,
		Progress:             st.Progress,
		IsPaused:             st.IsPaused,
		IsCompleted:          st.IsCompleted,
		AwaitingConfirmation: st.IsShowingConfirmation,
		PendingTransition:    toPendingResponse(st.PendingTransition),
		Today: TodayResponse{
			SittingSeconds:     seconds(st.TodayStats.SittingTime),
			StandingSeconds:    seconds(st.TodayStats.StandingTime),
			TotalSeconds:       seconds(st.TodayStats.TotalTime()),
			SittingPercentage:  st.TodayStats.SittingPercentage(),
			StandingPercentage: st.TodayStats.StandingPercentage(),
		},
	}
	return resp
}

func toPendingResponse(p *transition.Pending) *PendingTransitionResponse {
	if p == nil {
		return nil
	}
	return &PendingTransitionResponse{From: string(p.From), To: string(p.To), Timestamp: p.Timestamp}
}

func toScheduleResponse(s schedule.Schedule) ScheduleResponse {
	return ScheduleResponse{
		SittingMinutes:       s.SittingDuration.Minutes(),
		StandingMinutes:      s.StandingDuration.Minutes(),
		SnoozeMinutes:        s.SnoozeDuration.Minutes(),
		NotificationsEnabled: s.NotificationsEnabled,
		SoundEnabled:         s.SoundEnabled,
		AutoStart:            s.AutoStart,
		AskBeforeTransition:  s.AskBeforeTransition,
		WorkStartTime:        s.WorkStartTime,
		WorkEndTime:          s.WorkEndTime,
	}
}

func toSessionResponses(records []session.Record) []SessionResponse {
	resp := make([]SessionResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, SessionResponse{
			ID:              rec.ID,
			Phase:           string(rec.Phase),
			StartDate:       rec.StartDate,
			EndDate:         rec.EndDate,
			DurationSeconds: seconds(rec.Duration),
		})
	}
	return resp
}

func toStatisticsResponse(sum stats.Summary, days []stats.DailyStatistics) StatisticsResponse {
	resp := StatisticsResponse{
		Period:                 string(sum.Period),
		Days:                   sum.Days,
		TotalSittingSeconds:    seconds(sum.TotalSitting),
		TotalStandingSeconds:   seconds(sum.TotalStanding),
		TotalPausedSeconds:     seconds(sum.TotalPaused),
		AverageSittingSeconds:  seconds(sum.AverageSitting),
		AverageStandingSeconds: seconds(sum.AverageStanding),
		AveragePausedSeconds:   seconds(sum.AveragePaused),
		Transitions:            sum.Transitions,
		ProductivityScore:      sum.ProductivityScore,
		BalanceScore:           sum.BalanceScore,
		Daily:                  make([]DayResponse, 0, len(days)),
	}
	for _, d := range days {
		resp.Daily = append(resp.Daily, DayResponse{
			Date:                d.Date,
			SittingSeconds:      seconds(d.SittingDuration),
			StandingSeconds:     seconds(d.StandingDuration),
			PausedSeconds:       seconds(d.PausedDuration),
			NumberOfTransitions: d.NumberOfTransitions,
		})
	}
	return resp
}
