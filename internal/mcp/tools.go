package mcp

var emptySchema = map[string]any{
	"type":       "object",
	"properties": map[string]any{},
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Commands
		{
			Name:        "start_session",
			Description: "Start a fresh countdown for a phase, replacing whatever is running",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"phase": map[string]any{
						"type":        "string",
						"enum":        []string{"sitting", "standing"},
						"description": "Phase to start",
					},
				},
				"required": []string{"phase"},
			},
		},
		{
			Name:        "pause_session",
			Description: "Pause the running countdown",
			InputSchema: emptySchema,
		},
		{
			Name:        "resume_session",
			Description: "Resume a paused countdown",
			InputSchema: emptySchema,
		},
		{
			Name:        "skip_phase",
			Description: "End the current phase early and start the other one (sitting when idle)",
			InputSchema: emptySchema,
		},
		{
			Name:        "stop_session",
			Description: "Stop timing entirely and cancel reminders",
			InputSchema: emptySchema,
		},

		// Transition prompt
		{
			Name:        "confirm_transition",
			Description: "Accept the pending switch to the next phase",
			InputSchema: emptySchema,
		},
		{
			Name:        "snooze_transition",
			Description: "Pause and ask again about the pending switch later",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"seconds": map[string]any{
						"type":        "integer",
						"minimum":     0,
						"description": "Snooze length in seconds (omit for the schedule's snooze duration)",
					},
				},
			},
		},
		{
			Name:        "cancel_transition",
			Description: "Dismiss the pending switch without changing phase",
			InputSchema: emptySchema,
		},
		{
			Name:        "continue_phase",
			Description: "Dismiss the pending switch and run the finished phase again",
			InputSchema: emptySchema,
		},
		{
			Name:        "answer_prompt",
			Description: "Answer the latest transition notification",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"action": map[string]any{
						"type":        "string",
						"enum":        []string{"transition", "continue", "snooze"},
						"description": "Answer to the prompt",
					},
					"seconds": map[string]any{
						"type":        "integer",
						"minimum":     0,
						"description": "Snooze length in seconds, for the snooze answer",
					},
				},
				"required": []string{"action"},
			},
		},

		// Queries
		{
			Name:        "get_state",
			Description: "Current phase, remaining time, progress, pending transition and today's totals",
			InputSchema: emptySchema,
		},
		{
			Name:        "get_schedule",
			Description: "Current schedule",
			InputSchema: emptySchema,
		},
		{
			Name:        "update_schedule",
			Description: "Change schedule fields; a running countdown keeps its length",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"sitting_minutes":       map[string]any{"type": "number", "exclusiveMinimum": 0},
					"standing_minutes":      map[string]any{"type": "number", "exclusiveMinimum": 0},
					"snooze_minutes":        map[string]any{"type": "number", "exclusiveMinimum": 0},
					"notifications_enabled": map[string]any{"type": "boolean"},
					"sound_enabled":         map[string]any{"type": "boolean"},
					"auto_start":            map[string]any{"type": "boolean"},
					"ask_before_transition": map[string]any{"type": "boolean"},
					"work_start_time":       map[string]any{"type": "string", "description": "HH:MM"},
					"work_end_time":         map[string]any{"type": "string", "description": "HH:MM"},
				},
			},
		},
		{
			Name:        "get_today_sessions",
			Description: "Sessions finished today",
			InputSchema: emptySchema,
		},
		{
			Name:        "get_statistics",
			Description: "Totals, averages and scores for a period",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"period": map[string]any{
						"type":        "string",
						"enum":        []string{"today", "week", "month"},
						"description": "Reporting window (default today)",
					},
				},
			},
		},
		{
			Name:        "get_notifications",
			Description: "Reminders and prompts delivered since they were last cleared",
			InputSchema: emptySchema,
		},
		{
			Name:        "reset_statistics",
			Description: "Delete all statistics and session history; cannot be undone",
			InputSchema: emptySchema,
		},
	}
}
