package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `moveit alternates the user between Sitting and Standing work phases.

Core concepts:
- Phase: sitting or standing is being timed; paused is a display state; inactive means nothing runs.
- Session: one continuous stretch in a phase. Closed sessions make up today's history.
- Pending transition: when a phase ends and the schedule asks before switching, the switch is held until answered.
- Statistics: per-day totals of active sitting, standing and paused time, plus transition counts.

Typical flow:
1) get_state to see what is running.
2) start_session {phase} to begin, pause_session / resume_session around breaks.
3) When get_state shows awaiting_confirmation, answer with confirm_transition, continue_phase or snooze_transition.
4) get_statistics {period} for reports; update_schedule to change phase lengths.

Commands that do not apply in the current state return applied=false and change nothing.

Docs: moveit://docs/guide
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "moveit://docs/guide",
		Name:        "docs_guide",
		Title:       "moveit guide",
		Description: "Phases, prompts, snoozing and how statistics are booked.",
		Content: `# moveit guide

## Phases

- ` + "`sitting`" + ` and ` + "`standing`" + ` are timed from the schedule (30 and 15 minutes by default).
- Pausing freezes the countdown; time spent paused is reported separately and never counts as active time.
- ` + "`skip_phase`" + ` ends the current phase early and starts the other one.
- ` + "`stop_session`" + ` ends timing and cancels reminders.

## When a phase ends

- With ` + "`ask_before_transition`" + ` off, the next phase starts on its own.
- With it on, a prompt is delivered (see ` + "`get_notifications`" + `) and ` + "`get_state`" + ` reports ` + "`awaiting_confirmation`" + `.
  - ` + "`confirm_transition`" + ` switches phase.
  - ` + "`continue_phase`" + ` runs the finished phase again.
  - ` + "`snooze_transition`" + ` pauses and asks once more after the snooze length, if still paused.
  - ` + "`cancel_transition`" + ` dismisses the prompt and leaves the timer at zero.

## Statistics

- Each switch opens an interval for the phase being entered; its active time (length minus pauses) is credited to that phase on the day it closes.
- The transition count is booked on the day the interval opens.
- ` + "`get_statistics`" + ` reports totals, per-day averages (over days with data), a productivity score (active share of all tracked time) and a balance score (100 at half the active time standing or more).
- ` + "`reset_statistics`" + ` deletes every statistic and the session history.

## Schedule

` + "`update_schedule`" + ` accepts minutes for sitting, standing and snooze, the notification switches, auto start and work hours (advisory). A countdown already running keeps its length.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
