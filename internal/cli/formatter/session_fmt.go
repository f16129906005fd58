package formatter

import (
	"fmt"
	"strings"

	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/domain/session"
)

// FormatSessions renders session records as a table, oldest first.
func FormatSessions(records []session.Record) string {
	if len(records) == 0 {
		return Dim("No sessions recorded.") + "\n"
	}

	rows := make([][]string, 0, len(records))
	var sitting, standing int
	for _, r := range records {
		end := Dim("running")
		if r.EndDate != nil {
			end = Clock(*r.EndDate)
		}
		rows = append(rows, []string{
			r.StartDate.Local().Format("2006-01-02"),
			Clock(r.StartDate),
			end,
			PhaseLabel(r.Phase),
			FormatDuration(r.Duration),
		})
		switch r.Phase {
		case phase.Sitting:
			sitting++
		case phase.Standing:
			standing++
		}
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"DATE", "START", "END", "PHASE", "DURATION"}, rows))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d sessions: %d sitting, %d standing", len(records), sitting, standing)))
	b.WriteString("\n")
	return b.String()
}
