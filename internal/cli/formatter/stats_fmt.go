package formatter

import (
	"fmt"
	"strings"

	"github.com/rpggio/moveit/internal/domain/stats"
)

const scoreBarWidth = 20

// FormatSummary renders a period report with per-day rows.
func FormatSummary(sum stats.Summary, days []stats.DailyStatistics) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Statistics: %s", sum.Period)))
	b.WriteString("\n")

	if sum.Days == 0 {
		b.WriteString(Dim("No activity recorded."))
		b.WriteString("\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%-14s %s\n", "Sitting", FormatDuration(sum.TotalSitting))
	fmt.Fprintf(&b, "%-14s %s\n", "Standing", FormatDuration(sum.TotalStanding))
	fmt.Fprintf(&b, "%-14s %s\n", "Paused", FormatDuration(sum.TotalPaused))
	fmt.Fprintf(&b, "%-14s %d\n", "Transitions", sum.Transitions)
	if sum.Days > 1 {
		fmt.Fprintf(&b, "%-14s %s sitting, %s standing %s\n", "Per day",
			FormatDuration(sum.AverageSitting), FormatDuration(sum.AverageStanding),
			Dim(fmt.Sprintf("(%d days)", sum.Days)))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-14s %s\n", "Productivity", RenderProgress(sum.ProductivityScore/100, scoreBarWidth))
	fmt.Fprintf(&b, "%-14s %s\n", "Balance", RenderProgress(sum.BalanceScore/100, scoreBarWidth))

	if len(days) > 1 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(days))
		for _, d := range days {
			sittingPct := 0.5
			if active := d.ActiveDuration(); active > 0 {
				sittingPct = float64(d.SittingDuration) / float64(active)
			}
			rows = append(rows, []string{
				d.Date,
				FormatDuration(d.SittingDuration),
				FormatDuration(d.StandingDuration),
				FormatDuration(d.PausedDuration),
				fmt.Sprintf("%d", d.NumberOfTransitions),
				RenderBalance(sittingPct, 10),
			})
		}
		b.WriteString(RenderTable([]string{"DATE", "SITTING", "STANDING", "PAUSED", "SWITCHES", "BALANCE"}, rows))
	}

	return b.String()
}
