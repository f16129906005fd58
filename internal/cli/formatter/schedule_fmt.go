package formatter

import (
	"fmt"
	"strings"

	"github.com/rpggio/moveit/internal/domain/schedule"
)

func onOff(v bool) string {
	if v {
		return render(StyleGreen, "on")
	}
	return Dim("off")
}

// FormatSchedule renders the schedule in a box.
func FormatSchedule(s schedule.Schedule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-22s %s\n", "Sitting", FormatDuration(s.SittingDuration))
	fmt.Fprintf(&b, "%-22s %s\n", "Standing", FormatDuration(s.StandingDuration))
	fmt.Fprintf(&b, "%-22s %s\n", "Snooze", FormatDuration(s.SnoozeDuration))
	fmt.Fprintf(&b, "%-22s %s\n", "Notifications", onOff(s.NotificationsEnabled))
	fmt.Fprintf(&b, "%-22s %s\n", "Sound", onOff(s.SoundEnabled))
	fmt.Fprintf(&b, "%-22s %s\n", "Ask before switching", onOff(s.AskBeforeTransition))
	fmt.Fprintf(&b, "%-22s %s\n", "Auto start", onOff(s.AutoStart))
	fmt.Fprintf(&b, "%-22s %s - %s", "Work hours", s.WorkStartTime, s.WorkEndTime)
	return RenderBox("Schedule", b.String()) + "\n"
}
