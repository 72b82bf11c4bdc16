package service

import (
	"fmt"
	"time"
)

// noDeadlineText is shown wherever an item carries no deadline
const noDeadlineText = "Geen deadline"

var dutchMonths = [...]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

// formatDutchDate renders a deadline as a Dutch long date, e.g. "1 mei 2025".
// Deadlines are day-granular; any time-of-day component is ignored.
func formatDutchDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), dutchMonths[t.Month()-1], t.Year())
}

// DeadlineText renders an optional deadline for display and email bodies
func DeadlineText(deadline *time.Time) string {
	if deadline == nil {
		return noDeadlineText
	}
	return formatDutchDate(*deadline)
}
