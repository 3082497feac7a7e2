package engine

import (
	"fmt"
	"math"
	"time"
)

type TimeStatusType string

const (
	TimeStatusCritical TimeStatusType = "critical"
	TimeStatusOverdue  TimeStatusType = "overdue"
	TimeStatusUrgent   TimeStatusType = "urgent"
	TimeStatusWarning  TimeStatusType = "warning"
	TimeStatusOK       TimeStatusType = "ok"
)

// TimeStatus is the derived urgency of a booking relative to its expected
// check-out. It is never persisted; callers re-classify on a timer with a
// fresh now.
type TimeStatus struct {
	Type         TimeStatusType `json:"type"`
	Label        string         `json:"label"`
	Countdown    string         `json:"remainingOrOverdueText"`
	SeverityRank int            `json:"severityRank"`
}

// Thresholds are the classification boundaries in minutes relative to the
// expected check-out (negative = already due). There is exactly one table;
// every screen and counter goes through it.
type Thresholds struct {
	CriticalBelow int // diff < CriticalBelow           => critical
	OverdueBelow  int // CriticalBelow <= diff < this   => overdue
	UrgentUpTo    int // OverdueBelow <= diff <= this   => urgent
	WarningUpTo   int // UrgentUpTo < diff <= this      => warning, beyond => ok
}

var DefaultThresholds = Thresholds{
	CriticalBelow: -60,
	OverdueBelow:  -15,
	UrgentUpTo:    15,
	WarningUpTo:   60,
}

// Classify derives the urgency of a check-out deadline at the supplied
// instant. A nil deadline has no urgency and yields nil.
func (t Thresholds) Classify(now time.Time, expectedCheckOut *time.Time) *TimeStatus {
	if expectedCheckOut == nil {
		return nil
	}

	diff := diffMinutes(now, *expectedCheckOut)
	countdown := formatCountdown(diff)

	switch {
	case diff < t.CriticalBelow:
		return &TimeStatus{Type: TimeStatusCritical, Label: "OVERDUE", Countdown: countdown, SeverityRank: 5}
	case diff < t.OverdueBelow:
		return &TimeStatus{Type: TimeStatusOverdue, Label: "OVERDUE", Countdown: countdown, SeverityRank: 4}
	case diff <= t.UrgentUpTo:
		return &TimeStatus{Type: TimeStatusUrgent, Label: "DUE SOON", Countdown: countdown, SeverityRank: 3}
	case diff <= t.WarningUpTo:
		return &TimeStatus{Type: TimeStatusWarning, Label: "WARNING", Countdown: countdown, SeverityRank: 2}
	default:
		return &TimeStatus{Type: TimeStatusOK, Label: "ON TIME", Countdown: countdown, SeverityRank: 1}
	}
}

// Classify applies the default thresholds.
func Classify(now time.Time, expectedCheckOut *time.Time) *TimeStatus {
	return DefaultThresholds.Classify(now, expectedCheckOut)
}

// diffMinutes floors, so -90s is -2 minutes, not -1.
func diffMinutes(now, deadline time.Time) int {
	return int(math.Floor(deadline.Sub(now).Minutes()))
}

func formatCountdown(diff int) string {
	if diff < 0 {
		over := -diff
		if over >= 60 {
			return fmt.Sprintf("%dh ago", over/60)
		}
		return fmt.Sprintf("%dm ago", over)
	}
	if diff >= 60 {
		return fmt.Sprintf("%dh left", diff/60)
	}
	return fmt.Sprintf("%dm left", diff)
}
