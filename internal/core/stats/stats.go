// Package stats contains the pure rules behind the rolling statistics.
// The backward scans themselves live in the application layer; this package
// decides, day by day, what each observed record means for the scan.
package stats

import "github.com/vedantadhau820-alt/IdentityOS/internal/core/record"

// WeekWindow is the number of calendar days covered by the weekly workout rating.
const WeekWindow = 7

// DefaultMaxLookback bounds the streak scan when no cap is configured.
const DefaultMaxLookback = 365

// ReadStatus classifies one store read.
type ReadStatus string

const (
	ReadFound   ReadStatus = "found"
	ReadAbsent  ReadStatus = "absent"
	ReadUnknown ReadStatus = "unknown"
)

// Weekly rating labels.
const (
	LabelWeakWeek     = "Weak Week"
	LabelLowOutput    = "Low Output"
	LabelSolid        = "Solid"
	LabelOperatorMode = "Operator Mode"
)

// StreakResult is the outcome of a streak scan.
type StreakResult struct {
	Days          int
	Capped        bool // the lookback cap stopped the scan, the real streak may be longer
	Indeterminate bool // a read failed, the real streak may be longer
}

// WeeklyRating is the outcome of the 7-day workout scan.
type WeeklyRating struct {
	Count         int
	Label         string
	Indeterminate bool
}

// StreakStep is the scan decision for one day.
type StreakStep int

const (
	// StepCount counts the day and continues to the previous one.
	StepCount StreakStep = iota
	// StepStop ends the scan: the day is a gap.
	StepStop
	// StepHalt ends the scan because the day could not be read.
	StepHalt
)

// IsCompleteDay reports whether all three core activities are flagged.
func IsCompleteDay(r *record.DailyRecord) bool {
	for _, a := range record.CoreActivities {
		if !r.Has(a) {
			return false
		}
	}
	return true
}

// ClassifyStreakDay decides how one read affects the streak scan.
func ClassifyStreakDay(status ReadStatus, r *record.DailyRecord) StreakStep {
	switch status {
	case ReadUnknown:
		return StepHalt
	case ReadFound:
		if IsCompleteDay(r) {
			return StepCount
		}
		return StepStop
	default:
		return StepStop
	}
}

// NormalizeLookback returns the effective lookback cap.
func NormalizeLookback(maxDays int) int {
	if maxDays <= 0 {
		return DefaultMaxLookback
	}
	return maxDays
}

// CountsAsWorkout reports whether a read contributes to the weekly count.
func CountsAsWorkout(status ReadStatus, r *record.DailyRecord) bool {
	return status == ReadFound && r.Has(record.ActivityWorkout)
}

// RatingLabel maps a weekly workout count to its label.
func RatingLabel(count int) string {
	switch {
	case count <= 0:
		return LabelWeakWeek
	case count <= 2:
		return LabelLowOutput
	case count <= 4:
		return LabelSolid
	default:
		return LabelOperatorMode
	}
}
