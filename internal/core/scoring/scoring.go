// Package scoring contains the pure scoring rules for each activity.
// This is part of the Functional Core - no I/O, only pure functions.
package scoring

import "time"

const (
	baseScore = 2
	bonus     = 2

	// CalmIntensity is the highest self-reported intensity that still earns the calm bonus.
	CalmIntensity = 4

	// CourageIntensity is the lowest intensity at which a social mission counts as courage under fear.
	CourageIntensity = 6

	// ReframeChallenge is the reframe choice that earns the stability bonus.
	ReframeChallenge = "challenge"

	WorkoutSolidMinutes  = 20
	WorkoutStrongMinutes = 40
)

// StabilityScore scores a reframing exercise. Range [2,6].
func StabilityScore(reframe string, intensity int) int {
	score := baseScore
	if reframe == ReframeChallenge {
		score += bonus
	}
	if intensity <= CalmIntensity {
		score += bonus
	}
	return score
}

// WorkoutScore scores a workout by whole minutes. Thresholds are cumulative. Range [2,6].
func WorkoutScore(durationMinutes int) int {
	score := baseScore
	if durationMinutes >= WorkoutSolidMinutes {
		score += bonus
	}
	if durationMinutes >= WorkoutStrongMinutes {
		score += bonus
	}
	return score
}

// SocialScore scores a social mission. Difficulty is not clamped.
func SocialScore(difficulty, intensity int) int {
	score := baseScore + difficulty*bonus
	if intensity <= CalmIntensity {
		score += bonus
	}
	return score
}

// ShouldIncrementCourage reports whether a social completion adds one to the courage counter.
// Independent of the computed score.
func ShouldIncrementCourage(intensity int) bool {
	return intensity >= CourageIntensity
}

// WorkoutDuration returns the whole minutes between start and end, floored and never negative.
func WorkoutDuration(start, end time.Time) int {
	elapsed := end.Sub(start)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / time.Minute)
}

// ImprovesBest reports whether score should replace the stored personal best.
func ImprovesBest(best int, known bool, score int) bool {
	return !known || score > best
}
