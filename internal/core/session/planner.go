package session

import (
	"time"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/effects"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/scoring"
)

// CompletionPlan represents the planned effects for completing an activity.
// The merge write always comes first; everything in After runs only once it is confirmed.
type CompletionPlan struct {
	Activity record.Activity
	DateKey  string
	Score    int
	HasScore bool
	Merge    effects.MergeRecordEffect
	After    []effects.Effect
}

// Effects returns all effects as a flat slice for execution.
func (p CompletionPlan) Effects() []effects.Effect {
	result := make([]effects.Effect, 0, len(p.After)+1)
	result = append(result, p.Merge)
	result = append(result, p.After...)
	return result
}

// PlanStabilityCompletion creates the plan for a submitted reflection.
// The input must already be normalized and validated.
func PlanStabilityCompletion(dateKey string, in StabilityInput, now time.Time) CompletionPlan {
	score := scoring.StabilityScore(in.Reframe, in.Intensity)
	patch := &record.DailyRecord{
		Stability:      record.Bool(true),
		StrategicScore: record.Int(score),
		StabilityData: &record.StabilityData{
			Situation:   in.Situation,
			Trigger:     in.Trigger,
			Reframe:     in.Reframe,
			Intensity:   in.Intensity,
			Action:      in.Action,
			SecondOrder: in.SecondOrder,
			Timestamp:   now,
		},
	}

	return scoredPlan(record.ActivityStability, dateKey, score, patch,
		effects.RefreshEffect{Streak: true})
}

// PlanWorkoutCompletion creates the plan for a finished workout.
func PlanWorkoutCompletion(dateKey, workoutType string, minutes int, now time.Time) CompletionPlan {
	score := scoring.WorkoutScore(minutes)
	patch := &record.DailyRecord{
		Workout:      record.Bool(true),
		WorkoutScore: record.Int(score),
		WorkoutData: &record.WorkoutData{
			Type:      workoutType,
			Duration:  minutes,
			Timestamp: now,
		},
	}

	plan := scoredPlan(record.ActivityWorkout, dateKey, score, patch,
		effects.RefreshEffect{Streak: true, Weekly: true})
	plan.After = append([]effects.Effect{effects.ClearWorkoutEffect{}}, plan.After...)
	return plan
}

// PlanSocialCompletion creates the plan for a submitted social mission.
// The courage rule depends only on intensity, never on the score.
func PlanSocialCompletion(dateKey string, in SocialInput, now time.Time) CompletionPlan {
	score := scoring.SocialScore(in.Difficulty, in.Intensity)
	patch := &record.DailyRecord{
		Social:      record.Bool(true),
		SocialScore: record.Int(score),
		SocialData: &record.SocialData{
			Difficulty: in.Difficulty,
			Intensity:  in.Intensity,
			Outcome:    in.Outcome,
			Timestamp:  now,
		},
	}

	plan := scoredPlan(record.ActivitySocial, dateKey, score, patch,
		effects.RefreshEffect{Streak: true})
	if scoring.ShouldIncrementCourage(in.Intensity) {
		plan.After = append([]effects.Effect{
			effects.CourageEffect{Delta: 1},
			effects.LogEffect{
				Level:   "info",
				Message: "courage under fear",
				Fields:  map[string]any{"intensity": in.Intensity},
			},
		}, plan.After...)
	}
	return plan
}

// PlanObserverCompletion creates the plan for submitted observer questions.
func PlanObserverCompletion(dateKey string) CompletionPlan {
	return CompletionPlan{
		Activity: record.ActivityObserver,
		DateKey:  dateKey,
		Merge: effects.MergeRecordEffect{
			DateKey: dateKey,
			Patch:   &record.DailyRecord{Observer: record.Bool(true)},
		},
		After: []effects.Effect{
			effects.LockEffect{DateKey: dateKey, Activity: record.ActivityObserver},
			effects.EventEffect{DateKey: dateKey, Activity: record.ActivityObserver},
			effects.RefreshEffect{Streak: true},
		},
	}
}

func scoredPlan(activity record.Activity, dateKey string, score int, patch *record.DailyRecord, refresh effects.RefreshEffect) CompletionPlan {
	return CompletionPlan{
		Activity: activity,
		DateKey:  dateKey,
		Score:    score,
		HasScore: true,
		Merge:    effects.MergeRecordEffect{DateKey: dateKey, Patch: patch},
		After: []effects.Effect{
			effects.LockEffect{DateKey: dateKey, Activity: activity},
			effects.BestEffect{Activity: activity, Score: score},
			effects.EventEffect{DateKey: dateKey, Activity: activity, Score: score},
			refresh,
		},
	}
}
