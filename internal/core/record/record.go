// Package record defines the daily record document and the activities it tracks.
// This is part of the Functional Core - no I/O, only types and pure helpers.
package record

import "time"

// Activity names one of the tracked daily activities.
// The value doubles as the boolean flag's field name in the document.
type Activity string

const (
	ActivityStability Activity = "stability"
	ActivityWorkout   Activity = "workout"
	ActivitySocial    Activity = "social"
	ActivityObserver  Activity = "observer"
)

// CoreActivities are the three activities that make up a complete day.
var CoreActivities = []Activity{ActivityStability, ActivityWorkout, ActivitySocial}

// AllActivities lists every activity in display order.
var AllActivities = []Activity{ActivityStability, ActivityWorkout, ActivitySocial, ActivityObserver}

// IsValid reports whether a is a known activity.
func (a Activity) IsValid() bool {
	switch a {
	case ActivityStability, ActivityWorkout, ActivitySocial, ActivityObserver:
		return true
	default:
		return false
	}
}

// DailyRecord is the per-user-per-day document.
// Every field is optional so the same type serves as a partial record for merge writes:
// nil fields are omitted from the encoded patch and left untouched by the store.
type DailyRecord struct {
	Stability      *bool          `json:"stability,omitempty"`
	StrategicScore *int           `json:"strategicScore,omitempty"`
	StabilityData  *StabilityData `json:"stabilityData,omitempty"`

	Workout      *bool        `json:"workout,omitempty"`
	WorkoutScore *int         `json:"workoutScore,omitempty"`
	WorkoutData  *WorkoutData `json:"workoutData,omitempty"`

	Social      *bool       `json:"social,omitempty"`
	SocialScore *int        `json:"socialScore,omitempty"`
	SocialData  *SocialData `json:"socialData,omitempty"`

	Observer *bool `json:"observer,omitempty"`
}

// StabilityData is the reflection captured by the stability exercise.
type StabilityData struct {
	Situation   string    `json:"situation"`
	Trigger     string    `json:"trigger"`
	Reframe     string    `json:"reframe"`
	Intensity   int       `json:"intensity"`
	Action      string    `json:"action"`
	SecondOrder string    `json:"secondOrder"`
	Timestamp   time.Time `json:"timestamp"`
}

// WorkoutData describes a finished workout. Duration is in whole minutes.
type WorkoutData struct {
	Type      string    `json:"type"`
	Duration  int       `json:"duration"`
	Timestamp time.Time `json:"timestamp"`
}

// SocialData is the self-report captured after a social mission.
type SocialData struct {
	Difficulty int       `json:"difficulty"`
	Intensity  int       `json:"intensity"`
	Outcome    string    `json:"outcome"`
	Timestamp  time.Time `json:"timestamp"`
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Has reports whether the completion flag for a is set.
// A nil record has no flags.
func (r *DailyRecord) Has(a Activity) bool {
	if r == nil {
		return false
	}
	var flag *bool
	switch a {
	case ActivityStability:
		flag = r.Stability
	case ActivityWorkout:
		flag = r.Workout
	case ActivitySocial:
		flag = r.Social
	case ActivityObserver:
		flag = r.Observer
	}
	return flag != nil && *flag
}

// Score returns the stored score for a, if any. Observer carries no score.
func (r *DailyRecord) Score(a Activity) (int, bool) {
	if r == nil {
		return 0, false
	}
	var score *int
	switch a {
	case ActivityStability:
		score = r.StrategicScore
	case ActivityWorkout:
		score = r.WorkoutScore
	case ActivitySocial:
		score = r.SocialScore
	}
	if score == nil {
		return 0, false
	}
	return *score, true
}

// CompletedActivities returns the activities whose flag is set, in display order.
func (r *DailyRecord) CompletedActivities() []Activity {
	var done []Activity
	for _, a := range AllActivities {
		if r.Has(a) {
			done = append(done, a)
		}
	}
	return done
}
