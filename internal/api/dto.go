package api

import (
	"time"

	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

type streakJSON struct {
	Days          int  `json:"days"`
	Capped        bool `json:"capped,omitempty"`
	Indeterminate bool `json:"indeterminate,omitempty"`
}

type weeklyJSON struct {
	Count         int    `json:"count"`
	Label         string `json:"label"`
	Indeterminate bool   `json:"indeterminate,omitempty"`
}

type controlJSON struct {
	Activity    string `json:"activity"`
	Locked      bool   `json:"locked"`
	Score       *int   `json:"score,omitempty"`
	WriteStatus string `json:"write_status,omitempty"`
}

type todayJSON struct {
	DateKey        string        `json:"date_key"`
	UserID         string        `json:"user_id"`
	Controls       []controlJSON `json:"controls"`
	StrategicScore *int          `json:"strategic_score,omitempty"`
	Courage        int           `json:"courage"`
	Unavailable    bool          `json:"unavailable"`
	Streak         *streakJSON   `json:"streak,omitempty"`
	Weekly         *weeklyJSON   `json:"weekly,omitempty"`
}

type statsJSON struct {
	AsOf   string      `json:"as_of"`
	Streak *streakJSON `json:"streak"`
	Weekly *weeklyJSON `json:"weekly"`
}

type profileJSON struct {
	UserID           string         `json:"user_id"`
	Courage          int            `json:"courage"`
	PersonalBests    map[string]int `json:"personal_bests"`
	WorkoutRunning   bool           `json:"workout_running"`
	WorkoutStartedAt string         `json:"workout_started_at,omitempty"`
}

type historyJSON struct {
	ID         string `json:"id"`
	DateKey    string `json:"date_key"`
	Activity   string `json:"activity"`
	Score      int    `json:"score"`
	RecordedAt string `json:"recorded_at"`
}

type completionJSON struct {
	Activity       string      `json:"activity"`
	DateKey        string      `json:"date_key"`
	Score          *int        `json:"score,omitempty"`
	Status         string      `json:"status"`
	Locked         bool        `json:"locked"`
	NewBest        bool        `json:"new_best,omitempty"`
	Courage        int         `json:"courage"`
	CourageGained  bool        `json:"courage_gained,omitempty"`
	WorkoutMinutes int         `json:"workout_minutes,omitempty"`
	Streak         *streakJSON `json:"streak,omitempty"`
	Weekly         *weeklyJSON `json:"weekly,omitempty"`
}

type stabilityJSON struct {
	DateKey          string `json:"date_key"`
	State            string `json:"state"`
	Phase            string `json:"phase,omitempty"`
	Cycle            int    `json:"cycle,omitempty"`
	Prompt           string `json:"prompt,omitempty"`
	RemainingSeconds int    `json:"remaining_seconds"`
}

type workoutJSON struct {
	DateKey        string `json:"date_key"`
	State          string `json:"state"`
	StartedAt      string `json:"started_at,omitempty"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	Display        string `json:"display"`
}

type socialJSON struct {
	DateKey string `json:"date_key"`
	State   string `json:"state"`
}

type observerJSON struct {
	DateKey          string `json:"date_key"`
	State            string `json:"state"`
	RemainingSeconds int    `json:"remaining_seconds"`
	Display          string `json:"display"`
}

type assetStatusJSON struct {
	Version  string   `json:"version"`
	Expected int      `json:"expected"`
	Cached   int      `json:"cached"`
	Versions []string `json:"versions"`
}

func optionalInt(v int, ok bool) *int {
	if !ok {
		return nil
	}
	return &v
}

func toStreakJSON(s *primary.Streak) *streakJSON {
	if s == nil {
		return nil
	}
	return &streakJSON{Days: s.Days, Capped: s.Capped, Indeterminate: s.Indeterminate}
}

func toWeeklyJSON(w *primary.WeeklyRating) *weeklyJSON {
	if w == nil {
		return nil
	}
	return &weeklyJSON{Count: w.Count, Label: w.Label, Indeterminate: w.Indeterminate}
}

func toTodayJSON(v *primary.TodayView) todayJSON {
	out := todayJSON{
		DateKey:        v.DateKey,
		UserID:         v.UserID,
		Controls:       make([]controlJSON, 0, len(v.Controls)),
		StrategicScore: optionalInt(v.StrategicScore, v.HasStrategic),
		Courage:        v.Courage,
		Unavailable:    v.Unavailable,
		Streak:         toStreakJSON(v.Streak),
		Weekly:         toWeeklyJSON(v.Weekly),
	}
	for _, c := range v.Controls {
		out.Controls = append(out.Controls, controlJSON{
			Activity:    c.Activity,
			Locked:      c.Locked,
			Score:       optionalInt(c.Score, c.HasScore),
			WriteStatus: string(c.WriteStatus),
		})
	}
	return out
}

func toCompletionJSON(c *primary.CompletionResponse) completionJSON {
	return completionJSON{
		Activity:       c.Activity,
		DateKey:        c.DateKey,
		Score:          optionalInt(c.Score, c.HasScore),
		Status:         string(c.Status),
		Locked:         c.Locked,
		NewBest:        c.NewBest,
		Courage:        c.Courage,
		CourageGained:  c.CourageGained,
		WorkoutMinutes: c.WorkoutMinutes,
		Streak:         toStreakJSON(c.Streak),
		Weekly:         toWeeklyJSON(c.Weekly),
	}
}

func toWorkoutJSON(s *primary.WorkoutStatus) workoutJSON {
	out := workoutJSON{
		DateKey:        s.DateKey,
		State:          s.State,
		ElapsedSeconds: int(s.Elapsed / time.Second),
		Display:        s.Display,
	}
	if !s.StartedAt.IsZero() {
		out.StartedAt = s.StartedAt.Format(time.RFC3339)
	}
	return out
}
