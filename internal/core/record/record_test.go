package record

import (
	"encoding/json"
	"testing"
)

func TestDailyRecord_Has(t *testing.T) {
	rec := &DailyRecord{
		Stability: Bool(true),
		Workout:   Bool(false),
	}

	tests := []struct {
		activity Activity
		want     bool
	}{
		{ActivityStability, true},
		{ActivityWorkout, false},
		{ActivitySocial, false},
		{ActivityObserver, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.activity), func(t *testing.T) {
			if got := rec.Has(tt.activity); got != tt.want {
				t.Errorf("Has(%s) = %v, want %v", tt.activity, got, tt.want)
			}
		})
	}
}

func TestDailyRecord_NilIsEmpty(t *testing.T) {
	var rec *DailyRecord

	if rec.Has(ActivityStability) {
		t.Error("nil record should have no flags")
	}
	if _, ok := rec.Score(ActivityWorkout); ok {
		t.Error("nil record should have no scores")
	}
	if got := rec.CompletedActivities(); len(got) != 0 {
		t.Errorf("CompletedActivities() = %v, want empty", got)
	}
}

func TestDailyRecord_Score(t *testing.T) {
	rec := &DailyRecord{StrategicScore: Int(6), SocialScore: Int(8)}

	if got, ok := rec.Score(ActivityStability); !ok || got != 6 {
		t.Errorf("Score(stability) = %d, %v, want 6, true", got, ok)
	}
	if got, ok := rec.Score(ActivitySocial); !ok || got != 8 {
		t.Errorf("Score(social) = %d, %v, want 8, true", got, ok)
	}
	if _, ok := rec.Score(ActivityObserver); ok {
		t.Error("observer should never carry a score")
	}
}

func TestDailyRecord_PartialEncodingOmitsUnsetFields(t *testing.T) {
	patch := &DailyRecord{Observer: Bool(true)}

	data, err := json.Marshal(patch)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if string(data) != `{"observer":true}` {
		t.Errorf("encoded patch = %s, want {\"observer\":true}", data)
	}
}

func TestActivity_IsValid(t *testing.T) {
	for _, a := range AllActivities {
		if !a.IsValid() {
			t.Errorf("%s should be valid", a)
		}
	}
	if Activity("nap").IsValid() {
		t.Error("unknown activity should be invalid")
	}
}
