package session

import (
	"testing"
	"time"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
)

func TestWorkoutSession_Lifecycle(t *testing.T) {
	s := NewWorkoutSession()

	if res := s.CanFinish(); res.Allowed {
		t.Fatal("idle workout should not finish")
	}
	if res := s.Start(t0); !res.Allowed {
		t.Fatalf("Start() denied: %s", res.Reason)
	}
	if res := s.Start(t0.Add(time.Minute)); res.Allowed {
		t.Error("running workout should not restart")
	} else if res.Reason != "workout already running since 07:00:00" {
		t.Errorf("Reason = %q", res.Reason)
	}

	if got := s.Elapsed(t0.Add(90 * time.Second)); got != 90*time.Second {
		t.Errorf("Elapsed() = %v, want 90s", got)
	}
	if res := s.CanFinish(); !res.Allowed {
		t.Errorf("CanFinish() denied: %s", res.Reason)
	}

	s.MarkFinished()
	if s.State() != WorkoutFinished {
		t.Errorf("State() = %q, want finished", s.State())
	}
	if got := s.Elapsed(t0.Add(time.Hour)); got != 0 {
		t.Errorf("Elapsed() after finish = %v, want 0", got)
	}
}

func TestResumeWorkoutSession(t *testing.T) {
	s := ResumeWorkoutSession(t0)
	if s.State() != WorkoutRunning {
		t.Fatalf("State() = %q, want running", s.State())
	}
	if !s.StartedAt().Equal(t0) {
		t.Errorf("StartedAt() = %v, want %v", s.StartedAt(), t0)
	}
}

func TestElapsedDisplay(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{9 * time.Second, "00:09"},
		{61 * time.Second, "01:01"},
		{45*time.Minute + 30*time.Second + 900*time.Millisecond, "45:30"},
		{125 * time.Minute, "125:00"},
		{-time.Second, "00:00"},
	}

	for _, tt := range tests {
		if got := ElapsedDisplay(tt.d); got != tt.want {
			t.Errorf("ElapsedDisplay(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestNormalizeWorkoutType(t *testing.T) {
	if got := NormalizeWorkoutType("  "); got != DefaultWorkoutType {
		t.Errorf("NormalizeWorkoutType(blank) = %q", got)
	}
	if got := NormalizeWorkoutType(" run "); got != "run" {
		t.Errorf("NormalizeWorkoutType(run) = %q", got)
	}
}

func TestSocialSession_Lifecycle(t *testing.T) {
	s := NewSocialSession()

	if res := s.OpenReflection(); res.Allowed {
		t.Error("reflection should not open before the mission starts")
	}
	if res := s.Start(); !res.Allowed {
		t.Fatalf("Start() denied: %s", res.Reason)
	}
	if res := s.CanSubmit(); res.Allowed {
		t.Error("submission before reflection should be denied")
	}
	if res := s.OpenReflection(); !res.Allowed {
		t.Fatalf("OpenReflection() denied: %s", res.Reason)
	}
	if res := s.OpenReflection(); !res.Allowed {
		t.Error("reopening an open reflection should be a no-op")
	}
	if res := s.CanSubmit(); !res.Allowed {
		t.Errorf("CanSubmit() denied: %s", res.Reason)
	}

	s.MarkSubmitted()
	if res := s.Start(); res.Allowed {
		t.Error("submitted mission should not restart")
	}
}

func TestSocialInput_Validate(t *testing.T) {
	if err := (SocialInput{Outcome: "  "}).Normalize().Validate(); err == nil {
		t.Error("blank outcome should be rejected")
	}

	in := SocialInput{Outcome: "asked a stranger for directions"}.Normalize()
	if in.Difficulty != DefaultDifficulty || in.Intensity != DefaultIntensity {
		t.Errorf("defaults not applied: %+v", in)
	}
	if err := in.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	if err := (SocialInput{Outcome: "x", Difficulty: 7, Intensity: 3}).Validate(); err != nil {
		t.Errorf("difficulty above the selector range should be accepted, got %v", err)
	}
	if err := (SocialInput{Outcome: "x", Difficulty: -1, Intensity: 3}).Validate(); err == nil {
		t.Error("negative difficulty should be rejected")
	}
}

func TestObserverSession_Countdown(t *testing.T) {
	s := NewObserverSession()

	if res := s.CanSubmit(t0); res.Allowed {
		t.Fatal("idle observer should not accept a submission")
	}
	if res := s.Start(t0); !res.Allowed {
		t.Fatalf("Start() denied: %s", res.Reason)
	}

	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 20},
		{500 * time.Millisecond, 20},
		{time.Second, 19},
		{19*time.Second + 100*time.Millisecond, 1},
		{20 * time.Second, 0},
	}
	for _, tt := range tests {
		if got := s.Remaining(t0.Add(tt.elapsed)); got != tt.want {
			t.Errorf("Remaining(%v) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}

	if got := s.State(t0.Add(ObserverCountdown)); got != ObserverQuestionsOpen {
		t.Errorf("State at zero = %q, want questions_open", got)
	}
	if res := s.CanSubmit(t0.Add(ObserverCountdown)); !res.Allowed {
		t.Errorf("CanSubmit() denied: %s", res.Reason)
	}
}

func TestObserverSession_SubmitDuringCountdown(t *testing.T) {
	s := NewObserverSession()
	s.Start(t0)

	res := s.CanSubmit(t0.Add(5 * time.Second))
	if res.Allowed {
		t.Fatal("submission during countdown should be denied")
	}
	if res.Reason != "observe silently for 15s more" {
		t.Errorf("Reason = %q", res.Reason)
	}
}

func TestCountdownDisplay(t *testing.T) {
	if got := CountdownDisplay(7); got != "Observe silently... 7s" {
		t.Errorf("CountdownDisplay(7) = %q", got)
	}
}

func TestCanComplete(t *testing.T) {
	tests := []struct {
		name        string
		ctx         CompletionContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "fresh day",
			ctx:         CompletionContext{Activity: record.ActivityWorkout, DateKey: "2026-10-19"},
			wantAllowed: true,
		},
		{
			name:        "locked control",
			ctx:         CompletionContext{Activity: record.ActivityWorkout, DateKey: "2026-10-19", Locked: true},
			wantAllowed: false,
			wantReason:  "workout already completed for 2026-10-19",
		},
		{
			name:        "recorded in store",
			ctx:         CompletionContext{Activity: record.ActivitySocial, DateKey: "2026-10-19", Recorded: true},
			wantAllowed: false,
			wantReason:  "social already completed for 2026-10-19",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanComplete(tt.ctx)
			if got.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", got.Allowed, tt.wantAllowed)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}
