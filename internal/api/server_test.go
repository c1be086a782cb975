package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedantadhau820-alt/IdentityOS/internal/app"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/session"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

// ─── Fakes ──────────────────────────────────────────────────────────────────

type fakeTracker struct {
	today      *primary.TodayView
	stats      *primary.Stats
	profile    *primary.Profile
	history    []*primary.HistoryEntry
	completion *primary.CompletionResponse
	workout    *primary.WorkoutStatus
	err        error

	gotStability primary.SubmitStabilityRequest
	gotSocial    primary.SubmitSocialRequest
	gotHistory   primary.HistoryFilters
	gotSkip      bool
}

func (f *fakeTracker) GetOrCreateUserID(ctx context.Context) (string, error) {
	return "K48213", f.err
}

func (f *fakeTracker) GetToday(ctx context.Context) (*primary.TodayView, error) {
	return f.today, f.err
}

func (f *fakeTracker) ComputeStreak(ctx context.Context, asOf time.Time) (*primary.Streak, error) {
	return f.stats.Streak, f.err
}

func (f *fakeTracker) ComputeWeeklyWorkoutRating(ctx context.Context, asOf time.Time) (*primary.WeeklyRating, error) {
	return f.stats.Weekly, f.err
}

func (f *fakeTracker) GetStats(ctx context.Context) (*primary.Stats, error) {
	return f.stats, f.err
}

func (f *fakeTracker) GetProfile(ctx context.Context) (*primary.Profile, error) {
	return f.profile, f.err
}

func (f *fakeTracker) ListHistory(ctx context.Context, filters primary.HistoryFilters) ([]*primary.HistoryEntry, error) {
	f.gotHistory = filters
	return f.history, f.err
}

func (f *fakeTracker) StartStability(ctx context.Context, req primary.StartStabilityRequest) (*primary.StabilityStatus, error) {
	f.gotSkip = req.SkipBreathing
	return &primary.StabilityStatus{DateKey: "2026-10-19", State: "breathing", Phase: "inhale", Cycle: 1, RemainingSeconds: 4}, f.err
}

func (f *fakeTracker) GetStabilityPhase(ctx context.Context) (*primary.StabilityStatus, error) {
	return &primary.StabilityStatus{DateKey: "2026-10-19", State: "breathing", Phase: "hold", Cycle: 1, RemainingSeconds: 3}, f.err
}

func (f *fakeTracker) SubmitStability(ctx context.Context, req primary.SubmitStabilityRequest) (*primary.CompletionResponse, error) {
	f.gotStability = req
	return f.completion, f.err
}

func (f *fakeTracker) StartWorkout(ctx context.Context) (*primary.WorkoutStatus, error) {
	return f.workout, f.err
}

func (f *fakeTracker) GetWorkoutStatus(ctx context.Context) (*primary.WorkoutStatus, error) {
	return f.workout, f.err
}

func (f *fakeTracker) FinishWorkout(ctx context.Context, req primary.FinishWorkoutRequest) (*primary.CompletionResponse, error) {
	return f.completion, f.err
}

func (f *fakeTracker) StartSocial(ctx context.Context) (*primary.SocialStatus, error) {
	return &primary.SocialStatus{DateKey: "2026-10-19", State: "active"}, f.err
}

func (f *fakeTracker) OpenSocialReflection(ctx context.Context) (*primary.SocialStatus, error) {
	return &primary.SocialStatus{DateKey: "2026-10-19", State: "reflecting"}, f.err
}

func (f *fakeTracker) SubmitSocial(ctx context.Context, req primary.SubmitSocialRequest) (*primary.CompletionResponse, error) {
	f.gotSocial = req
	return f.completion, f.err
}

func (f *fakeTracker) StartObserver(ctx context.Context, req primary.StartObserverRequest) (*primary.ObserverStatus, error) {
	f.gotSkip = req.SkipCountdown
	return &primary.ObserverStatus{DateKey: "2026-10-19", State: "countdown", RemainingSeconds: 300, Display: "05:00"}, f.err
}

func (f *fakeTracker) GetObserverCountdown(ctx context.Context) (*primary.ObserverStatus, error) {
	return &primary.ObserverStatus{DateKey: "2026-10-19", State: "countdown", RemainingSeconds: 42, Display: "00:42"}, f.err
}

func (f *fakeTracker) SubmitObserver(ctx context.Context) (*primary.CompletionResponse, error) {
	return f.completion, f.err
}

type fakeAssets struct {
	cached map[string]*primary.CachedAsset
	err    error
}

func (f *fakeAssets) InstallAssets(ctx context.Context) (*primary.InstallAssetsResponse, error) {
	return &primary.InstallAssetsResponse{Version: "project90-v1"}, nil
}

func (f *fakeAssets) ActivateAssets(ctx context.Context) (*primary.ActivateAssetsResponse, error) {
	return &primary.ActivateAssetsResponse{Version: "project90-v1"}, nil
}

func (f *fakeAssets) GetAssetStatus(ctx context.Context) (*primary.AssetStatus, error) {
	return &primary.AssetStatus{Version: "project90-v1", Expected: 6, Cached: len(f.cached)}, nil
}

func (f *fakeAssets) LookupAsset(ctx context.Context, path string) (*primary.CachedAsset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cached[path], nil
}

func newTestServer(t *testing.T, f *fakeTracker, assets *fakeAssets) http.Handler {
	t.Helper()
	if assets == nil {
		assets = &fakeAssets{}
	}
	srv := NewServer(Services{
		Identity:  f,
		Today:     f,
		Stats:     f,
		Profile:   f,
		History:   f,
		Stability: f,
		Workout:   f,
		Social:    f,
		Observer:  f,
		Assets:    assets,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv.EnableMetrics()
	srv.SetStatic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintf(w, "origin %s", r.URL.Path)
	}))
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

// ─── Tests ──────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	w, resp := do(t, newTestServer(t, &fakeTracker{}, nil), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
}

func TestToday(t *testing.T) {
	f := &fakeTracker{today: &primary.TodayView{
		DateKey: "2026-10-19",
		UserID:  "K48213",
		Controls: []primary.ControlState{
			{Activity: "stability", Locked: true, Score: 7, HasScore: true, WriteStatus: primary.WriteConfirmed},
			{Activity: "workout"},
		},
		StrategicScore: 7,
		HasStrategic:   true,
		Courage:        2,
		Streak:         &primary.Streak{Days: 3},
		Weekly:         &primary.WeeklyRating{Count: 3, Label: "Solid"},
	}}

	w, resp := do(t, newTestServer(t, f, nil), http.MethodGet, "/api/today", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "K48213", resp["user_id"])
	assert.Equal(t, float64(7), resp["strategic_score"])
	assert.Equal(t, false, resp["unavailable"])

	controls := resp["controls"].([]interface{})
	require.Len(t, controls, 2)
	first := controls[0].(map[string]interface{})
	assert.Equal(t, true, first["locked"])
	assert.Equal(t, "confirmed", first["write_status"])
	second := controls[1].(map[string]interface{})
	assert.NotContains(t, second, "score")

	assert.Equal(t, float64(3), resp["streak"].(map[string]interface{})["days"])
	assert.Equal(t, "Solid", resp["weekly"].(map[string]interface{})["label"])
}

func TestStabilitySubmit(t *testing.T) {
	f := &fakeTracker{completion: &primary.CompletionResponse{
		Activity: "stability", DateKey: "2026-10-19", Score: 6, HasScore: true,
		Status: primary.WriteConfirmed, Locked: true, NewBest: true,
		Streak: &primary.Streak{Days: 1},
	}}

	body := `{"situation":"meeting ran late","action":"breathed","intensity":7,"second_order":"calmer evening"}`
	w, resp := do(t, newTestServer(t, f, nil), http.MethodPost, "/api/stability/submit", body)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "meeting ran late", f.gotStability.Situation)
	assert.Equal(t, 7, f.gotStability.Intensity)
	assert.Equal(t, "calmer evening", f.gotStability.SecondOrder)
	assert.Equal(t, float64(6), resp["score"])
	assert.Equal(t, "confirmed", resp["status"])
	assert.Equal(t, true, resp["new_best"])
}

func TestStartWithEmptyBody(t *testing.T) {
	f := &fakeTracker{}
	h := newTestServer(t, f, nil)

	w, resp := do(t, h, http.MethodPost, "/api/stability/start", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, f.gotSkip)
	assert.Equal(t, "inhale", resp["phase"])

	w, resp = do(t, h, http.MethodPost, "/api/observer/start", `{"skip_countdown":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, f.gotSkip)
	assert.Equal(t, "05:00", resp["display"])
}

func TestWorkoutElapsed(t *testing.T) {
	f := &fakeTracker{workout: &primary.WorkoutStatus{
		DateKey:   "2026-10-19",
		State:     "running",
		StartedAt: time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC),
		Elapsed:   125 * time.Second,
		Display:   "02:05",
	}}

	w, resp := do(t, newTestServer(t, f, nil), http.MethodGet, "/api/workout/elapsed", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(125), resp["elapsed_seconds"])
	assert.Equal(t, "02:05", resp["display"])
	assert.Equal(t, "2026-10-19T07:00:00Z", resp["started_at"])
}

func TestHistoryQuery(t *testing.T) {
	f := &fakeTracker{history: []*primary.HistoryEntry{
		{ID: "e1", DateKey: "2026-10-19", Activity: "workout", Score: 6, RecordedAt: "2026-10-19T07:30:00Z"},
	}}
	h := newTestServer(t, f, nil)

	w, resp := do(t, h, http.MethodGet, "/api/history?days=14&activity=workout&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, primary.HistoryFilters{Days: 14, Activity: "workout", Limit: 5}, f.gotHistory)
	assert.Len(t, resp["events"], 1)

	w, _ = do(t, h, http.MethodGet, "/api/history?days=soon", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantType string
	}{
		{
			name:     "validation",
			err:      &session.ValidationError{Field: "outcome", Reason: "is required"},
			wantCode: http.StatusBadRequest,
			wantType: "invalid_request",
		},
		{
			name:     "guard",
			err:      session.GuardResult{Reason: "social already completed for 2026-10-19"}.Error(),
			wantCode: http.StatusConflict,
			wantType: "conflict",
		},
		{
			name:     "unconfirmed write",
			err:      fmt.Errorf("failed to complete social: %w", fmt.Errorf("%w: %w", app.ErrWriteNotConfirmed, errors.New("disk I/O error"))),
			wantCode: http.StatusBadGateway,
			wantType: "write_not_confirmed",
		},
		{
			name:     "other",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantType: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeTracker{err: tt.err}
			w, resp := do(t, newTestServer(t, f, nil), http.MethodPost, "/api/social/submit", `{"difficulty":3,"intensity":5,"outcome":"x"}`)

			assert.Equal(t, tt.wantCode, w.Code)
			errObj := resp["error"].(map[string]interface{})
			assert.Equal(t, tt.wantType, errObj["type"])
			assert.NotEmpty(t, errObj["message"])
		})
	}
}

func TestInvalidJSON(t *testing.T) {
	w, resp := do(t, newTestServer(t, &fakeTracker{}, nil), http.MethodPost, "/api/social/submit", `{"difficulty":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", resp["error"].(map[string]interface{})["type"])
}

func TestCacheMiddleware(t *testing.T) {
	assets := &fakeAssets{cached: map[string]*primary.CachedAsset{
		"/app.js": {Path: "/app.js", ContentType: "text/javascript", Body: []byte("run()")},
	}}
	h := newTestServer(t, &fakeTracker{}, assets)

	w, _ := do(t, h, http.MethodGet, "/app.js", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, "run()", w.Body.String())
	assert.Equal(t, "text/javascript", w.Header().Get("Content-Type"))

	w, _ = do(t, h, http.MethodGet, "/style.css", "")
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, "origin /style.css", w.Body.String())
}

func TestCacheMiddleware_LookupErrorFallsThrough(t *testing.T) {
	h := newTestServer(t, &fakeTracker{}, &fakeAssets{err: errors.New("database is locked")})

	w, _ := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, "origin /", w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, &fakeTracker{}, nil)
	do(t, h, http.MethodGet, "/health", "")

	w, _ := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "identityos_http_requests_total")
}
