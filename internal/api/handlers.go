package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

// ─── Dashboard ──────────────────────────────────────────────────────────────

// GET /api/today
func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Today.GetToday(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTodayJSON(view))
}

// GET /api/whoami
func (s *Server) handleWhoami(w http.ResponseWriter, r *http.Request) {
	id, err := s.svc.Identity.GetOrCreateUserID(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"user_id": id})
}

// GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsJSON{
		AsOf:   stats.AsOf,
		Streak: toStreakJSON(stats.Streak),
		Weekly: toWeeklyJSON(stats.Weekly),
	})
}

// GET /api/profile
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profile.GetProfile(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := profileJSON{
		UserID:         p.UserID,
		Courage:        p.Courage,
		PersonalBests:  p.PersonalBests,
		WorkoutRunning: p.WorkoutRunning,
	}
	if out.PersonalBests == nil {
		out.PersonalBests = map[string]int{}
	}
	if p.WorkoutRunning {
		out.WorkoutStartedAt = p.WorkoutStartedAt.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/history?days=7&activity=workout&limit=20
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := primary.HistoryFilters{Activity: q.Get("activity")}
	for name, dst := range map[string]*int{"days": &filters.Days, "limit": &filters.Limit} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", name+" must be a non-negative integer")
			return
		}
		*dst = n
	}

	entries, err := s.svc.History.ListHistory(r.Context(), filters)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]historyJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyJSON{
			ID:         e.ID,
			DateKey:    e.DateKey,
			Activity:   e.Activity,
			Score:      e.Score,
			RecordedAt: e.RecordedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": out})
}

// ─── Stability ──────────────────────────────────────────────────────────────

// POST /api/stability/start {"skip_breathing": true}
func (s *Server) handleStabilityStart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SkipBreathing bool `json:"skip_breathing"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON: "+err.Error())
		return
	}
	st, err := s.svc.Stability.StartStability(r.Context(), primary.StartStabilityRequest{SkipBreathing: body.SkipBreathing})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStabilityJSON(st))
}

// GET /api/stability/phase
func (s *Server) handleStabilityPhase(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Stability.GetStabilityPhase(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStabilityJSON(st))
}

// POST /api/stability/submit
func (s *Server) handleStabilitySubmit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Situation   string `json:"situation"`
		Trigger     string `json:"trigger"`
		Reframe     string `json:"reframe"`
		Intensity   int    `json:"intensity"`
		Action      string `json:"action"`
		SecondOrder string `json:"second_order"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON: "+err.Error())
		return
	}
	resp, err := s.svc.Stability.SubmitStability(r.Context(), primary.SubmitStabilityRequest{
		Situation:   body.Situation,
		Trigger:     body.Trigger,
		Reframe:     body.Reframe,
		Intensity:   body.Intensity,
		Action:      body.Action,
		SecondOrder: body.SecondOrder,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompletionJSON(resp))
}

func toStabilityJSON(st *primary.StabilityStatus) stabilityJSON {
	return stabilityJSON{
		DateKey:          st.DateKey,
		State:            st.State,
		Phase:            st.Phase,
		Cycle:            st.Cycle,
		Prompt:           st.Prompt,
		RemainingSeconds: st.RemainingSeconds,
	}
}

// ─── Workout ────────────────────────────────────────────────────────────────

// POST /api/workout/start
func (s *Server) handleWorkoutStart(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Workout.StartWorkout(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkoutJSON(st))
}

// GET /api/workout/elapsed
func (s *Server) handleWorkoutElapsed(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Workout.GetWorkoutStatus(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkoutJSON(st))
}

// POST /api/workout/finish {"type": "strength"}
func (s *Server) handleWorkoutFinish(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type string `json:"type"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON: "+err.Error())
		return
	}
	resp, err := s.svc.Workout.FinishWorkout(r.Context(), primary.FinishWorkoutRequest{Type: body.Type})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompletionJSON(resp))
}

// ─── Social ─────────────────────────────────────────────────────────────────

// POST /api/social/start
func (s *Server) handleSocialStart(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Social.StartSocial(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, socialJSON{DateKey: st.DateKey, State: st.State})
}

// POST /api/social/reflect
func (s *Server) handleSocialReflect(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Social.OpenSocialReflection(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, socialJSON{DateKey: st.DateKey, State: st.State})
}

// POST /api/social/submit
func (s *Server) handleSocialSubmit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Difficulty int    `json:"difficulty"`
		Intensity  int    `json:"intensity"`
		Outcome    string `json:"outcome"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON: "+err.Error())
		return
	}
	resp, err := s.svc.Social.SubmitSocial(r.Context(), primary.SubmitSocialRequest{
		Difficulty: body.Difficulty,
		Intensity:  body.Intensity,
		Outcome:    body.Outcome,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompletionJSON(resp))
}

// ─── Observer ───────────────────────────────────────────────────────────────

// POST /api/observer/start {"skip_countdown": true}
func (s *Server) handleObserverStart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SkipCountdown bool `json:"skip_countdown"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON: "+err.Error())
		return
	}
	st, err := s.svc.Observer.StartObserver(r.Context(), primary.StartObserverRequest{SkipCountdown: body.SkipCountdown})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toObserverJSON(st))
}

// GET /api/observer/countdown
func (s *Server) handleObserverCountdown(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Observer.GetObserverCountdown(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toObserverJSON(st))
}

// POST /api/observer/submit
func (s *Server) handleObserverSubmit(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.Observer.SubmitObserver(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompletionJSON(resp))
}

func toObserverJSON(st *primary.ObserverStatus) observerJSON {
	return observerJSON{
		DateKey:          st.DateKey,
		State:            st.State,
		RemainingSeconds: st.RemainingSeconds,
		Display:          st.Display,
	}
}

// ─── Assets ─────────────────────────────────────────────────────────────────

// GET /api/assets
func (s *Server) handleAssetStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Assets.GetAssetStatus(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	versions := st.Versions
	if versions == nil {
		versions = []string{}
	}
	writeJSON(w, http.StatusOK, assetStatusJSON{
		Version:  st.Version,
		Expected: st.Expected,
		Cached:   st.Cached,
		Versions: versions,
	})
}
