package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

func okMark() string      { return color.New(color.FgGreen).Sprint("✓") }
func pendingMark() string { return color.New(color.FgYellow).Sprint("…") }
func failedMark() string  { return color.New(color.FgRed).Sprint("✗") }

const openMark = "·"

// TrackerAdapter is a thin adapter that renders the dashboard, statistics and history.
type TrackerAdapter struct {
	identity primary.IdentityService
	today    primary.TodayService
	stats    primary.StatsService
	profile  primary.ProfileService
	history  primary.HistoryService
	out      io.Writer
}

// NewTrackerAdapter creates a new TrackerAdapter with the given services.
func NewTrackerAdapter(
	identity primary.IdentityService,
	today primary.TodayService,
	stats primary.StatsService,
	profile primary.ProfileService,
	history primary.HistoryService,
	out io.Writer,
) *TrackerAdapter {
	return &TrackerAdapter{
		identity: identity,
		today:    today,
		stats:    stats,
		profile:  profile,
		history:  history,
		out:      out,
	}
}

// WhoAmI prints the anonymous user token.
func (a *TrackerAdapter) WhoAmI(ctx context.Context) (string, error) {
	id, err := a.identity.GetOrCreateUserID(ctx)
	if err != nil {
		return "", err
	}
	fmt.Fprintln(a.out, id)
	return id, nil
}

// Today prints today's controls and the rolling statistics.
func (a *TrackerAdapter) Today(ctx context.Context) (*primary.TodayView, error) {
	view, err := a.today.GetToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load today: %w", err)
	}

	fmt.Fprintf(a.out, "\n%s  (user %s)\n", view.DateKey, view.UserID)
	if view.Unavailable {
		fmt.Fprintln(a.out, color.New(color.FgYellow).Sprint("! Today's record could not be read; controls shown unlocked."))
	}
	fmt.Fprintln(a.out)

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	for _, c := range view.Controls {
		score := ""
		if c.HasScore {
			score = fmt.Sprintf("score %d", c.Score)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", controlMark(c), c.Activity, score)
	}
	w.Flush()

	fmt.Fprintln(a.out)
	if view.HasStrategic {
		fmt.Fprintf(a.out, "Strategic score: %d\n", view.StrategicScore)
	}
	fmt.Fprintf(a.out, "Courage:         %d\n", view.Courage)
	if view.Streak != nil {
		fmt.Fprintf(a.out, "Streak:          %s\n", formatStreak(view.Streak))
	}
	if view.Weekly != nil {
		fmt.Fprintf(a.out, "This week:       %s\n", formatWeekly(view.Weekly))
	}
	fmt.Fprintln(a.out)

	return view, nil
}

// Stats prints the streak and weekly workout rating.
func (a *TrackerAdapter) Stats(ctx context.Context) (*primary.Stats, error) {
	stats, err := a.stats.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	fmt.Fprintf(a.out, "As of:     %s\n", stats.AsOf)
	fmt.Fprintf(a.out, "Streak:    %s\n", formatStreak(stats.Streak))
	fmt.Fprintf(a.out, "This week: %s\n", formatWeekly(stats.Weekly))
	return stats, nil
}

// Profile prints local profile state.
func (a *TrackerAdapter) Profile(ctx context.Context) (*primary.Profile, error) {
	p, err := a.profile.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	fmt.Fprintf(a.out, "User:    %s\n", p.UserID)
	fmt.Fprintf(a.out, "Courage: %d\n", p.Courage)
	if p.WorkoutRunning {
		fmt.Fprintf(a.out, "Workout: running since %s\n", p.WorkoutStartedAt.Format("15:04:05"))
	}

	if len(p.PersonalBests) == 0 {
		fmt.Fprintln(a.out, "Personal bests: none yet")
		return p, nil
	}

	fmt.Fprintln(a.out, "Personal bests:")
	names := make([]string, 0, len(p.PersonalBests))
	for name := range p.PersonalBests {
		names = append(names, name)
	}
	sort.Strings(names)
	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%d\n", name, p.PersonalBests[name])
	}
	w.Flush()
	return p, nil
}

// History lists confirmed completions.
func (a *TrackerAdapter) History(ctx context.Context, filters primary.HistoryFilters) ([]*primary.HistoryEntry, error) {
	entries, err := a.history.ListHistory(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No completions recorded in this window.")
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DATE\tACTIVITY\tSCORE\tRECORDED")
	fmt.Fprintln(w, "----\t--------\t-----\t--------")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.DateKey, e.Activity, e.Score, e.RecordedAt)
	}
	w.Flush()
	return entries, nil
}

func controlMark(c primary.ControlState) string {
	switch {
	case c.WriteStatus == primary.WritePending:
		return pendingMark()
	case c.WriteStatus == primary.WriteFailed && !c.Locked:
		return failedMark()
	case c.Locked:
		return okMark()
	default:
		return openMark
	}
}

func formatStreak(s *primary.Streak) string {
	if s == nil {
		return "-"
	}
	out := fmt.Sprintf("%d day", s.Days)
	if s.Days != 1 {
		out += "s"
	}
	if s.Capped {
		out += "+"
	}
	if s.Indeterminate {
		out += " " + color.New(color.FgYellow).Sprint("(some days could not be read)")
	}
	return out
}

func formatWeekly(r *primary.WeeklyRating) string {
	if r == nil {
		return "-"
	}
	out := fmt.Sprintf("%s (%d workout", r.Label, r.Count)
	if r.Count != 1 {
		out += "s"
	}
	out += ")"
	if r.Indeterminate {
		out += " " + color.New(color.FgYellow).Sprint("(some days could not be read)")
	}
	return out
}
