// ABOUTME: Folds completed workouts into UserStats: totals, weekly rollover, streaks.
// ABOUTME: Calendar math runs in one configured location with weeks starting Sunday.
package progress

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitrank/internal/models"
)

// FreeWeeklyLimit is how many workouts a free account may generate per week.
const FreeWeeklyLimit = 2

// Unlimited is the Remaining value reported for premium accounts.
const Unlimited = -1

// Tracker applies completed workouts to stats snapshots.
// It holds configuration only and is safe for concurrent use.
type Tracker struct {
	now    func() time.Time
	loc    *time.Location
	logger *log.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source used for the weekly epoch.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLocation sets the location whose midnights define calendar days.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// WithLogger sets the logger used for anomaly reports.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTracker creates a tracker using local time and the default logger.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		now:    time.Now,
		loc:    time.Local,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Location returns the location used for calendar days.
func (t *Tracker) Location() *time.Location {
	return t.loc
}

// WeekStart returns Sunday 00:00 of the week containing ts, in loc.
func WeekStart(ts time.Time, loc *time.Location) time.Time {
	ts = ts.In(loc)
	y, m, d := ts.Date()
	return time.Date(y, m, d-int(ts.Weekday()), 0, 0, 0, 0, loc)
}

// DayDiff returns the number of calendar days from a to b in loc.
// It ignores time of day and is unaffected by DST transitions.
func DayDiff(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// RollWeek resets the weekly counters when the stored week start is missing
// or before the current week. Any number of missed weeks collapses into a
// single reset.
func (t *Tracker) RollWeek(stats models.UserStats) models.UserStats {
	current := WeekStart(t.now(), t.loc)
	if stats.WeekStartDate != nil && !stats.WeekStartDate.Before(current) {
		return stats
	}
	stats.WeeklyWorkoutsCount = 0
	stats.WeeklyPoints = 0
	stats.WeekStartDate = &current
	return stats
}

// Apply folds a completed workout into the previous snapshot and returns the
// new one. prev is not modified.
func (t *Tracker) Apply(prev models.UserStats, w models.Workout) models.UserStats {
	next := t.RollWeek(prev)

	points := max(w.Points, 0)
	next.TotalWorkouts++
	next.TotalPoints += points
	next.WeeklyPoints += points
	next.MonthlyPoints += points
	next.WeeklyWorkoutsCount++

	date := w.Date
	next.LastWorkoutDate = &date

	if prev.LastWorkoutDate == nil {
		next.CurrentStreak = 1
		next.BestStreak = max(next.BestStreak, 1)
	} else {
		diff := DayDiff(*prev.LastWorkoutDate, date, t.loc)
		switch {
		case diff == 1:
			next.CurrentStreak++
			next.BestStreak = max(next.BestStreak, next.CurrentStreak)
		case diff == 0:
			if next.CurrentStreak < 1 {
				next.CurrentStreak = 1
				next.BestStreak = max(next.BestStreak, 1)
			}
		case diff > 1:
			next.CurrentStreak = 1
		default:
			t.logger.Warn("workout dated before last workout; streak left unchanged",
				"user", prev.UserID,
				"workout", w.ID,
				"last_workout", prev.LastWorkoutDate.Format(time.RFC3339),
				"workout_date", date.Format(time.RFC3339),
				"days", diff)
			last := *prev.LastWorkoutDate
			next.LastWorkoutDate = &last
		}
	}

	if next.CurrentStreak > next.BestStreak {
		t.logger.Warn("current streak exceeded best streak; raising best",
			"user", prev.UserID, "current", next.CurrentStreak, "best", next.BestStreak)
		next.BestStreak = next.CurrentStreak
	}

	next.UpdatedAt = t.now()
	return next
}

// Allowance reports whether a user may generate another workout this week.
type Allowance struct {
	Allowed   bool `json:"allowed"`
	Remaining int  `json:"remaining"`
}

// Allowance applies the free-tier weekly limit. Premium accounts are unlimited.
func (t *Tracker) Allowance(stats models.UserStats, premium bool) Allowance {
	if premium {
		return Allowance{Allowed: true, Remaining: Unlimited}
	}
	fresh := t.RollWeek(stats)
	remaining := max(FreeWeeklyLimit-fresh.WeeklyWorkoutsCount, 0)
	return Allowance{Allowed: remaining > 0, Remaining: remaining}
}
