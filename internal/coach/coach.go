// ABOUTME: Coach service tying profiles, generation, scoring, streaks and achievements together.
// ABOUTME: All reads and writes go through a storage.Repository; computation lives in the core packages.
package coach

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/achievements"
	"github.com/harperreed/fitrank/internal/generator"
	"github.com/harperreed/fitrank/internal/leaderboard"
	"github.com/harperreed/fitrank/internal/models"
	"github.com/harperreed/fitrank/internal/planner"
	"github.com/harperreed/fitrank/internal/progress"
	"github.com/harperreed/fitrank/internal/scoring"
	"github.com/harperreed/fitrank/internal/storage"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNoProfile         = errors.New("no profile")
	ErrNoGym             = errors.New("profile has no gym")
	ErrWeeklyLimit       = errors.New("weekly workout limit reached")
	ErrIncompleteWorkout = errors.New("workout has unchecked exercises")
	ErrWorkoutFinished   = errors.New("workout already finished")
	ErrExerciseNotFound  = errors.New("exercise not found in workout")
)

// Coach is the application service behind the CLI and the MCP server.
type Coach struct {
	repo    storage.Repository
	tracker *progress.Tracker
	now     func() time.Time
	loc     *time.Location
	logger  *log.Logger

	genMu sync.Mutex
	gen   *generator.Generator

	loads singleflight.Group
}

// Option configures a Coach.
type Option func(*Coach)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Coach) { c.now = now }
}

// WithLocation sets the location whose midnights define calendar days.
func WithLocation(loc *time.Location) Option {
	return func(c *Coach) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithLogger sets the logger shared with the progress tracker.
func WithLogger(l *log.Logger) Option {
	return func(c *Coach) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithGenerator replaces the workout generator, typically with a seeded one.
func WithGenerator(g *generator.Generator) Option {
	return func(c *Coach) {
		if g != nil {
			c.gen = g
		}
	}
}

// New creates a Coach over repo.
func New(repo storage.Repository, opts ...Option) *Coach {
	c := &Coach{
		repo:   repo,
		now:    time.Now,
		loc:    time.Local,
		logger: log.Default(),
		gen:    generator.NewDefault(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tracker = progress.NewTracker(
		progress.WithClock(c.now),
		progress.WithLocation(c.loc),
		progress.WithLogger(c.logger),
	)
	return c
}

// Repository returns the underlying store.
func (c *Coach) Repository() storage.Repository {
	return c.repo
}

// Tracker returns the progress tracker used for stats updates.
func (c *Coach) Tracker() *progress.Tracker {
	return c.tracker
}

// CreateProfile validates and stores a new profile and seeds its achievements.
func (c *Coach) CreateProfile(ctx context.Context, p *models.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := c.checkGym(ctx, p.GymID); err != nil {
		return err
	}

	now := c.now()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if err := c.repo.SaveProfile(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if err := c.repo.SaveAchievements(ctx, achievements.Seed(p.ID)); err != nil {
		return fmt.Errorf("seed achievements: %w", err)
	}
	c.logger.Debug("profile created", "user", p.ID, "goal", p.Goal, "level", p.Level)
	return nil
}

// UpdateProfile validates and stores changes to an existing profile.
func (c *Coach) UpdateProfile(ctx context.Context, p *models.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := c.LoadProfile(ctx, p.ID.String()); err != nil {
		return err
	}
	if err := c.checkGym(ctx, p.GymID); err != nil {
		return err
	}

	p.UpdatedAt = c.now()
	if err := c.repo.SaveProfile(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// LoadProfile fetches a profile by ID or prefix. Concurrent loads of the same
// ID share one repository call; each caller gets its own copy.
func (c *Coach) LoadProfile(ctx context.Context, idOrPrefix string) (*models.UserProfile, error) {
	if idOrPrefix == "" {
		return nil, ErrNoProfile
	}

	v, err, _ := c.loads.Do(idOrPrefix, func() (any, error) {
		return c.repo.GetProfile(ctx, idOrPrefix)
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNoProfile, idOrPrefix)
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	p := *v.(*models.UserProfile)
	return &p, nil
}

func (c *Coach) checkGym(ctx context.Context, gymID *uuid.UUID) error {
	if gymID == nil {
		return nil
	}
	if _, err := c.repo.GetGym(ctx, gymID.String()); err != nil {
		return fmt.Errorf("get gym: %w", err)
	}
	return nil
}

// Session is a freshly generated, in-progress workout. The exercises come
// from the level and goal pool; Plan and SuggestedDay are the weekly split
// the profile's frequency maps to, offered as guidance alongside them.
type Session struct {
	Workout      *models.Workout    `json:"workout"`
	Plan         models.WorkoutPlan `json:"plan"`
	SuggestedDay models.PlanDay     `json:"suggested_day"`
	Allowance    progress.Allowance `json:"allowance"`
}

// Allowance reports how many more workouts the user may start this week.
// Unfinished sessions started this week count against the free limit.
func (c *Coach) Allowance(ctx context.Context, p *models.UserProfile) (progress.Allowance, error) {
	stats, err := c.repo.GetStats(ctx, p.ID)
	if err != nil {
		return progress.Allowance{}, fmt.Errorf("get stats: %w", err)
	}
	rolled := c.tracker.RollWeek(*stats)

	open, err := c.openThisWeek(ctx, p.ID)
	if err != nil {
		return progress.Allowance{}, err
	}
	rolled.WeeklyWorkoutsCount += open
	return c.tracker.Allowance(rolled, p.Premium), nil
}

func (c *Coach) openThisWeek(ctx context.Context, userID uuid.UUID) (int, error) {
	workouts, err := c.repo.ListWorkouts(ctx, userID, 0)
	if err != nil {
		return 0, fmt.Errorf("list workouts: %w", err)
	}
	weekStart := progress.WeekStart(c.now(), c.loc)
	n := 0
	for _, w := range workouts {
		if !w.Completed && !w.Date.Before(weekStart) {
			n++
		}
	}
	return n, nil
}

// StartWorkout generates exercises for the user and saves an in-progress
// workout. Free accounts over the weekly limit get ErrWeeklyLimit.
func (c *Coach) StartWorkout(ctx context.Context, userID string) (*Session, error) {
	p, err := c.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := c.repo.GetStats(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	rolled := c.tracker.RollWeek(*stats)

	allowance, err := c.Allowance(ctx, p)
	if err != nil {
		return nil, err
	}
	if !allowance.Allowed {
		return nil, fmt.Errorf("%w: %d of %d used", ErrWeeklyLimit, progress.FreeWeeklyLimit, progress.FreeWeeklyLimit)
	}

	plan := planner.PlanFor(p.WeeklyFrequency, p.Goal)
	day, _ := planner.DayFor(plan, rolled.WeeklyWorkoutsCount)

	c.genMu.Lock()
	exercises := c.gen.Generate(*p)
	c.genMu.Unlock()

	w := models.NewWorkout(p.ID, exercises).WithPlan(plan.Type).WithStartTime(c.now())
	w.CreatedAt = *w.StartTime
	if err := c.repo.SaveWorkout(ctx, w); err != nil {
		return nil, fmt.Errorf("save workout: %w", err)
	}

	if allowance.Remaining > 0 {
		allowance.Remaining--
		allowance.Allowed = allowance.Remaining > 0
	}
	c.logger.Debug("workout started", "user", p.ID, "workout", w.ID, "exercises", len(exercises))
	return &Session{Workout: w, Plan: plan, SuggestedDay: day, Allowance: allowance}, nil
}

// ToggleExercise flips the completed flag of one exercise. ref is a 1-based
// position, an instance ID prefix or a catalog exercise ID.
func (c *Coach) ToggleExercise(ctx context.Context, workoutID, ref string) (*models.Workout, error) {
	w, err := c.repo.GetWorkout(ctx, workoutID)
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	if w.Completed {
		return nil, ErrWorkoutFinished
	}

	i, err := findExercise(w, ref)
	if err != nil {
		return nil, err
	}
	w.Exercises[i].Completed = !w.Exercises[i].Completed

	if err := c.repo.SaveWorkout(ctx, w); err != nil {
		return nil, fmt.Errorf("save workout: %w", err)
	}
	return w, nil
}

func findExercise(w *models.Workout, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(w.Exercises) {
			return n - 1, nil
		}
		return 0, fmt.Errorf("%w: position %d of %d", ErrExerciseNotFound, n, len(w.Exercises))
	}

	match := -1
	for i, e := range w.Exercises {
		if e.ID == ref || (ref != "" && strings.HasPrefix(e.InstanceID.String(), ref)) {
			if match >= 0 {
				return 0, fmt.Errorf("%w %s: matches multiple exercises", storage.ErrAmbiguous, ref)
			}
			match = i
		}
	}
	if match < 0 {
		return 0, fmt.Errorf("%w: %s", ErrExerciseNotFound, ref)
	}
	return match, nil
}

// FinishOptions adjusts how a workout is closed.
type FinishOptions struct {
	// DurationMinutes replaces the measured duration when positive.
	DurationMinutes int
}

// Completion is the outcome of finishing a workout.
type Completion struct {
	Workout        *models.Workout       `json:"workout"`
	Stats          *models.UserStats     `json:"stats"`
	Unlocked       []*models.Achievement `json:"unlocked"`
	PreviousStreak int                   `json:"previous_streak"`
}

// FinishWorkout scores a fully checked workout, folds it into the user's
// stats and unlocks any achievements it earns.
func (c *Coach) FinishWorkout(ctx context.Context, workoutID string, opts FinishOptions) (*Completion, error) {
	w, err := c.repo.GetWorkout(ctx, workoutID)
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	if w.Completed {
		return nil, fmt.Errorf("%w: %s", ErrWorkoutFinished, w.ID.String()[:8])
	}
	if !w.AllCompleted() {
		return nil, fmt.Errorf("%w: %d of %d done", ErrIncompleteWorkout, w.CompletedCount(), len(w.Exercises))
	}

	p, err := c.LoadProfile(ctx, w.UserID.String())
	if err != nil {
		return nil, err
	}
	prev, err := c.repo.GetStats(ctx, w.UserID)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	end := c.now()
	start := w.Date
	if w.StartTime != nil {
		start = *w.StartTime
	}
	duration := max(int(end.Sub(start).Minutes()), 0)
	if opts.DurationMinutes > 0 {
		duration = opts.DurationMinutes
	}

	w.DurationMinutes = duration
	w.Points = scoring.WorkoutPoints(duration, len(w.Exercises), prev.CurrentStreak, p.Level)
	w.Calories = scoring.EstimateCalories(duration, p.Level, p.BodyWeightKg)
	w.Completed = true
	w.EndTime = &end

	next := c.tracker.Apply(*prev, *w)

	catalog, err := c.catalog(ctx, w.UserID)
	if err != nil {
		return nil, err
	}
	unlocked := achievements.Evaluate(next, catalog, end)

	if err := c.repo.SaveWorkout(ctx, w); err != nil {
		return nil, fmt.Errorf("save workout: %w", err)
	}
	if err := c.repo.SaveStats(ctx, &next); err != nil {
		return nil, fmt.Errorf("save stats: %w", err)
	}
	if err := c.repo.SaveAchievements(ctx, unlocked); err != nil {
		return nil, fmt.Errorf("save achievements: %w", err)
	}

	c.logger.Info("workout finished",
		"user", w.UserID, "workout", w.ID, "points", w.Points, "streak", next.CurrentStreak)
	return &Completion{
		Workout:        w,
		Stats:          &next,
		Unlocked:       unlocked,
		PreviousStreak: prev.CurrentStreak,
	}, nil
}

// Stats returns the user's stats with the weekly counters rolled forward.
func (c *Coach) Stats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	s, err := c.repo.GetStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	rolled := c.tracker.RollWeek(*s)
	return &rolled, nil
}

// Achievements returns the user's full catalog in display order.
func (c *Coach) Achievements(ctx context.Context, userID uuid.UUID) ([]*models.Achievement, error) {
	return c.catalog(ctx, userID)
}

// catalog overlays stored entries on a fresh seed so users created before
// an achievement was added still see it.
func (c *Coach) catalog(ctx context.Context, userID uuid.UUID) ([]*models.Achievement, error) {
	stored, err := c.repo.ListAchievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	byID := make(map[string]*models.Achievement, len(stored))
	for _, a := range stored {
		byID[a.ID] = a
	}

	out := achievements.Seed(userID)
	for i, a := range out {
		if s, ok := byID[a.ID]; ok {
			out[i] = s
		}
	}
	return out, nil
}

// Standing is a gym leaderboard as seen by one user.
type Standing struct {
	Gym      *models.Gym           `json:"gym"`
	Entries  []models.RankingEntry `json:"entries"`
	Rank     int                   `json:"rank"`
	Unlocked []*models.Achievement `json:"unlocked,omitempty"`
}

// Leaderboard ranks the members of the user's gym and unlocks the ranking
// achievements for whoever holds the top places with monthly points.
func (c *Coach) Leaderboard(ctx context.Context, userID uuid.UUID) (*Standing, error) {
	p, err := c.LoadProfile(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if p.GymID == nil {
		return nil, ErrNoGym
	}
	gym, err := c.repo.GetGym(ctx, p.GymID.String())
	if err != nil {
		return nil, fmt.Errorf("get gym: %w", err)
	}

	members, err := c.repo.ListProfiles(ctx, p.GymID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	entries := make([]leaderboard.Entry, 0, len(members))
	premium := make(map[uuid.UUID]bool, len(members))
	for _, m := range members {
		s, err := c.Stats(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		premium[m.ID] = m.Premium
		entries = append(entries, leaderboard.Entry{
			UserID:        m.ID,
			Name:          m.Name,
			TotalPoints:   s.TotalPoints,
			WeeklyPoints:  s.WeeklyPoints,
			MonthlyPoints: s.MonthlyPoints,
		})
	}

	ranking := leaderboard.Rank(entries, userID)
	standing := &Standing{Gym: gym, Entries: ranking, Rank: leaderboard.RankOf(ranking, userID)}

	for _, e := range ranking {
		if e.Rank > 3 {
			break
		}
		// A place earned without scoring this month unlocks nothing.
		if e.MonthlyPoints <= 0 {
			continue
		}
		unlocked, err := c.applySignals(ctx, e.UserID, achievements.Signals{Rank: e.Rank, Premium: premium[e.UserID]})
		if err != nil {
			return nil, err
		}
		if e.UserID == userID {
			standing.Unlocked = unlocked
		}
	}
	return standing, nil
}

// SetPremium turns the premium flag on or off. Turning it on unlocks the
// premium achievement; turning it off never revokes it.
func (c *Coach) SetPremium(ctx context.Context, userID uuid.UUID, on bool) ([]*models.Achievement, error) {
	p, err := c.LoadProfile(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	p.Premium = on
	p.UpdatedAt = c.now()
	if err := c.repo.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	if !on {
		return []*models.Achievement{}, nil
	}
	return c.applySignals(ctx, userID, achievements.Signals{Premium: true})
}

func (c *Coach) applySignals(ctx context.Context, userID uuid.UUID, signals achievements.Signals) ([]*models.Achievement, error) {
	catalog, err := c.catalog(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked := achievements.ApplySignals(signals, catalog, c.now())
	if err := c.repo.SaveAchievements(ctx, unlocked); err != nil {
		return nil, fmt.Errorf("save achievements: %w", err)
	}
	for _, a := range unlocked {
		c.logger.Info("achievement unlocked", "user", userID, "achievement", a.ID)
	}
	return unlocked, nil
}

// RecentWorkouts lists the user's latest workouts, newest first.
func (c *Coach) RecentWorkouts(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Workout, error) {
	ws, err := c.repo.ListWorkouts(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return ws, nil
}
