// ABOUTME: Builds a randomized workout from the catalog pool for a user profile.
// ABOUTME: Randomness comes from an injected source so tests can fix the seed.
package generator

import (
	"math/rand/v2"

	"github.com/harperreed/fitrank/internal/catalog"
	"github.com/harperreed/fitrank/internal/models"
)

// Session length thresholds in minutes and the exercise counts they allow.
const (
	LongSessionMinutes   = 60
	MediumSessionMinutes = 45

	LongSessionExercises   = 6
	MediumSessionExercises = 5
	ShortSessionExercises  = 4
)

// Generator produces workouts. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator drawing from src.
func New(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewDefault creates a generator seeded from the runtime's random source.
func NewDefault() *Generator {
	return New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// ExerciseCount returns how many exercises fit in a session of the given length.
func ExerciseCount(timeAvailable int) int {
	switch {
	case timeAvailable >= LongSessionMinutes:
		return LongSessionExercises
	case timeAvailable >= MediumSessionMinutes:
		return MediumSessionExercises
	default:
		return ShortSessionExercises
	}
}

// Generate picks exercises for the profile's level and goal.
//
// The pool for the pair is shuffled and truncated to ExerciseCount. Pairs
// without a pool fall back to catalog.DefaultPool. The result never repeats
// a pool entry and is empty, not nil, when the pool is empty.
func (g *Generator) Generate(profile models.UserProfile) []models.GeneratedExercise {
	pool, ok := catalog.Pool(profile.Level, profile.Goal)
	if !ok {
		pool = catalog.DefaultPool()
	}
	return g.pick(pool, ExerciseCount(profile.TimeAvailable))
}

// pick shuffles pool in place and stamps the first n entries.
func (g *Generator) pick(pool []models.Exercise, n int) []models.GeneratedExercise {
	g.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if n > len(pool) {
		n = len(pool)
	}
	if n < 0 {
		n = 0
	}

	out := make([]models.GeneratedExercise, 0, n)
	for _, e := range pool[:n] {
		out = append(out, models.NewGeneratedExercise(e))
	}
	return out
}
