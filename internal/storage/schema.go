// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for gyms, profiles, workouts, user_stats and achievements.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS gyms (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		goal TEXT NOT NULL,
		level TEXT NOT NULL,
		time_available INTEGER NOT NULL,
		weekly_frequency INTEGER NOT NULL,
		body_weight_kg REAL NOT NULL,
		gym_id TEXT,
		premium INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (gym_id) REFERENCES gyms(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date DATETIME NOT NULL,
		plan TEXT,
		exercises TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		points INTEGER NOT NULL DEFAULT 0,
		calories INTEGER NOT NULL DEFAULT 0,
		completed INTEGER NOT NULL DEFAULT 0,
		start_time DATETIME,
		end_time DATETIME,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES profiles(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS user_stats (
		user_id TEXT PRIMARY KEY,
		total_workouts INTEGER NOT NULL DEFAULT 0,
		total_points INTEGER NOT NULL DEFAULT 0,
		current_streak INTEGER NOT NULL DEFAULT 0,
		best_streak INTEGER NOT NULL DEFAULT 0,
		weekly_points INTEGER NOT NULL DEFAULT 0,
		monthly_points INTEGER NOT NULL DEFAULT 0,
		last_workout_date DATETIME,
		weekly_workouts_count INTEGER NOT NULL DEFAULT 0,
		week_start_date DATETIME,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES profiles(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS achievements (
		user_id TEXT NOT NULL,
		achievement_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		icon TEXT,
		earned INTEGER NOT NULL DEFAULT 0,
		earned_at DATETIME,
		PRIMARY KEY (user_id, achievement_id),
		FOREIGN KEY (user_id) REFERENCES profiles(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_profiles_gym ON profiles(gym_id);
	CREATE INDEX IF NOT EXISTS idx_workouts_user_date ON workouts(user_id, date DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
