// Package storage persists finished runs for the scoreboard. Local play
// uses SQLite through the pure-Go modernc.org/sqlite driver; a shared
// leaderboard can use Postgres through pgx.
package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrDuplicateRun is returned when a run ID is saved twice.
var ErrDuplicateRun = errors.New("storage: run already saved")

// Run is one finished run.
type Run struct {
	ID         uuid.UUID
	Player     string
	Score      int
	Distance   float64
	Duration   time.Duration
	Reason     string
	Seed       int64
	Difficulty string
	Completed  bool
	PlayedAt   time.Time
}

// Stats contains aggregated statistics over saved runs.
type Stats struct {
	Runs          int
	Players       int
	BestScore     int
	AvgScore      float64
	TotalDistance float64
	LastPlayed    time.Time
	Reasons       map[string]int // end reason -> count
}

// Store is the run persistence interface.
type Store interface {
	// SaveRun records a run. A zero ID is replaced with a new one and a zero
	// PlayedAt with the current time.
	SaveRun(ctx context.Context, run Run) (uuid.UUID, error)
	// TopRuns returns the best runs by score, all players when player is "".
	TopRuns(ctx context.Context, player string, limit int) ([]Run, error)
	// BestDistance returns the longest distance, 0 without runs.
	BestDistance(ctx context.Context, player string) (float64, error)
	Stats(ctx context.Context) (Stats, error)
	Close() error
}

// Open connects to the store named by dsn: a postgres:// or postgresql://
// URL selects Postgres, anything else is a SQLite file path (~ expands to
// the home directory). Migrations run before Open returns.
func Open(ctx context.Context, dsn string) (Store, error) {
	if IsPostgres(dsn) {
		return openPostgres(ctx, dsn)
	}
	return openSQLite(ctx, dsn)
}

// IsPostgres reports whether dsn names a Postgres database.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
