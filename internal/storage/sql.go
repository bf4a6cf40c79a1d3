package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// sqlStore implements Store over database/sql. Queries are written with ?
// placeholders and rebound for dialects that number them.
type sqlStore struct {
	db       *sql.DB
	numbered bool
	isUnique func(error) bool
	closeFn  func()
}

func (s *sqlStore) rebind(query string) string {
	if !s.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Close closes the database connection.
func (s *sqlStore) Close() error {
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.closeFn != nil {
		s.closeFn()
	}
	return err
}

func (s *sqlStore) SaveRun(ctx context.Context, run Run) (uuid.UUID, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.PlayedAt.IsZero() {
		run.PlayedAt = time.Now()
	}
	if run.Reason == "" {
		run.Reason = "Unknown"
	}

	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO runs
		 (id, player, score, distance, duration_ms, reason, seed, difficulty, completed, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		run.ID.String(),
		run.Player,
		run.Score,
		run.Distance,
		run.Duration.Milliseconds(),
		run.Reason,
		run.Seed,
		run.Difficulty,
		run.Completed,
		run.PlayedAt.UnixMilli(),
	)
	if err != nil {
		if s.isUnique != nil && s.isUnique(err) {
			return uuid.Nil, fmt.Errorf("%w: %s", ErrDuplicateRun, run.ID)
		}
		return uuid.Nil, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

const runColumns = `id, player, score, distance, duration_ms, reason, seed, difficulty, completed, played_at`

func (s *sqlStore) TopRuns(ctx context.Context, player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	var (
		rows *sql.Rows
		err  error
	)
	if player == "" {
		rows, err = s.db.QueryContext(ctx, s.rebind(
			`SELECT `+runColumns+`
			 FROM runs
			 ORDER BY score DESC, played_at ASC
			 LIMIT ?`), limit)
	} else {
		rows, err = s.db.QueryContext(ctx, s.rebind(
			`SELECT `+runColumns+`
			 FROM runs
			 WHERE player = ?
			 ORDER BY score DESC, played_at ASC
			 LIMIT ?`), player, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		r        Run
		id       string
		duration int64
		played   int64
	)
	if err := rows.Scan(&id, &r.Player, &r.Score, &r.Distance, &duration,
		&r.Reason, &r.Seed, &r.Difficulty, &r.Completed, &played); err != nil {
		return Run{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Run{}, fmt.Errorf("storage: bad run id %q: %w", id, err)
	}
	r.ID = parsed
	r.Duration = time.Duration(duration) * time.Millisecond
	r.PlayedAt = time.UnixMilli(played)
	return r, nil
}

func (s *sqlStore) BestDistance(ctx context.Context, player string) (float64, error) {
	var best sql.NullFloat64
	var err error
	if player == "" {
		err = s.db.QueryRowContext(ctx, `SELECT MAX(distance) FROM runs`).Scan(&best)
	} else {
		err = s.db.QueryRowContext(ctx, s.rebind(`SELECT MAX(distance) FROM runs WHERE player = ?`), player).Scan(&best)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best distance: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return best.Float64, nil
}

func (s *sqlStore) Stats(ctx context.Context) (Stats, error) {
	st := Stats{Reasons: make(map[string]int)}

	var last sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT player), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(distance), 0), MAX(played_at)
		 FROM runs`,
	).Scan(&st.Runs, &st.Players, &st.BestScore, &st.AvgScore, &st.TotalDistance, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if last.Valid {
		st.LastPlayed = time.UnixMilli(last.Int64)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT reason, COUNT(*) FROM runs GROUP BY reason`)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get end reasons: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return Stats{}, fmt.Errorf("storage: cannot scan reason row: %w", err)
		}
		st.Reasons[reason] = n
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return st, nil
}
