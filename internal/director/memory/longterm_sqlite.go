package memory

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	apperrors "github.com/eris/director/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS player_summary (
	player_id TEXT PRIMARY KEY,
	aura INTEGER NOT NULL DEFAULT 0,
	deaths INTEGER NOT NULL DEFAULT 0,
	dragons_killed INTEGER NOT NULL DEFAULT 0,
	hours_played REAL NOT NULL DEFAULT 0,
	nemesis_cause TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS recent_runs (
	run_id TEXT PRIMARY KEY,
	player_id TEXT NOT NULL,
	started_at_millis INTEGER NOT NULL,
	victory INTEGER NOT NULL,
	final_phase TEXT NOT NULL,
	death_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recent_runs_player ON recent_runs (player_id, started_at_millis DESC);

CREATE TABLE IF NOT EXISTS mask_debt (
	variant TEXT PRIMARY KEY,
	debt REAL NOT NULL
);
`

// SQLiteStore is the long-term store backing LongTerm, grounded on the
// teacher's Store/Open pattern (WAL journal mode, busy timeout, inline
// schema creation rather than a migrations directory since the director's
// schema is small and fixed).
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if absent) a SQLite-backed long-term
// store at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) PlayerSummary(ctx context.Context, playerID string) (PlayerSummary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT player_id, aura, deaths, dragons_killed, hours_played, nemesis_cause
		FROM player_summary WHERE player_id = ?`, playerID)

	var summary PlayerSummary
	err := row.Scan(&summary.PlayerID, &summary.Aura, &summary.Deaths, &summary.DragonsKilled, &summary.HoursPlayed, &summary.NemesisCause)
	if err == sql.ErrNoRows {
		return PlayerSummary{PlayerID: playerID}, nil
	}
	if err != nil {
		return PlayerSummary{}, apperrors.Wrap(apperrors.CodeTransientUnavailable, "player summary lookup failed", err)
	}
	return summary, nil
}

func (s *SQLiteStore) RecentRuns(ctx context.Context, playerID string, k int) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, started_at_millis, victory, final_phase, death_count
		FROM recent_runs WHERE player_id = ? ORDER BY started_at_millis DESC LIMIT ?`, playerID, k)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTransientUnavailable, "recent runs lookup failed", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var startedAtMillis int64
		var victory int
		if err := rows.Scan(&r.RunID, &startedAtMillis, &victory, &r.FinalPhase, &r.DeathCount); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeTransientUnavailable, "scan recent run", err)
		}
		r.StartedAt = time.UnixMilli(startedAtMillis).UTC()
		r.Victory = victory != 0
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTransientUnavailable, "iterate recent runs", err)
	}
	return out, nil
}

func (s *SQLiteStore) MaskDebt(ctx context.Context) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT variant, debt FROM mask_debt`)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTransientUnavailable, "mask debt lookup failed", err)
	}
	defer rows.Close()

	debt := make(map[string]float64)
	for rows.Next() {
		var variant string
		var value float64
		if err := rows.Scan(&variant, &value); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeTransientUnavailable, "scan mask debt", err)
		}
		debt[variant] = value
	}
	return debt, rows.Err()
}

func (s *SQLiteStore) SaveMaskDebt(ctx context.Context, debt map[string]float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeTransientUnavailable, "begin mask debt save", err)
	}
	defer tx.Rollback()

	for variant, value := range debt {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO mask_debt (variant, debt) VALUES (?, ?)
			ON CONFLICT(variant) DO UPDATE SET debt = excluded.debt`, variant, value); err != nil {
			return apperrors.Wrap(apperrors.CodeTransientUnavailable, "upsert mask debt", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(apperrors.CodeTransientUnavailable, "commit mask debt save", err)
	}
	return nil
}
