// internal/solved/store.go
//
// SQLite persistence for "words solved so far" and daily puzzle results.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Recording solved games and listing distinct solved words.
//   - Daily puzzle helpers (one result per player/date, leaderboard).
//
// Callers invoke this after a session reaches the solved state; the puzzle
// core itself never touches storage.

package solved

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrations embed.FS

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if missing) the database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// openDB opens a SQLite database file.
//
//   - Ensures parent directory exists for relative DSNs (e.g. ./data/wordle.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies sql/*.sql from fsys in lexical order, each inside its own
// transaction, skipping files already recorded in _migrations.
func migrate(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

/* --------------------------- solved words ------------------------------- */

// Solve describes one solved game.
type Solve struct {
	Word    string // lowercase solution
	UserID  string // empty for anonymous play
	Mode    string // "game" | "daily" | "cli"
	Guesses int
}

// RecordSolved appends a solved game.
func (s *Store) RecordSolved(ctx context.Context, v Solve) error {
	if v.Word == "" {
		return errors.New("solved: empty word")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO solved_words (word, user_id, mode, guesses) VALUES (?, ?, ?, ?)`,
		v.Word, v.UserID, v.Mode, v.Guesses,
	)
	return err
}

// Words returns the distinct solved words in lexical order.
func (s *Store) Words(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT word FROM solved_words ORDER BY word`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

/* ----------------------- Daily puzzle helpers --------------------------- */

// DailyResult is a single player's finished daily puzzle.
// Stored in daily_results (UNIQUE(user_id, date)).
type DailyResult struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"` // YYYY-MM-DD (UTC)
	WordIndex int    `json:"wordIndex"`
	Guesses   int    `json:"guesses"`
	Solved    bool   `json:"solved"`
	ElapsedMs int    `json:"elapsedMs"` // first guess accepted → finish
}

// LBRow is a leaderboard entry.
type LBRow struct {
	UserID    string `json:"userId"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// AlreadyPlayed reports whether the player finished the puzzle for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// InsertDailyResult stores a result; an existing row for the same
// player/date is kept (INSERT OR IGNORE).
func (s *Store) InsertDailyResult(ctx context.Context, r DailyResult) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results
            (user_id, date, word_index, guesses, solved, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?)`,
		r.UserID, r.Date, r.WordIndex, r.Guesses, r.Solved, r.ElapsedMs,
	)
	return err
}

// Leaderboard returns the fastest solvers for date.
//
//   - Only solved results are ranked.
//   - Ordered by guesses ASC, then elapsed time ASC, then created_at ASC.
//   - Default limit is 20.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT user_id, guesses, elapsed_ms
        FROM daily_results
        WHERE date=? AND solved=1
        ORDER BY guesses ASC, elapsed_ms ASC, created_at ASC
        LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
