package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/AjayBarot7035/secret-santa/types"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is stored in PRAGMA user_version.
const schemaVersion = 1

// ErrInvalidKey is returned for a blank group or period.
var ErrInvalidKey = errors.New("history group and period are required")

// Exchange is the recorded outcome of one group's exchange in one period.
type Exchange struct {
	Group       string
	Period      string
	RecordedAt  time.Time
	Assignments []types.Assignment
}

// Store is a SQLite-backed history of exchanges. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens a history database at path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement (pairings cascade with their exchange)
//
// Parameters:
//   - path: Database file; ":memory:" opens a private in-memory database
//
// Returns:
//   - *Store: Ready store
//   - error: Open, pragma or schema failure
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows one writer; a single connection also keeps ":memory:" coherent.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// Record stores the assignments of group for period.
//
// Recording the same group and period again replaces the earlier pairings.
//
// Parameters:
//   - ctx: Context for cancellation
//   - group: Exchange group name
//   - period: Exchange period (e.g., "2026")
//   - assignments: Completed pairings
//
// Returns:
//   - error: ErrInvalidKey or a database failure
func (s *Store) Record(ctx context.Context, group, period string, assignments []types.Assignment) error {
	group, period = strings.TrimSpace(group), strings.TrimSpace(period)
	if group == "" || period == "" {
		return ErrInvalidKey
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM exchanges WHERE group_name = ? AND period = ?`, group, period); err != nil {
		return fmt.Errorf("replace exchange: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO exchanges (group_name, period, recorded_at) VALUES (?, ?, ?)`,
		group, period, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("insert exchange: %w", err)
	}
	exchangeID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("exchange id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pairings (exchange_id, position, giver_name, giver_email, receiver_name, receiver_email)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare pairing insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range assignments {
		if _, err := stmt.ExecContext(ctx, exchangeID, i,
			a.GiverName, a.GiverEmail, a.ReceiverName, a.ReceiverEmail); err != nil {
			return fmt.Errorf("insert pairing %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit exchange: %w", err)
	}

	return nil
}

// Latest returns the most recently recorded exchange of group.
//
// Returns:
//   - Exchange: The exchange, zero if none
//   - bool: Whether an exchange was found
//   - error: Database failure
func (s *Store) Latest(ctx context.Context, group string) (Exchange, bool, error) {
	return s.find(ctx, `
		SELECT id, group_name, period, recorded_at FROM exchanges
		WHERE group_name = ?
		ORDER BY recorded_at DESC, id DESC LIMIT 1`, strings.TrimSpace(group))
}

// Previous returns the most recent exchange of group from a period other than period.
//
// "Most recent" means most recently recorded. Period labels are free-form and
// never compared, so regenerating an older period after a newer one makes the
// older period the one returned here. Generating for a period that already has
// a record must not forbid that period's own pairings, so the current period
// is skipped.
//
// Returns:
//   - Exchange: The exchange, zero if none
//   - bool: Whether an exchange was found
//   - error: Database failure
func (s *Store) Previous(ctx context.Context, group, period string) (Exchange, bool, error) {
	return s.find(ctx, `
		SELECT id, group_name, period, recorded_at FROM exchanges
		WHERE group_name = ? AND period <> ?
		ORDER BY recorded_at DESC, id DESC LIMIT 1`, strings.TrimSpace(group), strings.TrimSpace(period))
}

// Periods lists the recorded periods of group, most recent first.
func (s *Store) Periods(ctx context.Context, group string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT period FROM exchanges WHERE group_name = ?
		ORDER BY recorded_at DESC, id DESC`, strings.TrimSpace(group))
	if err != nil {
		return nil, fmt.Errorf("query periods: %w", err)
	}
	defer rows.Close()

	var periods []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

func (s *Store) find(ctx context.Context, query string, args ...any) (Exchange, bool, error) {
	var (
		id         int64
		ex         Exchange
		recordedAt int64
	)
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&id, &ex.Group, &ex.Period, &recordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Exchange{}, false, nil
	}
	if err != nil {
		return Exchange{}, false, fmt.Errorf("query exchange: %w", err)
	}
	ex.RecordedAt = time.Unix(0, recordedAt)

	rows, err := s.db.QueryContext(ctx, `
		SELECT giver_name, giver_email, receiver_name, receiver_email FROM pairings
		WHERE exchange_id = ? ORDER BY position`, id)
	if err != nil {
		return Exchange{}, false, fmt.Errorf("query pairings: %w", err)
	}
	defer rows.Close()

	ex.Assignments = []types.Assignment{}
	for rows.Next() {
		var a types.Assignment
		if err := rows.Scan(&a.GiverName, &a.GiverEmail, &a.ReceiverName, &a.ReceiverEmail); err != nil {
			return Exchange{}, false, fmt.Errorf("scan pairing: %w", err)
		}
		ex.Assignments = append(ex.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return Exchange{}, false, fmt.Errorf("iterate pairings: %w", err)
	}

	return ex, true, nil
}
