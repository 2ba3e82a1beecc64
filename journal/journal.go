// Package journal persists client state that must survive a hard reload:
// the last known session per account, the selected network and an audit
// trail of move transactions
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lixenwraith/blockrooms/grid"
)

// Setting keys
const (
	SettingNetwork = "network"
)

// TxStatus is the lifecycle state of a recorded transaction
type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxConfirmed TxStatus = "confirmed"
	TxFailed    TxStatus = "failed"
)

// Session is the last observed session of an account
type Session struct {
	Address   string
	SessionID int64
	Verified  grid.Position
	UpdatedAt time.Time
}

// TxRecord is one submitted move
type TxRecord struct {
	ID          int64
	SessionID   int64
	EncDX       grid.Direction
	EncDZ       grid.Direction
	RawDX       int
	RawDZ       int
	Status      TxStatus
	Error       string
	SubmittedAt time.Time
	ResolvedAt  time.Time // Zero while pending
}

// Journal wraps the SQLite connection
type Journal struct {
	conn *sql.DB
	now  func() time.Time
}

// Open opens or creates the journal database at path
// ":memory:" yields a private in-memory journal
func Open(path string) (*Journal, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	// One connection: keeps :memory: coherent and serializes writers
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	j := &Journal{conn: conn, now: time.Now}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return j, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	return j.conn.Close()
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sessions (
		address TEXT PRIMARY KEY,
		last_session_id INTEGER NOT NULL,
		verified_x REAL NOT NULL DEFAULT 0,
		verified_z REAL NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL,
		enc_dx INTEGER NOT NULL,
		enc_dz INTEGER NOT NULL,
		raw_dx INTEGER NOT NULL,
		raw_dz INTEGER NOT NULL,
		status TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		submitted_at INTEGER NOT NULL,
		resolved_at INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_session ON transactions(session_id);
	`
	if _, err := j.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrate journal: %w", err)
	}
	return nil
}

// Setting returns a stored setting
func (j *Journal) Setting(key string) (string, bool, error) {
	var value string
	err := j.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores or replaces a setting
func (j *Journal) SetSetting(key, value string) error {
	_, err := j.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}

// LastSession returns the last saved session for address
func (j *Journal) LastSession(address string) (Session, bool, error) {
	s := Session{Address: address}
	var updated int64
	err := j.conn.QueryRow(
		"SELECT last_session_id, verified_x, verified_z, updated_at FROM sessions WHERE address = ?",
		address,
	).Scan(&s.SessionID, &s.Verified.X, &s.Verified.Z, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("read session %s: %w", address, err)
	}
	s.UpdatedAt = time.UnixMilli(updated)
	return s, true, nil
}

// SaveSession upserts the session for s.Address
func (j *Journal) SaveSession(s Session) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = j.now()
	}
	_, err := j.conn.Exec(`
		INSERT INTO sessions (address, last_session_id, verified_x, verified_z, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET
			last_session_id = excluded.last_session_id,
			verified_x = excluded.verified_x,
			verified_z = excluded.verified_z,
			updated_at = excluded.updated_at`,
		s.Address, s.SessionID, s.Verified.X, s.Verified.Z, s.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write session %s: %w", s.Address, err)
	}
	return nil
}

// BeginTx records a submitted move as pending and returns its row id
func (j *Journal) BeginTx(rec TxRecord) (int64, error) {
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = j.now()
	}
	res, err := j.conn.Exec(`
		INSERT INTO transactions (session_id, enc_dx, enc_dz, raw_dx, raw_dz, status, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, int(rec.EncDX), int(rec.EncDZ), rec.RawDX, rec.RawDZ, string(TxPending), rec.SubmittedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("record tx: %w", err)
	}
	return res.LastInsertId()
}

// ResolveTx sets the final status of a recorded move
func (j *Journal) ResolveTx(id int64, status TxStatus, errMsg string) error {
	res, err := j.conn.Exec(
		"UPDATE transactions SET status = ?, error = ?, resolved_at = ? WHERE id = ?",
		string(status), errMsg, j.now().UnixMilli(), id,
	)
	if err != nil {
		return fmt.Errorf("resolve tx %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("resolve tx %d: no such transaction", id)
	}
	return nil
}

// RecentTx returns up to n transactions, newest first
func (j *Journal) RecentTx(n int) ([]TxRecord, error) {
	rows, err := j.conn.Query(`
		SELECT id, session_id, enc_dx, enc_dz, raw_dx, raw_dz, status, error, submitted_at, resolved_at
		FROM transactions ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query tx: %w", err)
	}
	defer rows.Close()

	var out []TxRecord
	for rows.Next() {
		var (
			r                   TxRecord
			encDX, encDZ        int
			status              string
			submitted, resolved int64
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &encDX, &encDZ, &r.RawDX, &r.RawDZ, &status, &r.Error, &submitted, &resolved); err != nil {
			return nil, fmt.Errorf("scan tx: %w", err)
		}
		r.EncDX = grid.Direction(encDX)
		r.EncDZ = grid.Direction(encDZ)
		r.Status = TxStatus(status)
		r.SubmittedAt = time.UnixMilli(submitted)
		if resolved != 0 {
			r.ResolvedAt = time.UnixMilli(resolved)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
