// Package persistence provides SQLite-based archival of finished
// negotiation sessions. Stored outcomes feed reporting only; they
// never flow back into agent strategy.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/bazaar/internal/session"
)

// DB wraps a SQLite connection for session archival.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		product_name TEXT NOT NULL,
		category TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		grade TEXT NOT NULL,
		origin TEXT NOT NULL,
		market_price INTEGER NOT NULL,
		buyer_budget INTEGER NOT NULL,
		seller_floor INTEGER NOT NULL,
		status TEXT NOT NULL,
		final_price INTEGER NOT NULL,
		rounds INTEGER NOT NULL,
		savings INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		role TEXT NOT NULL,
		message TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SessionRow is the stored summary of one negotiation.
type SessionRow struct {
	ID          string `db:"id" json:"id"`
	ProductName string `db:"product_name" json:"product_name"`
	Category    string `db:"category" json:"category"`
	Quantity    int    `db:"quantity" json:"quantity"`
	Grade       string `db:"grade" json:"grade"`
	Origin      string `db:"origin" json:"origin"`
	MarketPrice int    `db:"market_price" json:"market_price"`
	BuyerBudget int    `db:"buyer_budget" json:"buyer_budget"`
	SellerFloor int    `db:"seller_floor" json:"seller_floor"`
	Status      string `db:"status" json:"status"`
	FinalPrice  int    `db:"final_price" json:"final_price"`
	Rounds      int    `db:"rounds" json:"rounds"`
	Savings     int    `db:"savings" json:"savings"`
	CreatedAt   string `db:"created_at" json:"created_at"`
}

// Save writes one finished session and its transcript.
func (db *DB) Save(o session.Outcome) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO sessions
		(id, product_name, category, quantity, grade, origin, market_price,
		 buyer_budget, seller_floor, status, final_price, rounds, savings, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID.String(), o.Product.Name, o.Product.Category, o.Product.Quantity,
		string(o.Product.Grade), o.Product.Origin, o.Product.MarketPrice,
		o.BuyerBudget, o.SellerFloor, o.Status.String(), o.FinalPrice,
		o.Rounds, o.Savings, o.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", o.ID, err)
	}

	stmt, err := tx.Preparex(
		"INSERT INTO messages (session_id, seq, role, message) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range o.Transcript {
		if _, err := stmt.Exec(o.ID.String(), i, m.Role.String(), m.Text); err != nil {
			return fmt.Errorf("insert message %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("session saved", "id", o.ID, "status", o.Status.String(), "rounds", o.Rounds)
	return nil
}

// Recent returns the most recent N stored sessions.
func (db *DB) Recent(limit int) ([]SessionRow, error) {
	var rows []SessionRow
	err := db.conn.Select(&rows,
		"SELECT * FROM sessions ORDER BY created_at DESC LIMIT ?", limit)
	return rows, err
}

// Count returns the total number of stored sessions.
func (db *DB) Count() (int, error) {
	var n int
	err := db.conn.Get(&n, "SELECT COUNT(*) FROM sessions")
	return n, err
}

// Transcript returns the ordered message log of one stored session.
func (db *DB) Transcript(sessionID string) ([]string, error) {
	var lines []string
	err := db.conn.Select(&lines,
		"SELECT role || ': ' || message FROM messages WHERE session_id = ? ORDER BY seq", sessionID)
	return lines, err
}
