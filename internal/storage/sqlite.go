package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"budgetbuddy/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists the ledger document in a SQLite database,
// one row per transaction/goal with an explicit position column so the
// document's insertion order survives the round trip. Save replaces the
// whole document inside one database transaction, mirroring the JSON
// gateway's whole-file-replace contract.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if necessary) the database at dbPath
// and runs schema migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load reads the full document in position order.
func (r *SQLiteRepository) Load(ctx context.Context) (core.LedgerDocument, error) {
	var doc core.LedgerDocument

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, amount_cents, category, description, created_at
		 FROM transactions ORDER BY position`)
	if err != nil {
		return doc, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t         core.Transaction
			kind      string
			createdAt string
		)
		if err := rows.Scan(&t.ID, &kind, &t.Amount.Cents, &t.Category, &t.Description, &createdAt); err != nil {
			return doc, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Kind, err = core.ParseKind(kind); err != nil {
			return doc, fmt.Errorf("%w: transaction %s kind %q", core.ErrCorruptData, t.ID, kind)
		}
		if createdAt != "" {
			if t.Timestamp, err = time.Parse(time.RFC3339, createdAt); err != nil {
				return doc, fmt.Errorf("%w: transaction %s timestamp %q", core.ErrCorruptData, t.ID, createdAt)
			}
		}
		doc.Transactions = append(doc.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return doc, fmt.Errorf("iterate transactions: %w", err)
	}

	goalRows, err := r.db.QueryContext(ctx,
		`SELECT id, name, target_cents, saved_cents, deadline
		 FROM goals ORDER BY position`)
	if err != nil {
		return doc, fmt.Errorf("query goals: %w", err)
	}
	defer goalRows.Close()

	for goalRows.Next() {
		var (
			g        core.Goal
			deadline sql.NullString
		)
		if err := goalRows.Scan(&g.ID, &g.Name, &g.Target.Cents, &g.Saved.Cents, &deadline); err != nil {
			return doc, fmt.Errorf("scan goal: %w", err)
		}
		if deadline.Valid && deadline.String != "" {
			if g.Deadline, err = core.ParseDate(deadline.String); err != nil {
				return doc, fmt.Errorf("%w: goal %s deadline %q", core.ErrCorruptData, g.ID, deadline.String)
			}
		}
		doc.Goals = append(doc.Goals, g)
	}
	if err := goalRows.Err(); err != nil {
		return doc, fmt.Errorf("iterate goals: %w", err)
	}

	return doc, nil
}

// Save replaces the stored document atomically.
func (r *SQLiteRepository) Save(ctx context.Context, doc core.LedgerDocument) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM goals`); err != nil {
		return fmt.Errorf("clear goals: %w", err)
	}

	for i, t := range doc.Transactions {
		createdAt := ""
		if !t.Timestamp.IsZero() {
			createdAt = t.Timestamp.Format(time.RFC3339)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (id, position, kind, amount_cents, category, description, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, i, string(t.Kind), t.Amount.Cents, t.Category, t.Description, createdAt,
		); err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	for i, g := range doc.Goals {
		var deadline any
		if !g.Deadline.IsEmpty() {
			deadline = g.Deadline.String()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO goals (id, position, name, target_cents, saved_cents, deadline)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			g.ID, i, g.Name, g.Target.Cents, g.Saved.Cents, deadline,
		); err != nil {
			return fmt.Errorf("insert goal %s: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
