package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/imkonsowa/menu-assistant/models"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS menu_rows (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	restaurant TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	dish TEXT NOT NULL DEFAULT '',
	price TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT ''
)`

// SQLite is a single-file menu store for deployments without postgres.
type SQLite struct {
	db *sql.DB
}

func NewMenuSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create menu_rows table: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Rows(ctx context.Context) ([]models.MenuRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, restaurant, category, dish, price, description FROM menu_rows ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu rows: %w", err)
	}
	defer rows.Close()

	var out []models.MenuRow
	for rows.Next() {
		var r models.MenuRow
		if err := rows.Scan(&r.ID, &r.Restaurant, &r.Category, &r.Dish, &r.Price, &r.Description); err != nil {
			return nil, fmt.Errorf("failed to scan menu row: %w", err)
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read menu rows: %w", err)
	}

	return out, nil
}

func (s *SQLite) Replace(ctx context.Context, rows []models.MenuRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM menu_rows`); err != nil {
		return fmt.Errorf("failed to clear menu rows: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO menu_rows (restaurant, category, dish, price, description) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Restaurant, r.Category, r.Dish, r.Price, r.Description); err != nil {
			return fmt.Errorf("failed to insert menu row %q: %w", r.Dish, err)
		}
	}

	return tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
