package repository

import (
	"context"
	"database/sql"

	"mesero/internal/domain"
	"mesero/internal/errors"
)

// SQLCatalogRepository persists catalog snapshots to the menu_items table.
// The reactive menu path never reads from here; a snapshot only exists so a
// refresh survives restarts.
type SQLCatalogRepository struct {
	db *sql.DB
}

func NewSQLCatalogRepository(db *sql.DB) *SQLCatalogRepository {
	return &SQLCatalogRepository{db: db}
}

// ReplaceAll swaps the stored catalog wholesale. Entries are never merged.
func (r *SQLCatalogRepository) ReplaceAll(ctx context.Context, entries []domain.MenuEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorageError("beginning catalog transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM menu_items`); err != nil {
		return errors.NewStorageError("clearing menu items", err)
	}

	query := `INSERT INTO menu_items (id, name, description, price, category, imageUrl) VALUES (?, ?, ?, ?, ?, ?)`
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, query, e.ID, e.NameKey, e.DescriptionKey, e.Price, e.Category, e.ImageURL); err != nil {
			return errors.NewStorageError("inserting menu item", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorageError("committing catalog transaction", err)
	}
	return nil
}

func (r *SQLCatalogRepository) List(ctx context.Context) ([]domain.MenuEntry, error) {
	query := `SELECT id, name, description, price, category, imageUrl FROM menu_items ORDER BY category, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewStorageError("querying menu items", err)
	}
	defer rows.Close()

	entries := []domain.MenuEntry{}
	for rows.Next() {
		var e domain.MenuEntry
		if err := rows.Scan(&e.ID, &e.NameKey, &e.DescriptionKey, &e.Price, &e.Category, &e.ImageURL); err != nil {
			return nil, errors.NewStorageError("scanning menu item row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("iterating menu item rows", err)
	}

	return entries, nil
}
