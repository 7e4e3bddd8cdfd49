package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/smartfood/internal/common"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/google/uuid"
)

// dateLayout stores expiry dates as calendar days.
const dateLayout = "2006-01-02"

const itemColumns = `id, name, quantity, unit, category, storage_location, expiry_date, created_at, updated_at`

// ListItems returns every inventory item ordered by expiry date, soonest first.
func (s *SQLiteStorage) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM food_items
		ORDER BY expiry_date, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory: %w", err)
	}

	return items, nil
}

// GetItem retrieves an inventory item by id.
func (s *SQLiteStorage) GetItem(ctx context.Context, id string) (*model.InventoryItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getItemTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getItemTx(ctx context.Context, q queryable, id string) (*model.InventoryItem, error) {
	row := q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM food_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("inventory item %s: %w", id, common.ErrNotFound)
	}
	return item, err
}

// CreateItem stores a new inventory item and returns it with its id and
// timestamps set. An empty category is stored as model.DefaultCategory.
func (s *SQLiteStorage) CreateItem(ctx context.Context, item model.InventoryItem) (*model.InventoryItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	item.Name = strings.TrimSpace(item.Name)
	if err := validateNewItem(&item); err != nil {
		return nil, err
	}
	if strings.TrimSpace(item.Category) == "" {
		item.Category = model.DefaultCategory
	}

	now := s.now()
	item.ID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO food_items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.Name, item.Quantity, item.Unit, item.Category,
		item.StorageLocation, item.ExpiryDate.Format(dateLayout), item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	return &item, nil
}

// UpdateQuantity sets the quantity of an item. A quantity of zero deletes the
// item, in which case the returned item is nil.
func (s *SQLiteStorage) UpdateQuantity(ctx context.Context, id string, quantity float64) (*model.InventoryItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	if quantity == 0 {
		return nil, s.DeleteItem(ctx, id)
	}

	var updated *model.InventoryItem
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE food_items SET quantity = ?, updated_at = ? WHERE id = ?
		`, quantity, s.now(), id)
		if err != nil {
			return fmt.Errorf("failed to update quantity: %w", err)
		}
		if err := requireAffected(result, "inventory item", id); err != nil {
			return err
		}

		updated, err = s.getItemTx(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteItem removes an inventory item.
func (s *SQLiteStorage) DeleteItem(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM food_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return requireAffected(result, "inventory item", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.InventoryItem, error) {
	var (
		item   model.InventoryItem
		expiry string
	)
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Quantity,
		&item.Unit,
		&item.Category,
		&item.StorageLocation,
		&expiry,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan inventory item: %w", err)
	}

	item.ExpiryDate, err = time.ParseInLocation(dateLayout, expiry, time.Local)
	if err != nil {
		return nil, fmt.Errorf("inventory item %s has malformed expiry date %q: %w", item.ID, expiry, err)
	}
	return &item, nil
}

// requireAffected turns a write that matched no rows into ErrNotFound.
func requireAffected(result sql.Result, what, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, common.ErrNotFound)
	}
	return nil
}
