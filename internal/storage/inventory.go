package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/mfigueredo/vetsched/internal/fault"
	"github.com/mfigueredo/vetsched/internal/model"
	"github.com/mfigueredo/vetsched/libs/db"
)

type PgInventory struct {
	pool *db.Pool
}

func NewPgInventory(pool *db.Pool) *PgInventory {
	return &PgInventory{pool: pool}
}

func (r *PgInventory) Get(ctx context.Context, id string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, quantity, min_quantity, updated_at
		FROM inventory_items
		WHERE id = $1
	`, id).Scan(&item.ID, &item.Name, &item.Quantity, &item.MinQuantity, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fault.NotFound("inventory item", id)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PgInventory) List(ctx context.Context) ([]*model.InventoryItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, quantity, min_quantity, updated_at
		FROM inventory_items
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*model.InventoryItem
	for rows.Next() {
		var item model.InventoryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.MinQuantity, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}

func (r *PgInventory) Save(ctx context.Context, item *model.InventoryItem) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO inventory_items (id, name, quantity, min_quantity, updated_at)
		VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, now())
		ON CONFLICT (id) DO UPDATE
		SET name = $2, quantity = $3, min_quantity = $4, updated_at = now()
		RETURNING id
	`, item.ID, item.Name, item.Quantity, item.MinQuantity).Scan(&item.ID)
}

func (r *PgInventory) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fault.NotFound("inventory item", id)
	}
	return nil
}
