package command

import (
	"context"
	"fmt"
	"time"

	"github.com/mfigueredo/vetsched/internal/fault"
	"github.com/mfigueredo/vetsched/internal/model"
)

// InventoryStore is the slice of persistence the stock command needs.
type InventoryStore interface {
	Get(ctx context.Context, id string) (*model.InventoryItem, error)
	Save(ctx context.Context, item *model.InventoryItem) error
}

// UpdateStock sets an inventory item to a new quantity, remembering the
// previous quantity for undo.
type UpdateStock struct {
	store   InventoryStore
	itemID  string
	newQty  int
	prevQty *int
	clock   func() time.Time
}

func NewUpdateStock(store InventoryStore, itemID string, newQty int) *UpdateStock {
	return &UpdateStock{store: store, itemID: itemID, newQty: newQty, clock: time.Now}
}

func (u *UpdateStock) WithClock(clock func() time.Time) *UpdateStock {
	u.clock = clock
	return u
}

func (u *UpdateStock) Execute(ctx context.Context) error {
	item, err := u.store.Get(ctx, u.itemID)
	if err != nil {
		return err
	}
	prev := item.Quantity
	item.Quantity = u.newQty
	item.UpdatedAt = u.clock()
	if err := u.store.Save(ctx, item); err != nil {
		return err
	}
	u.prevQty = &prev
	return nil
}

func (u *UpdateStock) Undo(ctx context.Context) error {
	if u.prevQty == nil {
		return fault.Precondition("update stock: nothing to undo")
	}
	item, err := u.store.Get(ctx, u.itemID)
	if err != nil {
		return err
	}
	item.Quantity = *u.prevQty
	item.UpdatedAt = u.clock()
	if err := u.store.Save(ctx, item); err != nil {
		return err
	}
	u.prevQty = nil
	return nil
}

func (u *UpdateStock) Describe() string {
	return fmt.Sprintf("set stock of %s to %d", u.itemID, u.newQty)
}
