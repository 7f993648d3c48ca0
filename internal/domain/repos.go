package domain

import (
	"context"

	"github.com/google/uuid"
)

type OrderFilter struct {
	Status   OrderStatus
	Series   Series
	Query    string
	Page     int
	PageSize int
}

type OrderRepo interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, f OrderFilter) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RuleRepo interface {
	Save(ctx context.Context, r *ManufacturingRule) error
	FindByID(ctx context.Context, id uuid.UUID) (*ManufacturingRule, error)
	// List returns the whole catalog ordered by series, display_order, id so
	// compilation input is deterministic.
	List(ctx context.Context) ([]ManufacturingRule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type InventoryRepo interface {
	Save(ctx context.Context, i *InventoryItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	List(ctx context.Context) ([]InventoryItem, error)
	// AdjustQuantity applies a signed delta as a single atomic column update.
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepo interface {
	Save(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
