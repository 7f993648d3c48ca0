package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/kozoukioden/dusakabin-app/internal/domain"
)

type InventoryUC struct {
	Inventory domain.InventoryRepo
}

func (uc *InventoryUC) List(ctx context.Context) ([]domain.InventoryItem, error) {
	return uc.Inventory.List(ctx)
}

func (uc *InventoryUC) Save(ctx context.Context, i *domain.InventoryItem) error {
	i.Name = strings.TrimSpace(i.Name)
	if i.Name == "" {
		return errors.New("stok adı boş")
	}
	if !i.Category.Valid() {
		return errors.New("geçersiz kategori")
	}
	if i.Unit == "" {
		i.Unit = "adet"
	}
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return uc.Inventory.Save(ctx, i)
}

// Adjust applies a manual quantity correction (goods received, breakage).
func (uc *InventoryUC) Adjust(ctx context.Context, id uuid.UUID, delta int) (*domain.InventoryItem, error) {
	if delta == 0 {
		return nil, errors.New("delta sıfır")
	}
	if err := uc.Inventory.AdjustQuantity(ctx, id, delta); err != nil {
		return nil, err
	}
	return uc.Inventory.FindByID(ctx, id)
}

func (uc *InventoryUC) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.Inventory.Delete(ctx, id)
}

// Low returns the rows at or under their warning threshold.
func (uc *InventoryUC) Low(ctx context.Context) ([]domain.InventoryItem, error) {
	all, err := uc.Inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	low := []domain.InventoryItem{}
	for _, i := range all {
		if i.Low() {
			low = append(low, i)
		}
	}
	return low, nil
}
