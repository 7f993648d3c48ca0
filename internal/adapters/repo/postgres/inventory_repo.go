package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kozoukioden/dusakabin-app/internal/domain"
)

type InventoryRepo struct{ db *gorm.DB }

func NewInventoryRepo(db *gorm.DB) *InventoryRepo { return &InventoryRepo{db: db} }

func (r *InventoryRepo) Save(ctx context.Context, i *domain.InventoryItem) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *InventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	var i domain.InventoryItem
	if err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (r *InventoryRepo) List(ctx context.Context) ([]domain.InventoryItem, error) {
	var list []domain.InventoryItem
	if err := r.db.WithContext(ctx).Order("category asc, name asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// AdjustQuantity is a single atomic read-modify-write on the row so two
// orders entering manufacturing at once cannot lose an update.
func (r *InventoryRepo) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error {
	res := r.db.WithContext(ctx).Model(&domain.InventoryItem{}).Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.InventoryItem{}, "id = ?", id).Error
}
