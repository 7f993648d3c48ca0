package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kozoukioden/dusakabin-app/internal/domain"
)

type RuleRepo struct{ db *gorm.DB }

func NewRuleRepo(db *gorm.DB) *RuleRepo { return &RuleRepo{db: db} }

func (r *RuleRepo) Save(ctx context.Context, m *domain.ManufacturingRule) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *RuleRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.ManufacturingRule, error) {
	var m domain.ManufacturingRule
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns the full catalog in a stable order; the compiler relies on
// this ordering for byte-identical recompilations.
func (r *RuleRepo) List(ctx context.Context) ([]domain.ManufacturingRule, error) {
	var list []domain.ManufacturingRule
	if err := r.db.WithContext(ctx).Order("series asc, display_order asc, id asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *RuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ManufacturingRule{}, "id = ?", id).Error
}
