package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/kozoukioden/dusakabin-app/internal/domain"
	"github.com/kozoukioden/dusakabin-app/internal/formula"
)

type RuleUC struct {
	Rules domain.RuleRepo
}

// Save validates and stores a manufacturing rule. A formula that does not
// parse or references anything outside W/H/D/ROUND/ROUND5 blocks the save;
// bad rules must never reach order compilation.
func (uc *RuleUC) Save(ctx context.Context, r *domain.ManufacturingRule) error {
	r.ComponentName = strings.TrimSpace(r.ComponentName)
	if r.ComponentName == "" {
		return errors.New("parça adı boş")
	}
	if r.Series != domain.SeriesAll && !r.Series.Valid() {
		return errors.New("geçersiz seri")
	}
	if !r.Type.Valid() {
		return errors.New("geçersiz parça tipi")
	}
	if r.Quantity <= 0 {
		return errors.New("adet pozitif olmalı")
	}
	if r.Material != "" && !r.Material.Valid() {
		return errors.New("geçersiz materyal")
	}
	if r.Model != "" && !r.Model.Valid() {
		return errors.New("geçersiz model")
	}

	expr, err := formula.Parse(r.Formula)
	if err != nil {
		return err
	}
	if err := formula.Validate(r.Formula); err != nil {
		return err
	}
	if r.HeightFormula != "" {
		if r.Type != domain.ComponentGlass {
			return errors.New("yükseklik formülü sadece cam kuralları için")
		}
		if err := formula.Validate(r.HeightFormula); err != nil {
			return err
		}
	}
	// Width dependence is decided here, from the AST, so the rectangular
	// duplication pass never has to look at formula text.
	r.DependsOnWidth = formula.DependsOn(expr, "W")

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return uc.Rules.Save(ctx, r)
}

func (uc *RuleUC) List(ctx context.Context) ([]domain.ManufacturingRule, error) {
	return uc.Rules.List(ctx)
}

func (uc *RuleUC) Get(ctx context.Context, id uuid.UUID) (*domain.ManufacturingRule, error) {
	return uc.Rules.FindByID(ctx, id)
}

func (uc *RuleUC) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("kural id boş")
	}
	return uc.Rules.Delete(ctx, id)
}

// Test evaluates a formula against trial dimensions, for the settings
// screen's preview calculator.
func (uc *RuleUC) Test(_ context.Context, f string, w, h, d float64) (float64, error) {
	if d == 0 {
		d = w
	}
	return formula.Evaluate(f, formula.Vars{W: w, H: h, D: d})
}
