package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kozoukioden/dusakabin-app/internal/domain"
)

func validRule() *domain.ManufacturingRule {
	return &domain.ManufacturingRule{
		Series:        domain.SeriesBella,
		ComponentName: "Erkek Ray",
		Type:          domain.ComponentProfile,
		Formula:       "W - 6",
		Quantity:      2,
	}
}

func TestRuleSaveValid(t *testing.T) {
	repo := &memRuleRepo{}
	uc := &RuleUC{Rules: repo}

	r := validRule()
	require.NoError(t, uc.Save(context.Background(), r))
	assert.NotEqual(t, "", r.ID.String())
	assert.True(t, r.DependsOnWidth)
	require.Len(t, repo.rules, 1)
}

func TestRuleSaveSetsWidthDependence(t *testing.T) {
	uc := &RuleUC{Rules: &memRuleRepo{}}

	r := validRule()
	r.Formula = "H - 1"
	require.NoError(t, uc.Save(context.Background(), r))
	assert.False(t, r.DependsOnWidth)

	r2 := validRule()
	r2.Formula = "ROUND5((W/2)-2)"
	require.NoError(t, uc.Save(context.Background(), r2))
	assert.True(t, r2.DependsOnWidth)
}

func TestRuleSaveBlocksBadFormulas(t *testing.T) {
	uc := &RuleUC{Rules: &memRuleRepo{}}

	tests := []struct {
		name   string
		mutate func(*domain.ManufacturingRule)
	}{
		{"söz dizimi", func(r *domain.ManufacturingRule) { r.Formula = "W - " }},
		{"bilinmeyen sembol", func(r *domain.ManufacturingRule) { r.Formula = "W - Q" }},
		{"bilinmeyen fonksiyon", func(r *domain.ManufacturingRule) { r.Formula = "CEIL(W)" }},
		{"adet sıfır", func(r *domain.ManufacturingRule) { r.Quantity = 0 }},
		{"parça adı boş", func(r *domain.ManufacturingRule) { r.ComponentName = "  " }},
		{"geçersiz seri", func(r *domain.ManufacturingRule) { r.Series = "mega" }},
		{"cam dışı yükseklik formülü", func(r *domain.ManufacturingRule) { r.HeightFormula = "H - 2.5" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRule()
			tt.mutate(r)
			assert.Error(t, uc.Save(context.Background(), r))
		})
	}
}

func TestRuleSaveGlassHeightFormula(t *testing.T) {
	uc := &RuleUC{Rules: &memRuleRepo{}}

	r := validRule()
	r.Type = domain.ComponentGlass
	r.Formula = "ROUND5((W/2)-2)"
	r.HeightFormula = "H - 2.5"
	require.NoError(t, uc.Save(context.Background(), r))

	r.HeightFormula = "H - yok"
	assert.Error(t, uc.Save(context.Background(), r))
}

func TestRuleTest(t *testing.T) {
	uc := &RuleUC{Rules: &memRuleRepo{}}

	got, err := uc.Test(context.Background(), "W - 9", 78, 190, 0)
	require.NoError(t, err)
	assert.Equal(t, 69.0, got)

	_, err = uc.Test(context.Background(), "W +", 78, 190, 0)
	assert.Error(t, err)
}
