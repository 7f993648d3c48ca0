package cutlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kozoukioden/dusakabin-app/internal/domain"
)

func TestApplicable(t *testing.T) {
	order := &domain.Order{
		Series:   domain.SeriesSuperlux,
		Material: domain.MaterialCam,
		Model:    domain.ModelKose,
	}

	rules := []domain.ManufacturingRule{
		{ComponentName: "genel", Series: domain.SeriesAll},
		{ComponentName: "seri", Series: domain.SeriesSuperlux},
		{ComponentName: "baska seri", Series: domain.SeriesBella},
		{ComponentName: "materyal", Series: domain.SeriesAll, Material: domain.MaterialCam},
		{ComponentName: "baska materyal", Series: domain.SeriesAll, Material: domain.MaterialPleksi},
		{ComponentName: "model", Series: domain.SeriesSuperlux, Model: domain.ModelKose},
		{ComponentName: "baska model", Series: domain.SeriesSuperlux, Model: domain.ModelOval},
	}

	got := Applicable(order, rules)
	names := make([]string, 0, len(got))
	for _, r := range got {
		names = append(names, r.ComponentName)
	}
	assert.Equal(t, []string{"genel", "seri", "materyal", "model"}, names)
}

func TestApplicableWildcardMatchesEverything(t *testing.T) {
	wildcard := domain.ManufacturingRule{Series: domain.SeriesAll}

	orders := []*domain.Order{
		{Series: domain.SeriesBella, Material: domain.MaterialPleksi, Model: domain.ModelKose},
		{Series: domain.SeriesPratiko, Material: domain.MaterialCam, Model: domain.ModelKatlanir},
		{Series: domain.SeriesLiverno, Material: domain.MaterialCam, Model: domain.ModelDuz2S2C},
	}
	for _, o := range orders {
		got := Applicable(o, []domain.ManufacturingRule{wildcard})
		require.Len(t, got, 1)
	}
}

func TestApplicableSeriesMaterialMismatch(t *testing.T) {
	rule := domain.ManufacturingRule{Series: domain.SeriesBella, Material: domain.MaterialPleksi}
	order := &domain.Order{Series: domain.SeriesSuperlux, Material: domain.MaterialPleksi}

	assert.Empty(t, Applicable(order, []domain.ManufacturingRule{rule}))
}

func TestApplicablePreservesCatalogOrder(t *testing.T) {
	rules := []domain.ManufacturingRule{
		{ComponentName: "a", Series: domain.SeriesAll, DisplayOrder: 3},
		{ComponentName: "b", Series: domain.SeriesAll, DisplayOrder: 1},
		{ComponentName: "c", Series: domain.SeriesAll, DisplayOrder: 2},
	}
	order := &domain.Order{Series: domain.SeriesBella}

	got := Applicable(order, rules)
	require.Len(t, got, 3)
	// Matching never re-sorts; the repo's ordering is the contract.
	assert.Equal(t, "a", got[0].ComponentName)
	assert.Equal(t, "b", got[1].ComponentName)
	assert.Equal(t, "c", got[2].ComponentName)
}
