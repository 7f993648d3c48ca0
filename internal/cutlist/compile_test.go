package cutlist

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kozoukioden/dusakabin-app/internal/domain"
)

func koseOrder(width, depth float64) *domain.Order {
	o := &domain.Order{
		Width:        width,
		Height:       190,
		Model:        domain.ModelKose,
		Series:       domain.SeriesBella,
		Material:     domain.MaterialPleksi,
		ProfileColor: "Parlak",
	}
	if depth > 0 {
		o.Depth = &depth
	}
	return o
}

func profileRule(name, f string, qty int) domain.ManufacturingRule {
	return domain.ManufacturingRule{
		Series:         domain.SeriesBella,
		ComponentName:  name,
		Type:           domain.ComponentProfile,
		Formula:        f,
		Quantity:       qty,
		DependsOnWidth: true,
	}
}

func TestCompileProfile(t *testing.T) {
	rules := []domain.ManufacturingRule{profileRule("Erkek Ray", "W - 9", 2)}

	items, err := Compile(koseOrder(100, 0), rules)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Erkek Ray (Parlak)", items[0].Name)
	assert.Equal(t, "cm", items[0].Unit)
	assert.Equal(t, "91", items[0].Val)
	assert.Equal(t, 2, items[0].Qty)
}

func TestCompileRectangularDuplication(t *testing.T) {
	rules := []domain.ManufacturingRule{
		profileRule("Erkek Ray", "W - 9", 2),
		{
			Series:        domain.SeriesBella,
			ComponentName: "Dikme",
			Type:          domain.ComponentProfile,
			Formula:       "H - 1",
			Quantity:      2,
		},
	}

	items, err := Compile(koseOrder(100, 150), rules)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Primary width-facing run in catalog order, then the depth-facing
	// duplicate of the width-dependent rule.
	assert.Equal(t, "91", items[0].Val)
	assert.Equal(t, "189", items[1].Val)
	assert.Equal(t, "141", items[2].Val)
	assert.Equal(t, "Erkek Ray (Parlak)", items[2].Name)
}

func TestCompileSquareDefaultDepth(t *testing.T) {
	rules := []domain.ManufacturingRule{profileRule("Erkek Ray", "W - 9", 2)}

	noDepth, err := Compile(koseOrder(100, 0), rules)
	require.NoError(t, err)
	square, err := Compile(koseOrder(100, 100), rules)
	require.NoError(t, err)

	// Depth unset behaves exactly like depth == width: no duplication.
	assert.True(t, reflect.DeepEqual(noDepth, square))
	assert.Len(t, noDepth, 1)
}

func TestCompileNoDuplicationForFlatModels(t *testing.T) {
	rules := []domain.ManufacturingRule{profileRule("Erkek Ray", "W - 9", 2)}
	o := koseOrder(100, 150)
	o.Model = domain.ModelDuz1S1C

	items, err := Compile(o, rules)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCompileGlassHeights(t *testing.T) {
	rules := []domain.ManufacturingRule{
		{Series: domain.SeriesSuperlux, ComponentName: "Sabit Cam", Type: domain.ComponentGlass, Formula: "ROUND5((W/2)-2)", Quantity: 2},
		{Series: domain.SeriesSuperlux, ComponentName: "Çalışır Cam", Type: domain.ComponentGlass, Formula: "ROUND5((W/2)-2)", Quantity: 2},
		{Series: domain.SeriesSuperlux, ComponentName: "Pleksi Panel", Type: domain.ComponentGlass, Formula: "W - 2", Quantity: 1},
	}
	o := koseOrder(78, 0)
	o.Series = domain.SeriesSuperlux

	items, err := Compile(o, rules)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, 182.5, items[0].H)
	assert.Equal(t, 187.5, items[1].H)
	assert.Equal(t, o.Height, items[2].H)

	assert.Equal(t, 35.0, items[0].W)
	assert.Equal(t, "adet", items[0].Unit)
	assert.Equal(t, "Sabit Cam (Stok: 35cm)", items[0].Name)
}

func TestCompileGlassHeightFormula(t *testing.T) {
	rules := []domain.ManufacturingRule{
		{Series: domain.SeriesSuperlux, ComponentName: "Sabit Cam", Type: domain.ComponentGlass, Formula: "ROUND5((W/2)-2)", HeightFormula: "H - 2.5", Quantity: 2},
	}
	o := koseOrder(78, 0)
	o.Series = domain.SeriesSuperlux

	items, err := Compile(o, rules)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 187.5, items[0].H)
}

func TestCompileAccessorySentinel(t *testing.T) {
	rules := []domain.ManufacturingRule{
		{Series: domain.SeriesBella, ComponentName: "Rulman Seti", Type: domain.ComponentAccessory, Formula: "0", Quantity: 4},
		{Series: domain.SeriesBella, ComponentName: "Mıknatıs Suluk", Type: domain.ComponentAccessory, Formula: "H - 1", Quantity: 2},
		{Series: domain.SeriesBella, ComponentName: "Kulp Takımı", Type: domain.ComponentAccessory, Formula: "0", Quantity: 1},
	}

	items, err := Compile(koseOrder(100, 0), rules)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, domain.ValNotApplicable, items[0].Val)
	assert.Equal(t, "takım", items[0].Unit)
	assert.Equal(t, "189", items[1].Val)
	assert.Equal(t, "boy", items[1].Unit)
	assert.Equal(t, "takım", items[2].Unit)
}

func TestCompileFailFast(t *testing.T) {
	rules := []domain.ManufacturingRule{
		profileRule("Erkek Ray", "W - 9", 2),
		profileRule("Bozuk Kural", "W + eval(1)", 1),
	}

	items, err := Compile(koseOrder(100, 0), rules)
	require.Error(t, err)
	assert.Nil(t, items)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Bozuk Kural", ce.ComponentName)
	assert.Equal(t, "W + eval(1)", ce.Formula)
}

func TestCompileDeterministic(t *testing.T) {
	rules := []domain.ManufacturingRule{
		profileRule("Erkek Ray", "W - 9", 2),
		{Series: domain.SeriesBella, ComponentName: "Sabit Cam", Type: domain.ComponentGlass, Formula: "ROUND5((W/2)-2)", Quantity: 2},
		{Series: domain.SeriesBella, ComponentName: "Rulman Seti", Type: domain.ComponentAccessory, Formula: "0", Quantity: 4},
	}
	o := koseOrder(100, 150)

	first, err := Compile(o, rules)
	require.NoError(t, err)
	second, err := Compile(o, rules)
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(first, second))
}

func TestCompileProfileStockNameColor(t *testing.T) {
	r := profileRule("Erkek Ray", "W - 9", 2)
	r.StockName = "Süperlüx Ray"
	o := koseOrder(100, 0)
	o.ProfileColor = "Antrasit"

	items, err := Compile(o, []domain.ManufacturingRule{r})
	require.NoError(t, err)
	assert.Equal(t, "Süperlüx Ray (Antrasit)", items[0].StockName)
	assert.Equal(t, "Erkek Ray (Antrasit)", items[0].Name)
}
