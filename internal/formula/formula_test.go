package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	vars := Vars{W: 78, H: 190, D: 78}

	tests := []struct {
		name    string
		formula string
		want    float64
	}{
		{"düz çıkarma", "W - 9", 69},
		{"yarım genişlik", "ROUND5((W/2)-2)", 35},
		{"yükseklik", "H - 2.5", 187.5},
		{"derinlik", "D * 2", 156},
		{"öncelik", "2 + 3 * 4", 14},
		{"parantez", "(2 + 3) * 4", 20},
		{"tekli eksi", "-W + 100", 22},
		{"sabit", "0", 0},
		{"ondalık", "1.5 * 2", 3},
		{"iç içe", "ROUND(ROUND5(W) / 4)", 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.formula, vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundTies(t *testing.T) {
	// Half-way values round away from zero.
	got, err := Evaluate("ROUND5(37.5)", Vars{})
	require.NoError(t, err)
	assert.Equal(t, 40.0, got)

	got, err = Evaluate("ROUND(2.5)", Vars{})
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	got, err = Evaluate("ROUND5(37)", Vars{})
	require.NoError(t, err)
	assert.Equal(t, 35.0, got)
}

func TestEvaluateRejects(t *testing.T) {
	vars := Vars{W: 78, H: 190, D: 78}

	tests := []struct {
		name    string
		formula string
	}{
		{"bilinmeyen fonksiyon", "W + eval(1)"},
		{"kod çağrısı", "process.exit()"},
		{"bilinmeyen sembol", "W + X"},
		{"küçük harf", "w - 9"},
		{"boş", ""},
		{"eksik operand", "W +"},
		{"parantez eksik", "ROUND5(W"},
		{"sıfıra bölme", "W / 0"},
		{"çift nokta", "1.2.3"},
		{"geçersiz karakter", "W; 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.formula, vars)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("ROUND5((W/2)-2)"))
	assert.NoError(t, Validate("H - 2.5"))
	assert.NoError(t, Validate("0"))

	err := Validate("W + eval(1)")
	require.Error(t, err)
	assert.False(t, IsSyntax(err))

	err = Validate("W +")
	require.Error(t, err)
	assert.True(t, IsSyntax(err))
}

func TestDependsOn(t *testing.T) {
	e, err := Parse("ROUND5((W/2)-2)")
	require.NoError(t, err)
	assert.True(t, DependsOn(e, "W"))
	assert.False(t, DependsOn(e, "H"))

	e, err = Parse("H - 2.5")
	require.NoError(t, err)
	assert.False(t, DependsOn(e, "W"))
}
