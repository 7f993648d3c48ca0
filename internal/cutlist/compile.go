package cutlist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kozoukioden/dusakabin-app/internal/domain"
	"github.com/kozoukioden/dusakabin-app/internal/formula"
)

// Glass panel heights when the rule carries no height formula: fixed panes
// and sliding panes are cut to series-standard heights, anything else
// follows the order height.
const (
	fixedPaneHeight   = 182.5
	slidingPaneHeight = 187.5
)

// CompileError names the rule whose formula failed so the operator can fix
// the catalog. A single failing rule aborts the whole cutting list; an
// undercounted list is worse than no list.
type CompileError struct {
	ComponentName string
	Formula       string
	Err           error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%q kuralı hesaplanamadı (formül: %s): %v", e.ComponentName, e.Formula, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Compile evaluates every applicable rule against the order dimensions and
// emits the production items in catalog order. For two-walled models with a
// rectangular footprint, width-dependent profile rules are evaluated a
// second time with the depth standing in for the width, and those
// depth-facing duplicates are appended after the primary run.
//
// Pure: the same order and rule slice always produce the same items.
func Compile(o *domain.Order, rules []domain.ManufacturingRule) ([]domain.ProductionItem, error) {
	w := o.Width
	h := o.Height
	d := o.DepthOrWidth()
	color := o.ProfileColor
	if color == "" {
		color = "Parlak"
	}

	items := make([]domain.ProductionItem, 0, len(rules))
	for _, rule := range rules {
		item, err := buildItem(rule, formula.Vars{W: w, H: h, D: d}, h, color)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	// Depth-facing run for rectangular kose/oval cabins.
	if o.Model.TwoWalled() && d != w && d > 0 {
		for _, rule := range rules {
			if rule.Type != domain.ComponentProfile || !rule.DependsOnWidth {
				continue
			}
			item, err := buildItem(rule, formula.Vars{W: d, H: h, D: d}, h, color)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}

	return items, nil
}

func buildItem(rule domain.ManufacturingRule, vars formula.Vars, orderH float64, color string) (domain.ProductionItem, error) {
	val, err := formula.Evaluate(rule.Formula, vars)
	if err != nil {
		return domain.ProductionItem{}, &CompileError{ComponentName: rule.ComponentName, Formula: rule.Formula, Err: err}
	}

	item := domain.ProductionItem{
		Name:        rule.ComponentName,
		Type:        rule.Type,
		Unit:        "cm",
		Qty:         rule.Quantity,
		Val:         formatVal(val),
		StockName:   rule.StockName,
		StockItemID: rule.StockItemID,
	}

	switch rule.Type {
	case domain.ComponentProfile:
		item.Name = colorName(rule.ComponentName, color)
		if rule.StockName != "" {
			item.StockName = colorName(rule.StockName, color)
		}

	case domain.ComponentGlass:
		item.Unit = "adet"
		item.W = val
		gh, err := glassHeight(rule, vars, orderH)
		if err != nil {
			return domain.ProductionItem{}, err
		}
		item.H = gh
		if rule.StockName == "" && rule.StockItemID == nil {
			// Stock glass comes in 5cm widths named "Sabit Cam NNcm"; the
			// tag on the item name is what the resolver matches on.
			item.Name = fmt.Sprintf("%s (Stok: %scm)", rule.ComponentName, formatVal(val))
		}

	case domain.ComponentAccessory:
		item.Unit = accessoryUnit(rule.ComponentName)
		if val == 0 {
			// Count-only accessory, no length to cut.
			item.Val = domain.ValNotApplicable
		}
	}

	return item, nil
}

func glassHeight(rule domain.ManufacturingRule, vars formula.Vars, orderH float64) (float64, error) {
	if rule.HeightFormula != "" {
		gh, err := formula.Evaluate(rule.HeightFormula, vars)
		if err != nil {
			return 0, &CompileError{ComponentName: rule.ComponentName, Formula: rule.HeightFormula, Err: err}
		}
		return gh, nil
	}
	switch {
	case strings.Contains(rule.ComponentName, "Sabit"):
		return fixedPaneHeight, nil
	case strings.Contains(rule.ComponentName, "Çalışır"):
		return slidingPaneHeight, nil
	}
	return orderH, nil
}

func accessoryUnit(name string) string {
	switch {
	case name == "Mıknatıs Suluk":
		return "boy"
	case strings.Contains(name, "Takımı"), strings.Contains(name, "Rulman Seti"):
		return "takım"
	}
	return "adet"
}

func colorName(base, color string) string {
	return base + " (" + color + ")"
}

func formatVal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
