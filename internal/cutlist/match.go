// Package cutlist turns an order's dimensions and the manufacturing rule
// catalog into the ordered cutting list used on the shop floor.
package cutlist

import "github.com/kozoukioden/dusakabin-app/internal/domain"

// Applicable filters the catalog down to the rules matching an order,
// preserving catalog order so repeated compilations are identical.
func Applicable(o *domain.Order, rules []domain.ManufacturingRule) []domain.ManufacturingRule {
	out := make([]domain.ManufacturingRule, 0, len(rules))
	for _, r := range rules {
		if r.AppliesTo(o) {
			out = append(out, r)
		}
	}
	return out
}
