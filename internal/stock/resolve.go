// Package stock resolves production items against the inventory snapshot
// and computes the quantity deltas applied when an order enters
// manufacturing.
package stock

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/kozoukioden/dusakabin-app/internal/domain"
)

// glassStockRe pulls the stock-size tag out of a glass item name, e.g.
// "Sabit Cam (Stok: 40cm)" → "40".
var glassStockRe = regexp.MustCompile(`Stok:\s*(\d+)cm`)

const glassStockPrefix = "Sabit Cam"

// Deduction pairs an inventory row with the signed delta an order run
// applies to it. Deltas are negative for consumption.
type Deduction struct {
	Item  domain.InventoryItem
	Delta int
}

// Resolve maps each production item to at most one inventory row and
// accumulates the deltas. Matching order per item: explicit inventory
// reference, exact stock name, then the glass size-tag fallback. Items that
// match nothing are untracked, which is normal for most accessories.
func Resolve(items []domain.ProductionItem, inventory []domain.InventoryItem) []Deduction {
	byID := make(map[uuid.UUID]int, len(inventory))
	byName := make(map[string]int, len(inventory))
	for i, inv := range inventory {
		byID[inv.ID] = i
		byName[inv.Name] = i
	}

	deltas := map[int]int{}
	order := []int{}
	hit := func(idx, qty int) {
		if _, seen := deltas[idx]; !seen {
			order = append(order, idx)
		}
		deltas[idx] -= qty
	}

	for _, item := range items {
		if item.StockItemID != nil {
			if idx, ok := byID[*item.StockItemID]; ok {
				hit(idx, item.Qty)
				continue
			}
		}
		if item.StockName != "" {
			if idx, ok := byName[item.StockName]; ok {
				hit(idx, item.Qty)
			}
			continue
		}
		if item.Type == domain.ComponentGlass {
			if m := glassStockRe.FindStringSubmatch(item.Name); m != nil {
				name := fmt.Sprintf("%s %scm", glassStockPrefix, m[1])
				if idx, ok := byName[name]; ok {
					hit(idx, item.Qty)
				}
			}
		}
	}

	out := make([]Deduction, 0, len(order))
	for _, idx := range order {
		out = append(out, Deduction{Item: inventory[idx], Delta: deltas[idx]})
	}
	return out
}
