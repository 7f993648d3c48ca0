package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kozoukioden/dusakabin-app/internal/cutlist"
	"github.com/kozoukioden/dusakabin-app/internal/domain"
	"github.com/kozoukioden/dusakabin-app/internal/metrics"
	"github.com/kozoukioden/dusakabin-app/internal/stock"
)

type OrderUC struct {
	Orders    domain.OrderRepo
	Rules     domain.RuleRepo
	Inventory domain.InventoryRepo
}

// Create compiles the cutting list from the current rule catalog and stores
// the order with its items frozen. The items are never recomputed, even if
// the catalog changes later.
func (uc *OrderUC) Create(ctx context.Context, o *domain.Order) error {
	if o.CustomerName == "" {
		return errors.New("müşteri adı boş")
	}
	if o.Width <= 0 || o.Height <= 0 {
		return errors.New("ölçüler pozitif olmalı")
	}
	if !o.Series.Valid() {
		return errors.New("geçersiz seri")
	}
	if !o.Model.Valid() {
		return errors.New("geçersiz model")
	}
	if !o.Material.Valid() {
		return errors.New("geçersiz materyal")
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.Status = domain.OrderStatusPending

	all, err := uc.Rules.List(ctx)
	if err != nil {
		return err
	}
	items, err := cutlist.Compile(o, cutlist.Applicable(o, all))
	if err != nil {
		metrics.CompileFailures.Inc()
		return err
	}
	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = o.ID
	}
	o.Items = items

	if err := uc.Orders.Save(ctx, o); err != nil {
		return err
	}
	metrics.OrdersCreated.WithLabelValues(string(o.Series)).Inc()
	metrics.CutlistItems.Add(float64(len(items)))
	return nil
}

func (uc *OrderUC) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return uc.Orders.FindByID(ctx, id)
}

func (uc *OrderUC) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	return uc.Orders.List(ctx, f)
}

func (uc *OrderUC) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.Orders.Delete(ctx, id)
}

// StockWarning flags an inventory row a deduction drove negative. Shown to
// the operator; never blocks the transition.
type StockWarning struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// UpdateStatus moves an order along the forward-only lifecycle. Entering
// manufacturing from pending deducts matched stock exactly once; the
// previous-status guard is what makes re-triggering a no-op, not the
// inventory state.
func (uc *OrderUC) UpdateStatus(ctx context.Context, id uuid.UUID, next domain.OrderStatus) ([]StockWarning, error) {
	if !next.Valid() {
		return nil, errors.New("geçersiz durum")
	}
	o, err := uc.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransition(next) {
		return nil, domain.ErrInvalidTransition
	}

	var warnings []StockWarning
	if o.Status == domain.OrderStatusPending && next == domain.OrderStatusManufacturing {
		warnings, err = uc.deductStock(ctx, o)
		if err != nil {
			return nil, err
		}
	}

	if err := uc.Orders.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	return warnings, nil
}

func (uc *OrderUC) deductStock(ctx context.Context, o *domain.Order) ([]StockWarning, error) {
	inventory, err := uc.Inventory.List(ctx)
	if err != nil {
		return nil, err
	}

	var warnings []StockWarning
	for _, d := range stock.Resolve(o.Items, inventory) {
		if err := uc.Inventory.AdjustQuantity(ctx, d.Item.ID, d.Delta); err != nil {
			return nil, err
		}
		metrics.StockDeductions.Inc()
		if after := d.Item.Quantity + d.Delta; after < 0 {
			metrics.NegativeStockWarnings.Inc()
			log.Warn().Str("stok", d.Item.Name).Int("kalan", after).Msg("stok eksiye düştü")
			warnings = append(warnings, StockWarning{Name: d.Item.Name, Quantity: after})
		}
	}
	return warnings, nil
}
