// Package metrics exposes the shop's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dusakabin_orders_created_total",
			Help: "Orders created, by series",
		},
		[]string{"series"},
	)

	CutlistItems = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dusakabin_cutlist_items_total",
			Help: "Production items emitted by the cut-list compiler",
		},
	)

	CompileFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dusakabin_compile_failures_total",
			Help: "Cut-list compilations aborted by a rule formula error",
		},
	)

	StockDeductions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dusakabin_stock_deductions_total",
			Help: "Inventory rows decremented by manufacturing transitions",
		},
	)

	NegativeStockWarnings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dusakabin_negative_stock_warnings_total",
			Help: "Deductions that drove an inventory row negative",
		},
	)
)
