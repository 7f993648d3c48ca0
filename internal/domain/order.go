package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusManufacturing OrderStatus = "manufacturing"
	OrderStatusReady         OrderStatus = "ready"
	OrderStatusInstalled     OrderStatus = "installed"
)

var statusRank = map[OrderStatus]int{
	OrderStatusPending:       0,
	OrderStatusManufacturing: 1,
	OrderStatusReady:         2,
	OrderStatusInstalled:     3,
}

func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether moving to next respects the strict
// forward-only lifecycle pending → manufacturing → ready → installed.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	a, okA := statusRank[s]
	b, okB := statusRank[next]
	return okA && okB && b == a+1
}

type Order struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerName string    `gorm:"size:140;not null" json:"customerName"`
	Phone        string    `gorm:"size:50" json:"phone,omitempty"`
	Address      string    `gorm:"type:text" json:"address,omitempty"`

	Width  float64 `gorm:"not null" json:"width"`
	Height float64 `gorm:"not null" json:"height"`
	// Depth is nil for square footprints; the compiler falls back to Width.
	Depth *float64 `json:"depth,omitempty"`

	Model        Model    `gorm:"type:varchar(20);not null" json:"model"`
	Series       Series   `gorm:"type:varchar(20);index;not null" json:"series"`
	Material     Material `gorm:"type:varchar(20);not null" json:"material"`
	ProfileColor string   `gorm:"size:30;not null" json:"profileColor"`
	GlassType    string   `gorm:"size:30" json:"glassType,omitempty"`

	Status OrderStatus `gorm:"type:varchar(20);index;not null" json:"status"`
	Notes  string      `gorm:"type:text" json:"notes,omitempty"`
	// Items are computed once at creation and never recomputed.
	Items      []ProductionItem `json:"items,omitempty"`
	TotalPrice float64          `gorm:"type:decimal(12,2);default:0" json:"totalPrice"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DepthOrWidth resolves the effective depth: orders without one assume a
// square footprint.
func (o *Order) DepthOrWidth() float64 {
	if o.Depth != nil && *o.Depth > 0 {
		return *o.Depth
	}
	return o.Width
}

// ProductionItem is one line of the cutting list, frozen at order creation.
// Profiles and accessories carry Val (a length in cm or the "-" sentinel);
// glass carries a W×H rectangle.
type ProductionItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID uuid.UUID `gorm:"type:uuid;index" json:"orderId"`

	Name string        `gorm:"size:180;not null" json:"name"`
	Type ComponentType `gorm:"type:varchar(20);not null" json:"type"`
	Unit string        `gorm:"size:10;not null" json:"unit"`
	Qty  int           `gorm:"not null" json:"qty"`
	Val  string        `gorm:"size:30" json:"val,omitempty"`
	W    float64       `json:"w,omitempty"`
	H    float64       `json:"h,omitempty"`

	StockName   string     `gorm:"size:140" json:"stockName,omitempty"`
	StockItemID *uuid.UUID `gorm:"type:uuid" json:"stockItemId,omitempty"`
}

// ValNotApplicable marks count-only lines (a formula evaluating to 0).
const ValNotApplicable = "-"
