package domain

import (
	"time"

	"github.com/google/uuid"
)

type StockCategory string

const (
	CategoryAluminyum StockCategory = "aluminyum"
	CategoryCam       StockCategory = "cam"
	CategoryAksesuar  StockCategory = "aksesuar"
	CategoryPleksi    StockCategory = "pleksi"
)

func (c StockCategory) Valid() bool {
	switch c {
	case CategoryAluminyum, CategoryCam, CategoryAksesuar, CategoryPleksi:
		return true
	}
	return false
}

// InventoryItem is one stock row. Name is the matching key production items
// resolve against; Quantity is signed and may go negative after deduction.
type InventoryItem struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string        `gorm:"size:140;uniqueIndex;not null" json:"name"`
	Category   StockCategory `gorm:"type:varchar(20);index;not null" json:"category"`
	Quantity   int           `gorm:"not null;default:0" json:"quantity"`
	Unit       string        `gorm:"size:10;not null" json:"unit"`
	MinWarning int           `gorm:"default:0" json:"minWarning,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// Low reports whether the row sits at or under its warning threshold.
func (i InventoryItem) Low() bool {
	return i.MinWarning > 0 && i.Quantity <= i.MinWarning
}
