package domain

import (
	"time"

	"github.com/google/uuid"
)

type Series string

const (
	SeriesAll      Series = "all"
	SeriesSuperlux Series = "superlux"
	SeriesLiverno  Series = "liverno"
	SeriesPratiko  Series = "pratiko"
	SeriesBella    Series = "bella"
)

func (s Series) Valid() bool {
	switch s {
	case SeriesSuperlux, SeriesLiverno, SeriesPratiko, SeriesBella:
		return true
	}
	return false
}

type Model string

const (
	ModelKose     Model = "kose"
	ModelOval     Model = "oval"
	ModelDuz1S1C  Model = "duz_1s1c"
	ModelDuz2S2C  Model = "duz_2s2c"
	ModelKatlanir Model = "katlanir"
)

func (m Model) Valid() bool {
	switch m {
	case ModelKose, ModelOval, ModelDuz1S1C, ModelDuz2S2C, ModelKatlanir:
		return true
	}
	return false
}

// TwoWalled reports whether the cabin shape has a second, depth-facing wall
// run (the shapes where a rectangular footprint needs duplicate profiles).
func (m Model) TwoWalled() bool {
	return m == ModelKose || m == ModelOval
}

type Material string

const (
	MaterialCam    Material = "cam"
	MaterialPleksi Material = "pleksi"
)

func (m Material) Valid() bool {
	return m == MaterialCam || m == MaterialPleksi
}

type ComponentType string

const (
	ComponentProfile   ComponentType = "profile"
	ComponentGlass     ComponentType = "glass"
	ComponentAccessory ComponentType = "accessory"
)

func (t ComponentType) Valid() bool {
	switch t {
	case ComponentProfile, ComponentGlass, ComponentAccessory:
		return true
	}
	return false
}

// ManufacturingRule describes one physical component of a cabin: which orders
// it applies to, the formula producing its cut measurement, and how it maps
// to stock. Rules are authored on the settings screen and reused by every
// order until edited.
type ManufacturingRule struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Series        Series        `gorm:"type:varchar(20);index;not null" json:"series"`
	Material      Material      `gorm:"type:varchar(20)" json:"material,omitempty"`
	Model         Model         `gorm:"type:varchar(20)" json:"model,omitempty"`
	ComponentName string        `gorm:"size:140;not null" json:"componentName"`
	Type          ComponentType `gorm:"type:varchar(20);not null" json:"type"`
	Formula       string        `gorm:"size:200;not null" json:"formula"`
	// HeightFormula is only meaningful for glass rules; empty means the
	// component-name height heuristic applies.
	HeightFormula string `gorm:"size:200" json:"heightFormula,omitempty"`
	Quantity      int    `gorm:"not null" json:"quantity"`
	DisplayOrder  int    `gorm:"index" json:"displayOrder"`
	// DependsOnWidth marks rules whose measurement follows the cabin width.
	// Set from the parsed formula at save time; the rectangular duplication
	// pass keys on it.
	DependsOnWidth bool       `gorm:"not null;default:false" json:"dependsOnWidth"`
	StockName      string     `gorm:"size:140" json:"stockName,omitempty"`
	StockItemID    *uuid.UUID `gorm:"type:uuid;index" json:"stockItemId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// AppliesTo implements the catalog matching contract: series equal or "all",
// material empty or equal, model empty or equal.
func (r ManufacturingRule) AppliesTo(o *Order) bool {
	if r.Series != SeriesAll && r.Series != o.Series {
		return false
	}
	if r.Material != "" && r.Material != o.Material {
		return false
	}
	if r.Model != "" && r.Model != o.Model {
		return false
	}
	return true
}
