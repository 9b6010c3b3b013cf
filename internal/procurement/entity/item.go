package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemCategory groups catalog items. Deleting a category deletes its items.
type ItemCategory struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`

	Items []Item `json:"items,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (ItemCategory) TableName() string {
	return "item_categories"
}

// Item is a purchasable catalog entry.
type Item struct {
	ID            string          `json:"id" gorm:"primaryKey;size:32"`
	Code          string          `json:"code" gorm:"size:50;uniqueIndex;not null"`
	Name          string          `json:"name" gorm:"size:200;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	CategoryID    string          `json:"category_id" gorm:"size:32;not null;index"`
	UnitOfMeasure string          `json:"unit_of_measure" gorm:"size:20;default:pcs"`
	StandardPrice decimal.Decimal `json:"standard_price" gorm:"type:decimal(10,2);default:0"`
	IsActive      bool            `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time       `json:"created_at"`

	Category *ItemCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Item) TableName() string {
	return "items"
}

// Units of measure
const (
	UnitPieces    = "pcs"
	UnitKilograms = "kg"
	UnitLiters    = "ltr"
	UnitMeters    = "m"
	UnitBox       = "box"
)

// ValidUnits is the closed set of accepted units of measure.
var ValidUnits = map[string]bool{
	UnitPieces:    true,
	UnitKilograms: true,
	UnitLiters:    true,
	UnitMeters:    true,
	UnitBox:       true,
}
