package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomItem is a user-saved customization of a base catalog piece.
// BasePieceID is nullable: deleting the referenced catalog row nulls the
// reference and the custom item survives as an orphan.
type CustomItem struct {
	ID               uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	BasePieceID      *uint64         `gorm:"index" json:"base_piece_id"`
	CustomName       string          `gorm:"size:255;not null" json:"custom_name"`
	SelectedColor    string          `gorm:"size:50;not null" json:"selected_color"`
	SelectedBoard    string          `gorm:"size:255;not null" json:"selected_board"`
	SelectedMaterial string          `gorm:"size:100;not null" json:"selected_material"`
	Price            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImagePath        string          `gorm:"size:255;not null" json:"image_path"`
	Notes            *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName overrides the table name for CustomItem
func (CustomItem) TableName() string {
	return "custom_items"
}
