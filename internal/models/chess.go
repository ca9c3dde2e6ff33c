package models

import (
	"github.com/shopspring/decimal"
)

// ChessPiece represents a base catalog variant: one row per
// (name, color, material) combination offered by the shop.
type ChessPiece struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	PieceColor  string          `gorm:"size:50;not null" json:"piece_color"`
	Chessboard  string          `gorm:"size:255;not null" json:"chessboard"`
	Material    string          `gorm:"size:100;not null;default:wood" json:"material"`
	ImagePath   string          `gorm:"size:255;not null" json:"image_path"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

// TableName overrides the table name for ChessPiece
func (ChessPiece) TableName() string {
	return "chess"
}
