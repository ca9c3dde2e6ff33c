package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/customchess/chessdb/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedPiece is one catalog entry in the embedded seed file.
type SeedPiece struct {
	Name        string          `json:"name"`
	PieceColor  string          `json:"piece_color"`
	Chessboard  string          `json:"chessboard"`
	Material    string          `json:"material"`
	ImagePath   string          `json:"image_path"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// SeedCatalog inserts the embedded seed set into the chess table and
// returns the number of rows inserted. Missing materials default to wood,
// matching the schema default.
func SeedCatalog(db *gorm.DB, raw []byte) (int, error) {
	var seed []SeedPiece
	if err := json.Unmarshal(raw, &seed); err != nil {
		return 0, fmt.Errorf("failed to parse seed data: %w", err)
	}

	inserted := 0
	for _, entry := range seed {
		material := entry.Material
		if material == "" {
			material = "wood"
		}
		piece := models.ChessPiece{
			Name:        entry.Name,
			PieceColor:  entry.PieceColor,
			Chessboard:  entry.Chessboard,
			Material:    material,
			ImagePath:   entry.ImagePath,
			Description: entry.Description,
			Price:       entry.Price,
		}
		if err := db.Create(&piece).Error; err != nil {
			return inserted, fmt.Errorf("failed to seed %s (%s/%s): %w",
				entry.Name, entry.PieceColor, material, err)
		}
		log.Printf("Seeded %s (%s, %s)", entry.Name, entry.PieceColor, material)
		inserted++
	}

	return inserted, nil
}
