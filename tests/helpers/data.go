package helpers

import (
	"testing"

	"github.com/customchess/chessdb/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UniqueName returns a test label that will not collide across parallel
// runs against a shared database.
func UniqueName(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// TestPieceSpec describes a catalog row to seed for a test.
type TestPieceSpec struct {
	Name     string
	Color    string
	Board    string
	Material string
	Price    string
	Image    string
}

// CreateTestPiece inserts a catalog row, filling sane defaults for any
// unset field.
func CreateTestPiece(t *testing.T, db *gorm.DB, spec TestPieceSpec) models.ChessPiece {
	t.Helper()

	if spec.Name == "" {
		spec.Name = UniqueName("piece")
	}
	if spec.Color == "" {
		spec.Color = "white"
	}
	if spec.Board == "" {
		spec.Board = "wooden"
	}
	if spec.Material == "" {
		spec.Material = "wood"
	}
	if spec.Price == "" {
		spec.Price = "10.00"
	}
	if spec.Image == "" {
		spec.Image = "/pieces/" + spec.Name + ".png"
	}

	piece := models.ChessPiece{
		Name:        spec.Name,
		PieceColor:  spec.Color,
		Chessboard:  spec.Board,
		Material:    spec.Material,
		ImagePath:   spec.Image,
		Description: "test piece " + spec.Name,
		Price:       decimal.RequireFromString(spec.Price),
	}
	if err := db.Create(&piece).Error; err != nil {
		t.Fatalf("Failed to create test piece: %v", err)
	}
	return piece
}

// CreateTestCustomItem inserts a custom item referencing the given piece.
func CreateTestCustomItem(t *testing.T, db *gorm.DB, piece models.ChessPiece) models.CustomItem {
	t.Helper()

	basePieceID := piece.ID
	item := models.CustomItem{
		BasePieceID:      &basePieceID,
		CustomName:       UniqueName("custom"),
		SelectedColor:    piece.PieceColor,
		SelectedBoard:    piece.Chessboard,
		SelectedMaterial: piece.Material,
		Price:            piece.Price,
		ImagePath:        piece.ImagePath,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create test custom item: %v", err)
	}
	return item
}
