package services

import (
	"errors"
	"fmt"

	"github.com/customchess/chessdb/internal/models"
	"github.com/customchess/chessdb/internal/types"
	"github.com/customchess/chessdb/internal/variant"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// catalogLookup adapts gorm to the resolver's CatalogLookup interface.
type catalogLookup struct {
	db *gorm.DB
}

// NewCatalogLookup returns a catalog lookup backed by the given database.
func NewCatalogLookup(db *gorm.DB) variant.CatalogLookup {
	return &catalogLookup{db: db}
}

// FindVariant finds the catalog row matching the id and the
// case-insensitive color/material pair. The first match wins when the
// catalog carries duplicates.
func (l *catalogLookup) FindVariant(basePieceID uint64, color, material string) (*models.ChessPiece, error) {
	var piece models.ChessPiece
	err := l.db.Session(&gorm.Session{Logger: l.db.Logger.LogMode(logger.Silent)}).
		Where("id = ? AND LOWER(piece_color) = LOWER(?) AND LOWER(material) = LOWER(?)",
			basePieceID, color, material).
		First(&piece).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &piece, nil
}

// FindByID finds a catalog row by id alone.
func (l *catalogLookup) FindByID(id uint64) (*models.ChessPiece, error) {
	var piece models.ChessPiece
	err := l.db.Session(&gorm.Session{Logger: l.db.Logger.LogMode(logger.Silent)}).
		First(&piece, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &piece, nil
}

// ListChessPieces retrieves all catalog rows ascending by id.
func ListChessPieces(db *gorm.DB) ([]models.ChessPiece, error) {
	var pieces []models.ChessPiece
	if err := db.Order("id ASC").Find(&pieces).Error; err != nil {
		return nil, err
	}
	return pieces, nil
}

// GetChessPiece retrieves a single catalog row by id.
func GetChessPiece(db *gorm.DB, id uint64) (*models.ChessPiece, error) {
	var piece models.ChessPiece
	if err := db.First(&piece, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(fmt.Sprintf("Chess piece with id %d not found", id))
		}
		return nil, err
	}
	return &piece, nil
}

// UpdatePieceInput carries the administratively mutable catalog fields.
// Nil fields are left untouched.
type UpdatePieceInput struct {
	Name        *string          `json:"name"`
	PieceColor  *string          `json:"piece_color"`
	Chessboard  *string          `json:"chessboard"`
	Material    *string          `json:"material"`
	ImagePath   *string          `json:"image_path"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// UpdateChessPiece applies a partial administrative update and returns the
// updated row. Constraint violations surface as conflicts.
func UpdateChessPiece(db *gorm.DB, id uint64, input UpdatePieceInput) (*models.ChessPiece, error) {
	piece, err := GetChessPiece(db, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.PieceColor != nil {
		updates["piece_color"] = *input.PieceColor
	}
	if input.Chessboard != nil {
		updates["chessboard"] = *input.Chessboard
	}
	if input.Material != nil {
		updates["material"] = *input.Material
	}
	if input.ImagePath != nil {
		updates["image_path"] = *input.ImagePath
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}

	if len(updates) > 0 {
		if err := db.Model(piece).Updates(updates).Error; err != nil {
			return nil, types.NewConflictError(err.Error())
		}
	}

	return piece, nil
}

// DeleteChessPiece removes a catalog row and returns it. Dependent custom
// items keep their rows but have base_piece_id nulled explicitly, the
// application-level equivalent of ON DELETE SET NULL, applied in the same
// transaction on every driver.
func DeleteChessPiece(db *gorm.DB, id uint64) (*models.ChessPiece, error) {
	piece, err := GetChessPiece(db, id)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CustomItem{}).
			Where("base_piece_id = ?", id).
			Update("base_piece_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ChessPiece{}, id).Error
	})
	if err != nil {
		return nil, types.NewConflictError(err.Error())
	}

	return piece, nil
}
