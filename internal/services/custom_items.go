package services

import (
	"errors"

	"github.com/customchess/chessdb/internal/models"
	"github.com/customchess/chessdb/internal/types"
	"github.com/customchess/chessdb/internal/variant"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const msgCustomItemNotFound = "Custom piece not found."

// CustomItemInput is the write payload for creating or updating a custom
// item. Price and ImagePath are optional; absent values fall back to the
// resolved catalog row.
type CustomItemInput struct {
	BasePieceID      types.FlexUint64 `json:"base_piece_id"`
	CustomName       string           `json:"custom_name"`
	SelectedColor    string           `json:"selected_color"`
	SelectedBoard    string           `json:"selected_board"`
	SelectedMaterial string           `json:"selected_material"`
	Price            *decimal.Decimal `json:"price"`
	ImagePath        string           `json:"image_path"`
	Notes            *string          `json:"notes"`
}

func (in CustomItemInput) variantRequest() variant.Request {
	return variant.Request{
		BasePieceID:      in.BasePieceID.Uint64(),
		CustomName:       in.CustomName,
		SelectedColor:    in.SelectedColor,
		SelectedBoard:    in.SelectedBoard,
		SelectedMaterial: in.SelectedMaterial,
		Price:            in.Price,
		ImagePath:        in.ImagePath,
	}
}

// ListCustomItems retrieves all custom items, most recently created first.
func ListCustomItems(db *gorm.DB) ([]models.CustomItem, error) {
	var items []models.CustomItem
	if err := db.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetCustomItem retrieves a single custom item by id.
func GetCustomItem(db *gorm.DB, id uint64) (*models.CustomItem, error) {
	var item models.CustomItem
	if err := db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(msgCustomItemNotFound)
		}
		return nil, err
	}
	return &item, nil
}

// CreateCustomItem validates the proposed customization through the
// resolver and persists it. There is no transaction spanning the resolver
// lookup and the insert; a base piece deleted in between can slip through
// against stale data. Known gap at this scale.
func CreateCustomItem(db *gorm.DB, resolver *variant.Resolver, input CustomItemInput) (*models.CustomItem, error) {
	resolved, err := resolver.Resolve(NewCatalogLookup(db), input.variantRequest())
	if err != nil {
		return nil, err
	}

	basePieceID := input.BasePieceID.Uint64()
	item := models.CustomItem{
		BasePieceID:      &basePieceID,
		CustomName:       input.CustomName,
		SelectedColor:    input.SelectedColor,
		SelectedBoard:    resolved.Board,
		SelectedMaterial: input.SelectedMaterial,
		Price:            resolved.Price,
		ImagePath:        resolved.ImagePath,
		Notes:            input.Notes,
	}

	if err := db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCustomItem re-validates the new payload through the resolver,
// overwrites the mutable fields, and refreshes updated_at.
func UpdateCustomItem(db *gorm.DB, resolver *variant.Resolver, id uint64, input CustomItemInput) (*models.CustomItem, error) {
	resolved, err := resolver.Resolve(NewCatalogLookup(db), input.variantRequest())
	if err != nil {
		return nil, err
	}

	item, err := GetCustomItem(db, id)
	if err != nil {
		return nil, err
	}

	basePieceID := input.BasePieceID.Uint64()
	item.BasePieceID = &basePieceID
	item.CustomName = input.CustomName
	item.SelectedColor = input.SelectedColor
	item.SelectedBoard = resolved.Board
	item.SelectedMaterial = input.SelectedMaterial
	item.Price = resolved.Price
	item.ImagePath = resolved.ImagePath
	if input.Notes != nil {
		item.Notes = input.Notes
	}

	if err := db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteCustomItem removes a custom item. No cascade effects.
func DeleteCustomItem(db *gorm.DB, id uint64) error {
	result := db.Delete(&models.CustomItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError(msgCustomItemNotFound)
	}
	return nil
}
