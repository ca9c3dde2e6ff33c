package variant

import (
	"fmt"

	"github.com/customchess/chessdb/internal/models"
	"github.com/customchess/chessdb/internal/types"
	"github.com/shopspring/decimal"
)

// Validation messages surfaced to clients.
const (
	MsgMissingFields      = "Missing required fields."
	MsgInvalidBoard       = "Please choose a valid chessboard option."
	MsgInvalidMaterial    = "Please choose a valid material option."
	MsgInvalidCombination = "Invalid feature combination. Please select a valid piece configuration."
)

// CatalogLookup is the resolver's read-only view of the catalog store.
// Implementations return (nil, nil) when no row matches.
type CatalogLookup interface {
	// FindVariant finds the catalog row matching the id and the
	// case-insensitive color/material pair.
	FindVariant(basePieceID uint64, color, material string) (*models.ChessPiece, error)

	// FindByID finds a catalog row by id alone.
	FindByID(id uint64) (*models.ChessPiece, error)
}

// Request is a proposed customization to validate.
type Request struct {
	BasePieceID      uint64
	CustomName       string
	SelectedColor    string
	SelectedBoard    string
	SelectedMaterial string
	Price            *decimal.Decimal
	ImagePath        string
}

// Resolution is the accepted outcome: the price and image the custom item
// persists, and the catalog row that vouched for the selection.
type Resolution struct {
	Price            decimal.Decimal
	ImagePath        string
	MatchedCatalogID uint64
	Board            string
}

// Resolver validates proposed customizations against the catalog.
type Resolver struct {
	cfg Config
}

// NewResolver builds a Resolver from the injected configuration.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Strategy reports the configured validation strategy.
func (r *Resolver) Strategy() Strategy {
	return r.cfg.Strategy
}

// Config returns the injected board/material configuration.
func (r *Resolver) Config() Config {
	return r.cfg
}

// Resolve validates req and resolves its price/image. It performs lookups
// only; persistence is the caller's job. Failures are *types.CustomError
// values: validation (400) or not-found (404). Any other error is a store
// failure.
func (r *Resolver) Resolve(catalog CatalogLookup, req Request) (*Resolution, error) {
	if req.BasePieceID == 0 || req.CustomName == "" || req.SelectedColor == "" ||
		req.SelectedBoard == "" || req.SelectedMaterial == "" {
		return nil, types.NewValidationError(MsgMissingFields)
	}

	board, ok := r.cfg.NormalizeBoard(req.SelectedBoard)
	if !ok {
		return nil, types.NewValidationError(MsgInvalidBoard)
	}

	var matched *models.ChessPiece
	switch r.cfg.Strategy {
	case StrategyMaterialBoard:
		material, ok := r.cfg.NormalizeMaterial(req.SelectedMaterial)
		if !ok {
			return nil, types.NewValidationError(MsgInvalidMaterial)
		}
		required := r.cfg.MaterialBoards[material]
		if board != required {
			return nil, types.NewValidationError(fmt.Sprintf(
				"Material %q is only compatible with %q board.", material, required))
		}
		// Color is not checked against the catalog under this strategy.
		row, err := catalog.FindByID(req.BasePieceID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, types.NewNotFoundError(fmt.Sprintf(
				"Chess piece with id %d not found", req.BasePieceID))
		}
		matched = row

	default: // StrategyStrict
		row, err := catalog.FindVariant(req.BasePieceID, req.SelectedColor, req.SelectedMaterial)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, types.NewValidationError(MsgInvalidCombination)
		}
		matched = row
	}

	resolved := &Resolution{
		Price:            matched.Price,
		ImagePath:        matched.ImagePath,
		MatchedCatalogID: matched.ID,
		Board:            board,
	}
	if req.Price != nil {
		resolved.Price = *req.Price
	}
	if req.ImagePath != "" {
		resolved.ImagePath = req.ImagePath
	}

	return resolved, nil
}
