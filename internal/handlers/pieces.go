package handlers

import (
	"github.com/customchess/chessdb/internal/models"
	"github.com/customchess/chessdb/internal/services"
	"github.com/customchess/chessdb/internal/utils"
	"github.com/customchess/chessdb/internal/variant"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PiecesHandler handles catalog piece routes
type PiecesHandler struct {
	DB       *gorm.DB
	Resolver *variant.Resolver
}

// PieceOptionsResponse is the derived option set for one catalog piece.
type PieceOptionsResponse struct {
	Piece           models.ChessPiece        `json:"piece"`
	Colors          []string                 `json:"colors"`
	Materials       []string                 `json:"materials"`
	MaterialOptions []variant.MaterialOption `json:"material_options"`
	BoardOptions    []variant.BoardOption    `json:"board_options"`
	ActiveBoard     variant.BoardOption      `json:"active_board"`
	ExactMatch      *models.ChessPiece       `json:"exact_match"`
	Preview         *models.ChessPiece       `json:"preview"`
}

// GetPieces handles GET /api/pieces
// @Summary List catalog pieces
// @Description Get all chess pieces in the catalog, ascending by id
// @Tags Pieces
// @Produce json
// @Success 200 {array} models.ChessPiece
// @Failure 500 {object} map[string]string
// @Router /pieces [get]
func (h *PiecesHandler) GetPieces(c *fiber.Ctx) error {
	pieces, err := services.ListChessPieces(h.DB)
	if err != nil {
		return respondError(c, err, "Could not load chess pieces.")
	}
	return c.Status(fiber.StatusOK).JSON(pieces)
}

// GetPieceByID handles GET /api/pieces/:id
// @Summary Get one catalog piece
// @Tags Pieces
// @Produce json
// @Param id path int true "Piece ID"
// @Success 200 {object} models.ChessPiece
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /pieces/{id} [get]
func (h *PiecesHandler) GetPieceByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err, "Could not load chess piece.")
	}

	piece, err := services.GetChessPiece(h.DB, id)
	if err != nil {
		return respondError(c, err, "Could not load chess piece.")
	}
	return c.Status(fiber.StatusOK).JSON(piece)
}

// GetPieceOptions handles GET /api/pieces/:id/options
// @Summary Get derived customization options for a piece
// @Description Derive available colors, materials for the chosen color, board options, and the preview row for a selection. Advisory only; writes are re-validated.
// @Tags Pieces
// @Produce json
// @Param id path int true "Piece ID"
// @Param color query string false "Chosen color"
// @Param material query string false "Chosen material"
// @Param board query string false "Chosen board"
// @Success 200 {object} PieceOptionsResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /pieces/{id}/options [get]
func (h *PiecesHandler) GetPieceOptions(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err, "Could not load piece options.")
	}

	piece, err := services.GetChessPiece(h.DB, id)
	if err != nil {
		return respondError(c, err, "Could not load piece options.")
	}

	pieces, err := services.ListChessPieces(h.DB)
	if err != nil {
		return respondError(c, err, "Could not load piece options.")
	}

	color := c.Query("color", piece.PieceColor)
	material := c.Query("material", piece.Material)
	board := c.Query("board", piece.Chessboard)

	cfg := h.Resolver.Config()
	group := variant.Group(pieces, piece.Name)

	return c.Status(fiber.StatusOK).JSON(PieceOptionsResponse{
		Piece:           *piece,
		Colors:          variant.Colors(group),
		Materials:       variant.MaterialsFor(group, color),
		MaterialOptions: cfg.MaterialOptionsFor(group, color),
		BoardOptions:    cfg.Boards,
		ActiveBoard:     cfg.ActiveBoard(board),
		ExactMatch:      variant.ExactMatch(group, color, material),
		Preview:         variant.Preview(group, piece, color, material),
	})
}

// UpdatePiece handles PATCH /api/pieces/:id
// @Summary Administratively update a catalog piece
// @Tags Pieces
// @Accept json
// @Produce json
// @Param id path int true "Piece ID"
// @Param body body services.UpdatePieceInput true "Fields to update"
// @Success 200 {object} models.ChessPiece
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /pieces/{id} [patch]
func (h *PiecesHandler) UpdatePiece(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err, "Could not update chess piece.")
	}

	var input services.UpdatePieceInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input.")
	}

	piece, err := services.UpdateChessPiece(h.DB, id, input)
	if err != nil {
		return respondError(c, err, "Could not update chess piece.")
	}
	return c.Status(fiber.StatusOK).JSON(piece)
}

// DeletePiece handles DELETE /api/pieces/:id
// @Summary Administratively delete a catalog piece
// @Description Delete a catalog row. Dependent custom items survive with base_piece_id nulled.
// @Tags Pieces
// @Produce json
// @Param id path int true "Piece ID"
// @Success 200 {object} models.ChessPiece
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /pieces/{id} [delete]
func (h *PiecesHandler) DeletePiece(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err, "Could not delete chess piece.")
	}

	piece, err := services.DeleteChessPiece(h.DB, id)
	if err != nil {
		return respondError(c, err, "Could not delete chess piece.")
	}
	return c.Status(fiber.StatusOK).JSON(piece)
}
