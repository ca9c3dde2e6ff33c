package handlers

import (
	"github.com/customchess/chessdb/internal/services"
	"github.com/customchess/chessdb/internal/utils"
	"github.com/customchess/chessdb/internal/variant"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CustomItemsHandler handles custom item routes
type CustomItemsHandler struct {
	DB       *gorm.DB
	Resolver *variant.Resolver
}

// ListCustomItems handles GET /api/custom-items
// @Summary List custom items
// @Description Get all saved custom items, newest first
// @Tags CustomItems
// @Produce json
// @Success 200 {array} models.CustomItem
// @Failure 500 {object} map[string]string
// @Router /custom-items [get]
func (h *CustomItemsHandler) ListCustomItems(c *fiber.Ctx) error {
	items, err := services.ListCustomItems(h.DB)
	if err != nil {
		return respondError(c, err, "Could not load custom items.")
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// GetCustomItem handles GET /api/custom-items/:id
// @Summary Get one custom item
// @Tags CustomItems
// @Produce json
// @Param id path int true "Custom item ID"
// @Success 200 {object} models.CustomItem
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /custom-items/{id} [get]
func (h *CustomItemsHandler) GetCustomItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err, "Could not load custom item.")
	}

	item, err := services.GetCustomItem(h.DB, id)
	if err != nil {
		return respondError(c, err, "Could not load custom item.")
	}
	return c.Status(fiber.StatusOK).JSON(item)
}

// CreateCustomItem handles POST /api/custom-items
// @Summary Create a custom item
// @Description Validate the selection through the variant resolver and persist it
// @Tags CustomItems
// @Accept json
// @Produce json
// @Param body body services.CustomItemInput true "Customization payload"
// @Success 201 {object} models.CustomItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /custom-items [post]
func (h *CustomItemsHandler) CreateCustomItem(c *fiber.Ctx) error {
	var input services.CustomItemInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input.")
	}

	item, err := services.CreateCustomItem(h.DB, h.Resolver, input)
	if err != nil {
		return respondError(c, err, "Could not create custom item.")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateCustomItem handles PUT /api/custom-items/:id
// @Summary Update a custom item
// @Description Re-validate the new selection through the variant resolver and overwrite the item
// @Tags CustomItems
// @Accept json
// @Produce json
// @Param id path int true "Custom item ID"
// @Param body body services.CustomItemInput true "Customization payload"
// @Success 200 {object} models.CustomItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /custom-items/{id} [put]
func (h *CustomItemsHandler) UpdateCustomItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err, "Could not update custom piece.")
	}

	var input services.CustomItemInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input.")
	}

	item, err := services.UpdateCustomItem(h.DB, h.Resolver, id, input)
	if err != nil {
		return respondError(c, err, "Could not update custom piece.")
	}
	return c.Status(fiber.StatusOK).JSON(item)
}

// DeleteCustomItem handles DELETE /api/custom-items/:id
// @Summary Delete a custom item
// @Tags CustomItems
// @Param id path int true "Custom item ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /custom-items/{id} [delete]
func (h *CustomItemsHandler) DeleteCustomItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err, "Could not delete custom piece.")
	}

	if err := services.DeleteCustomItem(h.DB, id); err != nil {
		return respondError(c, err, "Could not delete custom piece.")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
