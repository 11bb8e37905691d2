package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"culvana/internal/models"
	"culvana/internal/services"
)

// InventoryHandler handles HTTP requests for the inventory document. Every
// operation is a POST carrying the user's email in the JSON body.
type InventoryHandler struct {
	service  *services.InventoryService
	validate *validator.Validate
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the inventory routes with the Fiber app.
func (h *InventoryHandler) RegisterRoutes(router fiber.Router) {
	inventoryRoutes := router.Group("/inventory")
	inventoryRoutes.Post("/add", h.HandleAddItem)
	inventoryRoutes.Post("/update", h.HandleUpdateItem)
	inventoryRoutes.Post("/delete", h.HandleDeleteItem)
	inventoryRoutes.Post("/list", h.HandleGetInventory)
}

// AddInventoryRequest represents the request body for an inventory add.
// Nutritional label, UPC, unit of measure, locations, and image are
// optional and default to empty values on the stored item.
type AddInventoryRequest struct {
	Email             string                `json:"email" validate:"required,email"`
	InventoryItem     string                `json:"inventoryItem" validate:"required"`
	ItemType          string                `json:"itemType" validate:"required"`
	NutritionalLabel  string                `json:"nutritionalLabel"`
	UPC               string                `json:"upc"`
	Active            *bool                 `json:"active"`
	InventoryCategory string                `json:"inventoryCategory" validate:"required"`
	InventoryCountBy  string                `json:"inventoryCountBy" validate:"required"`
	UnitOfMeasure     string                `json:"unitOfMeasure"`
	Locations         []models.ItemLocation `json:"locations"`
	Image             string                `json:"image"`
}

func (r *AddInventoryRequest) toInput() services.InventoryItemInput {
	return services.InventoryItemInput{
		Name:             r.InventoryItem,
		ItemType:         r.ItemType,
		NutritionalLabel: r.NutritionalLabel,
		UPC:              r.UPC,
		Active:           r.Active,
		Category:         r.InventoryCategory,
		CountBy:          r.InventoryCountBy,
		UnitOfMeasure:    r.UnitOfMeasure,
		Locations:        r.Locations,
		Image:            r.Image,
	}
}

// HandleAddItem appends a new item to the user's inventory.
func (h *InventoryHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add inventory request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	item, err := h.service.AddItem(req.Email, req.toInput())
	if err != nil {
		log.Printf("Error adding inventory item for %s: %v", req.Email, err)
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Inventory item added successfully",
		"data":    item,
	})
}

// UpdateInventoryRequest represents the request body for an inventory
// update, keyed by item number.
type UpdateInventoryRequest struct {
	AddInventoryRequest
	ItemNumber string `json:"itemNumber" validate:"required"`
}

// HandleUpdateItem overwrites an existing inventory item in place.
func (h *InventoryHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update inventory request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	item, err := h.service.UpdateItem(req.Email, req.ItemNumber, req.toInput())
	if err != nil {
		log.Printf("Error updating inventory item for %s: %v", req.Email, err)
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Inventory item updated successfully",
		"data":    item,
	})
}

// DeleteInventoryRequest represents the request body for an inventory
// delete.
type DeleteInventoryRequest struct {
	Email      string `json:"email" validate:"required,email"`
	ItemNumber string `json:"item_number" validate:"required"`
}

// HandleDeleteItem removes every item matching the item number.
func (h *InventoryHandler) HandleDeleteItem(c *fiber.Ctx) error {
	var req DeleteInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing delete inventory request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	itemCount, err := h.service.DeleteItem(req.Email, req.ItemNumber)
	if err != nil {
		log.Printf("Error deleting inventory item for %s: %v", req.Email, err)
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":    "success",
		"message":   "Item deleted successfully",
		"itemCount": itemCount,
	})
}

// ListRequest represents the request body shared by the list reads.
type ListRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleGetInventory returns the user's formatted inventory. A user with
// no inventory gets an empty list.
func (h *InventoryHandler) HandleGetInventory(c *fiber.Ctx) error {
	var req ListRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing inventory list request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	view, err := h.service.GetInventory(req.Email)
	if err != nil {
		log.Printf("Error getting inventory for %s: %v", req.Email, err)
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":        "success",
		"inventory":     view.Items,
		"supplier_name": view.SupplierName,
		"timestamp":     view.Timestamp,
		"itemCount":     view.ItemCount,
	})
}
