package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"culvana/internal/services"
)

// MenuHandler handles HTTP requests for the menu document and the recipe
// reads.
type MenuHandler struct {
	service  *services.MenuService
	validate *validator.Validate
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(service *services.MenuService) *MenuHandler {
	return &MenuHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the menu and recipe routes with the Fiber app.
func (h *MenuHandler) RegisterRoutes(router fiber.Router) {
	menuRoutes := router.Group("/menu")
	menuRoutes.Post("/add", h.HandleAddMenuItem)
	menuRoutes.Post("/list", h.HandleGetMenus)

	recipeRoutes := router.Group("/recipes")
	recipeRoutes.Post("/list", h.HandleGetRecipes)
}

// AddMenuRequest represents the request body for a menu add.
type AddMenuRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	ItemName  string  `json:"itemName" validate:"required"`
	Category  string  `json:"category" validate:"required"`
	Size      string  `json:"size" validate:"required"`
	MenuPrice float64 `json:"menuPrice" validate:"required"`
	Method    string  `json:"method"`
}

// HandleAddMenuItem appends a menu entry to the user's menu document.
func (h *MenuHandler) HandleAddMenuItem(c *fiber.Ctx) error {
	var req AddMenuRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add menu request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	recipe, err := h.service.AddMenuItem(req.Email, services.MenuItemInput{
		ItemName:  req.ItemName,
		Category:  req.Category,
		Size:      req.Size,
		MenuPrice: req.MenuPrice,
		Method:    req.Method,
	})
	if err != nil {
		log.Printf("Error adding menu item for %s: %v", req.Email, err)
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Menu item added successfully",
		"data":    recipe,
	})
}

// HandleGetMenus returns the user's formatted menu entries.
func (h *MenuHandler) HandleGetMenus(c *fiber.Ctx) error {
	var req ListRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing menu list request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	menus, err := h.service.GetMenus(req.Email)
	if err != nil {
		log.Printf("Error getting menus for %s: %v", req.Email, err)
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"menus":  menus,
	})
}

// HandleGetRecipes returns the user's recipes with ingredient enrichment.
func (h *MenuHandler) HandleGetRecipes(c *fiber.Ctx) error {
	var req ListRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing recipe list request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	recipes, err := h.service.GetRecipes(req.Email)
	if err != nil {
		log.Printf("Error getting recipes for %s: %v", req.Email, err)
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"recipes": recipes,
	})
}
