package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"culvana/internal/services"
)

// InvoiceHandler handles HTTP requests for the read-only invoice view.
type InvoiceHandler struct {
	service  *services.InvoiceService
	validate *validator.Validate
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the invoice routes with the Fiber app.
func (h *InvoiceHandler) RegisterRoutes(router fiber.Router) {
	invoiceRoutes := router.Group("/invoices")
	invoiceRoutes.Post("/list", h.HandleGetInvoices)
}

// HandleGetInvoices returns the user's invoices with defaults filled in.
func (h *InvoiceHandler) HandleGetInvoices(c *fiber.Ctx) error {
	var req ListRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing invoice list request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	doc, err := h.service.GetInvoices(req.Email)
	if err != nil {
		log.Printf("Error getting invoices for %s: %v", req.Email, err)
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   doc,
	})
}
