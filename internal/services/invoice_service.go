package services

import (
	"errors"
	"fmt"

	"culvana/internal/models"
	"culvana/internal/repositories"
)

// InvoiceService serves the read-only invoice view. The invoice documents
// are written by the invoice import pipeline, never by this service.
type InvoiceService struct {
	repo repositories.InvoiceRepository
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(repo repositories.InvoiceRepository) *InvoiceService {
	return &InvoiceService{
		repo: repo,
	}
}

// GetInvoices returns the user's invoices with per-field defaults filled
// in. A user with no invoice document gets an empty list.
func (s *InvoiceService) GetInvoices(email string) (*models.InvoiceDocument, error) {
	doc, err := s.repo.Get(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &models.InvoiceDocument{
				ID:       email,
				UserID:   email,
				Invoices: []models.Invoice{},
			}, nil
		}
		return nil, fmt.Errorf("failed to load invoices for %s: %w", email, err)
	}

	formatted := make([]models.Invoice, 0, len(doc.Invoices))
	for _, invoice := range doc.Invoices {
		formatted = append(formatted, formatInvoice(invoice))
	}
	return &models.InvoiceDocument{
		ID:       doc.ID,
		UserID:   doc.UserID,
		Invoices: formatted,
	}, nil
}

// formatInvoice fills the defaults an imported invoice may be missing so
// the response shape is always complete.
func formatInvoice(invoice models.Invoice) models.Invoice {
	items := make([]models.InvoiceItem, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, formatInvoiceItem(item))
	}
	invoice.Items = items
	return invoice
}

func formatInvoiceItem(item models.InvoiceItem) models.InvoiceItem {
	if item.CatchWeight == "" {
		item.CatchWeight = "N/A"
	}
	if item.PricedBy == "" {
		item.PricedBy = "per each"
	}
	if item.Splitable == "" {
		item.Splitable = "NO"
	}
	if item.SplitPrice == "" {
		item.SplitPrice = "N/A"
	}
	if item.Currency == "" {
		item.Currency = "USD"
	}
	if item.PageNumber == 0 {
		item.PageNumber = 1
	}
	return item
}
