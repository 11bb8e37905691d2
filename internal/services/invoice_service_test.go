package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"culvana/internal/models"
	"culvana/internal/repositories"
	"culvana/internal/services"
)

func TestInvoiceService_GetInvoicesEmpty(t *testing.T) {
	repo := repositories.NewMockInvoiceRepository()
	svc := services.NewInvoiceService(repo)

	doc, err := svc.GetInvoices("nobody@x.com")
	assert.NoError(t, err)
	assert.Equal(t, "nobody@x.com", doc.ID)
	assert.Equal(t, "nobody@x.com", doc.UserID)
	assert.Empty(t, doc.Invoices)
}

func TestInvoiceService_GetInvoicesDefaults(t *testing.T) {
	repo := repositories.NewMockInvoiceRepository()
	svc := services.NewInvoiceService(repo)

	repo.Seed(models.InvoiceDocument{
		ID:     "a@x.com",
		UserID: "a@x.com",
		Invoices: []models.Invoice{{
			SupplierName:  "Fresh Farms",
			InvoiceNumber: "INV-42",
			Total:         120.50,
			Items: []models.InvoiceItem{{
				ItemNumber: "1001",
				ItemName:   "Tomatoes",
				CasePrice:  30.00,
				// Catch weight, priced-by, splitable, split price,
				// currency, and page number deliberately absent.
			}},
		}},
	})

	doc, err := svc.GetInvoices("a@x.com")
	assert.NoError(t, err)
	assert.Len(t, doc.Invoices, 1)

	item := doc.Invoices[0].Items[0]
	assert.Equal(t, "N/A", item.CatchWeight)
	assert.Equal(t, "per each", item.PricedBy)
	assert.Equal(t, "NO", item.Splitable)
	assert.Equal(t, "N/A", item.SplitPrice)
	assert.Equal(t, "USD", item.Currency)
	assert.Equal(t, 1, item.PageNumber)

	// Present values pass through untouched.
	assert.Equal(t, "Tomatoes", item.ItemName)
	assert.Equal(t, 30.00, item.CasePrice)
}
