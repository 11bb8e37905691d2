package repositories

import "culvana/internal/models"

// Collection names for the per-user aggregate documents, mirroring the
// containers the invoice pipeline writes into.
const (
	CollectionInventory = "inventory"
	CollectionMenu      = "menu"
	CollectionRecipes   = "recipes"
	CollectionInvoices  = "invoices"
)

// InventoryRepository stores one inventory document per user. Get returns
// ErrNotFound when the user has no document yet; Save is a full-document
// upsert.
type InventoryRepository interface {
	Get(email string) (*models.InventoryDocument, error)
	Save(doc *models.InventoryDocument) error
}

// MenuRepository stores one menu document per user.
type MenuRepository interface {
	Get(email string) (*models.MenuDocument, error)
	Save(doc *models.MenuDocument) error
}

// RecipeRepository reads the recipe document the invoice pipeline maintains.
// This service never writes it.
type RecipeRepository interface {
	Get(email string) (*models.MenuDocument, error)
}

// InvoiceRepository reads the invoice document the invoice pipeline
// maintains. This service never writes it.
type InvoiceRepository interface {
	Get(email string) (*models.InvoiceDocument, error)
}
