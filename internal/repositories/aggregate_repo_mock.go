package repositories

import (
	"sync"

	"culvana/internal/models"
)

// MockInventoryRepository is an in-memory implementation of InventoryRepository.
type MockInventoryRepository struct {
	docs map[string]models.InventoryDocument
	mu   sync.RWMutex
}

// NewMockInventoryRepository creates a new instance of MockInventoryRepository.
func NewMockInventoryRepository() *MockInventoryRepository {
	return &MockInventoryRepository{
		docs: make(map[string]models.InventoryDocument),
	}
}

// Get returns a detached copy of the inventory document for an email.
// Callers mutate the returned document in place, so sharing the stored
// items slice would leak edits that were never saved.
func (r *MockInventoryRepository) Get(email string) (*models.InventoryDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[email]
	if !ok {
		return nil, ErrNotFound
	}
	doc.Items = append([]models.InventoryItem(nil), doc.Items...)
	return &doc, nil
}

// Save upserts the inventory document.
func (r *MockInventoryRepository) Save(doc *models.InventoryDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[doc.ID] = *doc
	return nil
}

// MockMenuRepository is an in-memory implementation of MenuRepository. It
// also satisfies RecipeRepository, so tests reuse it for the recipe
// container.
type MockMenuRepository struct {
	docs map[string]models.MenuDocument
	mu   sync.RWMutex
}

// NewMockMenuRepository creates a new instance of MockMenuRepository.
func NewMockMenuRepository() *MockMenuRepository {
	return &MockMenuRepository{
		docs: make(map[string]models.MenuDocument),
	}
}

// Get returns a detached copy of the menu document for an email. The
// recipes map is copied for the same reason the inventory mock copies its
// items slice.
func (r *MockMenuRepository) Get(email string) (*models.MenuDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[email]
	if !ok {
		return nil, ErrNotFound
	}
	recipes := make(map[string][]models.Recipe, len(doc.Recipes))
	for key, entries := range doc.Recipes {
		recipes[key] = append([]models.Recipe(nil), entries...)
	}
	doc.Recipes = recipes
	return &doc, nil
}

// Save upserts the menu document.
func (r *MockMenuRepository) Save(doc *models.MenuDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[doc.ID] = *doc
	return nil
}

// MockInvoiceRepository is an in-memory implementation of InvoiceRepository.
type MockInvoiceRepository struct {
	docs map[string]models.InvoiceDocument
	mu   sync.RWMutex
}

// NewMockInvoiceRepository creates a new instance of MockInvoiceRepository.
func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		docs: make(map[string]models.InvoiceDocument),
	}
}

// Get returns the invoice document for an email.
func (r *MockInvoiceRepository) Get(email string) (*models.InvoiceDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

// Seed installs an invoice document directly, for tests and local runs.
func (r *MockInvoiceRepository) Seed(doc models.InvoiceDocument) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[doc.ID] = doc
}
