package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"culvana/internal/models"
)

// AggregateRecord is the storage row for one per-user aggregate document.
// The document itself is an opaque JSON blob; collection plus email is the
// composite key, mirroring container + partition key in a document store.
type AggregateRecord struct {
	Collection string    `gorm:"primaryKey;type:varchar(32)"`
	Email      string    `gorm:"primaryKey;type:varchar(255)"`
	Doc        []byte    `gorm:"type:jsonb"`
	UpdatedAt  time.Time
}

// aggregateStore handles the (un)marshalling shared by the typed
// repositories below.
type aggregateStore struct {
	db *gorm.DB
}

func (s *aggregateStore) load(collection, email string, out interface{}) error {
	var rec AggregateRecord
	err := s.db.First(&rec, "collection = ? AND email = ?", collection, email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read %s document for %s: %w", collection, email, err)
	}
	if err := json.Unmarshal(rec.Doc, out); err != nil {
		return fmt.Errorf("failed to decode %s document for %s: %w", collection, email, err)
	}
	return nil
}

func (s *aggregateStore) save(collection, email string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s document for %s: %w", collection, email, err)
	}
	rec := AggregateRecord{Collection: collection, Email: email, Doc: body}
	if err := s.db.Save(&rec).Error; err != nil {
		return fmt.Errorf("failed to upsert %s document for %s: %w", collection, email, err)
	}
	return nil
}

// GORMInventoryRepository is a GORM implementation of InventoryRepository.
type GORMInventoryRepository struct {
	store aggregateStore
}

// NewGORMInventoryRepository creates a new instance of GORMInventoryRepository.
func NewGORMInventoryRepository(db *gorm.DB) *GORMInventoryRepository {
	return &GORMInventoryRepository{store: aggregateStore{db: db}}
}

// Get reads the inventory document for an email.
func (r *GORMInventoryRepository) Get(email string) (*models.InventoryDocument, error) {
	var doc models.InventoryDocument
	if err := r.store.load(CollectionInventory, email, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save upserts the full inventory document.
func (r *GORMInventoryRepository) Save(doc *models.InventoryDocument) error {
	return r.store.save(CollectionInventory, doc.ID, doc)
}

// GORMMenuRepository is a GORM implementation of MenuRepository.
type GORMMenuRepository struct {
	store aggregateStore
}

// NewGORMMenuRepository creates a new instance of GORMMenuRepository.
func NewGORMMenuRepository(db *gorm.DB) *GORMMenuRepository {
	return &GORMMenuRepository{store: aggregateStore{db: db}}
}

// Get reads the menu document for an email.
func (r *GORMMenuRepository) Get(email string) (*models.MenuDocument, error) {
	var doc models.MenuDocument
	if err := r.store.load(CollectionMenu, email, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save upserts the full menu document.
func (r *GORMMenuRepository) Save(doc *models.MenuDocument) error {
	return r.store.save(CollectionMenu, doc.ID, doc)
}

// GORMRecipeRepository is a read-only GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	store aggregateStore
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{store: aggregateStore{db: db}}
}

// Get reads the recipe document for an email.
func (r *GORMRecipeRepository) Get(email string) (*models.MenuDocument, error) {
	var doc models.MenuDocument
	if err := r.store.load(CollectionRecipes, email, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GORMInvoiceRepository is a read-only GORM implementation of InvoiceRepository.
type GORMInvoiceRepository struct {
	store aggregateStore
}

// NewGORMInvoiceRepository creates a new instance of GORMInvoiceRepository.
func NewGORMInvoiceRepository(db *gorm.DB) *GORMInvoiceRepository {
	return &GORMInvoiceRepository{store: aggregateStore{db: db}}
}

// Get reads the invoice document for an email.
func (r *GORMInvoiceRepository) Get(email string) (*models.InvoiceDocument, error) {
	var doc models.InvoiceDocument
	if err := r.store.load(CollectionInvoices, email, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
