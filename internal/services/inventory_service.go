package services

import (
	"errors"
	"fmt"
	"time"

	"culvana/internal/models"
	"culvana/internal/repositories"
)

// InventoryItemInput carries the caller-supplied fields for an inventory
// add or update. Optional fields default to empty strings on the stored
// item; Active defaults to "Yes" unless explicitly false.
type InventoryItemInput struct {
	Name             string
	ItemType         string
	NutritionalLabel string
	UPC              string
	Active           *bool
	Category         string
	CountBy          string
	UnitOfMeasure    string
	Locations        []models.ItemLocation
	Image            string
}

// InventoryItemView is the projection of one item returned by list reads.
// Every field is always present; values the item never had render as the
// zero default rather than being omitted.
type InventoryItemView struct {
	SupplierName    string  `json:"Supplier Name"`
	Name            string  `json:"Inventory Item Name"`
	UnitOfMeasure   string  `json:"Inventory Unit of Measure"`
	Brand           string  `json:"Brand"`
	ItemName        string  `json:"Item Name"`
	ItemNumber      string  `json:"Item Number"`
	QuantityInCase  string  `json:"Quantity In a Case"`
	MeasurementEach string  `json:"Measurement Of Each Item"`
	MeasuredIn      string  `json:"Measured In"`
	TotalUnits      string  `json:"Total Units"`
	CasePrice       string  `json:"Case Price"`
	CatchWeight     string  `json:"Catch Weight"`
	PricedBy        string  `json:"Priced By"`
	Splitable       string  `json:"Splitable"`
	SplitPrice      string  `json:"Split Price"`
	CostOfUnit      float64 `json:"Cost of a Unit"`
	Category        string  `json:"Category"`
	Timestamp       string  `json:"timestamp"`
	BatchNumber     int     `json:"batchNumber"`
}

// InventoryView is the list-read result for one user.
type InventoryView struct {
	Items        []InventoryItemView
	SupplierName *string
	Timestamp    *string
	ItemCount    int
}

// InventoryService applies read-modify-write mutations to the per-user
// inventory document. Every mutation loads the whole document, changes it
// in memory, and writes it back with a full-document upsert.
type InventoryService struct {
	repo repositories.InventoryRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(repo repositories.InventoryRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
	}
}

// load reads the user's document, synthesizing an empty one when the user
// has none yet. The synthesized document is not persisted until a mutation
// saves it.
func (s *InventoryService) load(email string) (*models.InventoryDocument, error) {
	doc, err := s.repo.Get(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.NewInventoryDocument(email), nil
		}
		return nil, fmt.Errorf("failed to load inventory for %s: %w", email, err)
	}
	return doc, nil
}

// AddItem appends a new item to the user's inventory. The batch number is
// the item count plus one at the time of the append and is never
// reassigned, even after deletions.
func (s *InventoryService) AddItem(email string, input InventoryItemInput) (*models.InventoryItem, error) {
	doc, err := s.load(email)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	active := "Yes"
	if input.Active != nil && !*input.Active {
		active = "No"
	}
	locations := make([]models.ItemLocation, 0, len(input.Locations))
	for _, loc := range input.Locations {
		if loc.Status == "" {
			loc.Status = "active"
		}
		locations = append(locations, loc)
	}

	item := models.InventoryItem{
		Name:             input.Name,
		ItemType:         input.ItemType,
		NutritionalLabel: input.NutritionalLabel,
		UPC:              input.UPC,
		Active:           active,
		Category:         input.Category,
		CountBy:          input.CountBy,
		UnitOfMeasure:    input.UnitOfMeasure,
		Locations:        locations,
		Image:            input.Image,
		Timestamp:        now,
		BatchNumber:      len(doc.Items) + 1,
	}

	doc.Items = append(doc.Items, item)
	doc.ItemCount = len(doc.Items)
	doc.LastUpdated = now

	if err := s.repo.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to save inventory for %s: %w", email, err)
	}
	return &item, nil
}

// UpdateItem overwrites the first item whose item number matches, keeping
// its position in the list. A user with no document at all yields
// ErrDocumentNotFound; a document without the item yields ErrItemNotFound.
func (s *InventoryService) UpdateItem(email, itemNumber string, input InventoryItemInput) (*models.InventoryItem, error) {
	doc, err := s.repo.Get(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to load inventory for %s: %w", email, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var updated *models.InventoryItem
	for i := range doc.Items {
		if doc.Items[i].ItemNumber != itemNumber {
			continue
		}
		item := &doc.Items[i]
		item.Name = input.Name
		item.ItemType = input.ItemType
		item.NutritionalLabel = input.NutritionalLabel
		item.UPC = input.UPC
		if input.Active != nil && !*input.Active {
			item.Active = "No"
		} else {
			item.Active = "Yes"
		}
		item.Category = input.Category
		item.CountBy = input.CountBy
		item.UnitOfMeasure = input.UnitOfMeasure
		item.Locations = input.Locations
		item.Image = input.Image
		item.Timestamp = now
		updated = item
		break
	}
	if updated == nil {
		return nil, ErrItemNotFound
	}

	doc.LastUpdated = now
	if err := s.repo.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to save inventory for %s: %w", email, err)
	}
	return updated, nil
}

// DeleteItem drops every item whose item number matches and returns the
// remaining item count. Surviving items keep their original batch numbers.
func (s *InventoryService) DeleteItem(email, itemNumber string) (int, error) {
	doc, err := s.repo.Get(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrDocumentNotFound
		}
		return 0, fmt.Errorf("failed to load inventory for %s: %w", email, err)
	}

	remaining := doc.Items[:0:0]
	for _, item := range doc.Items {
		if item.ItemNumber != itemNumber {
			remaining = append(remaining, item)
		}
	}
	if len(remaining) == len(doc.Items) {
		return 0, ErrItemNotFound
	}

	doc.Items = remaining
	doc.ItemCount = len(remaining)

	if err := s.repo.Save(doc); err != nil {
		return 0, fmt.Errorf("failed to save inventory for %s: %w", email, err)
	}
	return doc.ItemCount, nil
}

// GetInventory returns the formatted inventory for a user. A user with no
// document gets an empty view, never an error.
func (s *InventoryService) GetInventory(email string) (*InventoryView, error) {
	doc, err := s.repo.Get(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &InventoryView{Items: []InventoryItemView{}}, nil
		}
		return nil, fmt.Errorf("failed to load inventory for %s: %w", email, err)
	}

	items := make([]InventoryItemView, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, formatInventoryItem(item))
	}
	return &InventoryView{
		Items:        items,
		SupplierName: doc.SupplierName,
		Timestamp:    doc.Timestamp,
		ItemCount:    len(items),
	}, nil
}

// formatInventoryItem projects a stored item onto the list-read shape.
func formatInventoryItem(item models.InventoryItem) InventoryItemView {
	return InventoryItemView{
		SupplierName:    item.SupplierName,
		Name:            item.Name,
		UnitOfMeasure:   item.UnitOfMeasure,
		Brand:           item.Brand,
		ItemName:        item.ItemName,
		ItemNumber:      item.ItemNumber,
		QuantityInCase:  item.QuantityInCase,
		MeasurementEach: item.MeasurementEach,
		MeasuredIn:      item.MeasuredIn,
		TotalUnits:      item.TotalUnits,
		CasePrice:       item.CasePrice,
		CatchWeight:     item.CatchWeight,
		PricedBy:        item.PricedBy,
		Splitable:       item.Splitable,
		SplitPrice:      item.SplitPrice,
		CostOfUnit:      item.CostOfUnit,
		Category:        item.Category,
		Timestamp:       item.Timestamp,
		BatchNumber:     item.BatchNumber,
	}
}
