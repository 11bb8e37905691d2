package models

// ItemLocation is a storage location attached to an inventory item.
type ItemLocation struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// InventoryItem is one entry in a user's inventory document. The JSON keys
// mirror the shapes the frontend and the invoice importer already exchange,
// spaces included, so the document stays readable by both.
//
// BatchNumber is assigned as len(items)+1 at append time and is never
// reassigned afterwards, so it is not unique across add/delete/add sequences.
type InventoryItem struct {
	Name             string         `json:"Inventory Item Name"`
	ItemType         string         `json:"Item Type"`
	NutritionalLabel string         `json:"Nutritional Label"`
	UPC              string         `json:"UPC"`
	Active           string         `json:"Active"` // "Yes" or "No"
	Category         string         `json:"Category"`
	CountBy          string         `json:"Inventory Count By"`
	UnitOfMeasure    string         `json:"Inventory Unit of Measure"`
	Locations        []ItemLocation `json:"Locations"`
	Image            string         `json:"Image"`
	Timestamp        string         `json:"timestamp"`
	BatchNumber      int            `json:"batchNumber"`
	ItemNumber       string         `json:"Item Number,omitempty"`

	// Fields below are populated by the invoice importer, not by the add
	// endpoint. They are carried so reads and recipe enrichment can project
	// them with defaults.
	SupplierName    string  `json:"Supplier Name,omitempty"`
	Brand           string  `json:"Brand,omitempty"`
	ItemName        string  `json:"Item Name,omitempty"`
	QuantityInCase  string  `json:"Quantity In a Case,omitempty"`
	MeasurementEach string  `json:"Measurement Of Each Item,omitempty"`
	MeasuredIn      string  `json:"Measured In,omitempty"`
	TotalUnits      string  `json:"Total Units,omitempty"`
	CasePrice       string  `json:"Case Price,omitempty"`
	CatchWeight     string  `json:"Catch Weight,omitempty"`
	PricedBy        string  `json:"Priced By,omitempty"`
	Splitable       string  `json:"Splitable,omitempty"`
	SplitPrice      string  `json:"Split Price,omitempty"`
	CostOfUnit      float64 `json:"Cost of a Unit,omitempty"`
}

// InventoryDocument is the single denormalized inventory document for one
// user, id = email. It is read, mutated in memory, and written back whole.
// SupplierName and Timestamp are document-level fields only the invoice
// importer sets; mutations here must carry them through untouched.
type InventoryDocument struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Items        []InventoryItem `json:"items"`
	ItemCount    int             `json:"itemCount"`
	SupplierName *string         `json:"supplier_name,omitempty"`
	Timestamp    *string         `json:"timestamp,omitempty"`
	LastUpdated  string          `json:"last_updated"`
}

// NewInventoryDocument synthesizes an empty document for a user that has no
// inventory yet. It is not persisted until the first mutation.
func NewInventoryDocument(email string) *InventoryDocument {
	return &InventoryDocument{
		ID:     email,
		UserID: email,
		Items:  []InventoryItem{},
	}
}
