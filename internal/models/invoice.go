package models

// InvoiceItem is one priced line of an invoice.
type InvoiceItem struct {
	ItemNumber      string  `json:"Item Number"`
	ItemName        string  `json:"Item Name"`
	ProductCategory string  `json:"Product Category"`
	QuantityInCase  float64 `json:"Quantity In a Case"`
	MeasurementEach float64 `json:"Measurement Of Each Item"`
	MeasuredIn      string  `json:"Measured In"`
	QuantityShipped float64 `json:"Quantity Shipped"`
	ExtendedPrice   float64 `json:"Extended Price"`
	TotalUnits      float64 `json:"Total Units Ordered"`
	CasePrice       float64 `json:"Case Price"`
	CatchWeight     string  `json:"Catch Weight"`
	PricedBy        string  `json:"Priced By"`
	Splitable       string  `json:"Splitable"`
	SplitPrice      string  `json:"Split Price"`
	CostOfUnit      float64 `json:"Cost of a Unit"`
	CostOfEach      float64 `json:"Cost of Each Item"`
	Currency        string  `json:"Currency"`
	PageNumber      int     `json:"page_number"`
	ItemIndex       int     `json:"item_index"`
}

// Invoice is one supplier invoice imported for a user.
type Invoice struct {
	SupplierName    string        `json:"Supplier Name"`
	SoldToAddress   string        `json:"Sold to Address"`
	OrderDate       string        `json:"Order Date"`
	ShipDate        string        `json:"Ship Date"`
	InvoiceNumber   string        `json:"Invoice Number"`
	ShippingAddress string        `json:"Shipping Address"`
	Total           float64       `json:"Total"`
	PONumber        string        `json:"PO_NUMBER"`
	Location        string        `json:"location"`
	Status          string        `json:"status"`
	Items           []InvoiceItem `json:"Items"`
}

// InvoiceDocument holds all invoices for one user. This slice of the system
// only reads it; the invoice importer writes it.
type InvoiceDocument struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Invoices []Invoice `json:"invoices"`
}
