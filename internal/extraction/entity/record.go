package entity

// Record is one extracted row keyed by field name, as sent by the extraction
// service. Values are strings, json.Number, or nil; nothing is enforced.
type Record map[string]any

// ExtractionResult bundles the three collections returned by one upload.
type ExtractionResult struct {
	Invoices  []Record `json:"invoices"`
	Products  []Record `json:"products"`
	Customers []Record `json:"customers"`
}

// Collection returns the records for kind, or nil for an unknown kind.
func (r ExtractionResult) Collection(kind Kind) []Record {
	switch kind {
	case KindInvoices:
		return r.Invoices
	case KindProducts:
		return r.Products
	case KindCustomers:
		return r.Customers
	default:
		return nil
	}
}

// Normalize replaces absent collections with empty ones.
func (r ExtractionResult) Normalize() ExtractionResult {
	if r.Invoices == nil {
		r.Invoices = []Record{}
	}
	if r.Products == nil {
		r.Products = []Record{}
	}
	if r.Customers == nil {
		r.Customers = []Record{}
	}
	return r
}

// Counts reports the collection sizes keyed by kind.
func (r ExtractionResult) Counts() map[Kind]int {
	return map[Kind]int{
		KindInvoices:  len(r.Invoices),
		KindProducts:  len(r.Products),
		KindCustomers: len(r.Customers),
	}
}
