package table

import "github.com/shandysiswandi/extractview/internal/extraction/entity"

// Column pairs a header label with the record key that feeds it.
type Column struct {
	Label string
	Key   string
}

// Variant fixes the column list for one record kind.
type Variant struct {
	Kind    entity.Kind
	Title   string
	Columns []Column
}

//nolint:gochecknoglobals // fixed column layouts
var (
	Invoices = Variant{
		Kind:  entity.KindInvoices,
		Title: "Invoices",
		Columns: []Column{
			{Label: "Serial Number", Key: "serialNumber"},
			{Label: "Customer Name", Key: "customerName"},
			{Label: "Product Name", Key: "productName"},
			{Label: "Quantity", Key: "qty"},
			{Label: "Tax", Key: "tax"},
			{Label: "Total Amount", Key: "totalAmount"},
			{Label: "Date", Key: "date"},
		},
	}

	Products = Variant{
		Kind:  entity.KindProducts,
		Title: "Products",
		Columns: []Column{
			{Label: "Product Name", Key: "productName"},
			{Label: "Category", Key: "category"},
			{Label: "Unit Price", Key: "unitPrice"},
			{Label: "Tax", Key: "tax"},
			{Label: "Price with Tax", Key: "priceWithTax"},
			{Label: "Stock Quantity", Key: "stockQuantity"},
		},
	}

	Customers = Variant{
		Kind:  entity.KindCustomers,
		Title: "Customers",
		Columns: []Column{
			{Label: "Customer Name", Key: "customerName"},
			{Label: "Phone Number", Key: "phoneNumber"},
			{Label: "Total Purchase Amount", Key: "totalPurchaseAmount"},
		},
	}
)

// Variants returns the three layouts in tab order.
func Variants() []Variant {
	return []Variant{Invoices, Products, Customers}
}

// For returns the layout for kind.
func For(kind entity.Kind) (Variant, bool) {
	for _, v := range Variants() {
		if v.Kind == kind {
			return v, true
		}
	}
	return Variant{}, false
}

// Labels returns the header labels in column order.
func (v Variant) Labels() []string {
	out := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		out[i] = c.Label
	}
	return out
}
