package table

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shandysiswandi/extractview/internal/extraction/entity"
)

func TestRenderEmptyShowsMessage(t *testing.T) {
	cases := map[string]Variant{
		"No invoices data available":  Invoices,
		"No products data available":  Products,
		"No customers data available": Customers,
	}
	for want, variant := range cases {
		view := variant.Render(context.Background(), nil)
		if !view.Empty() {
			t.Fatalf("%s: expected empty view", variant.Kind)
		}
		if view.EmptyMessage != want {
			t.Fatalf("%s: expected %q, got %q", variant.Kind, want, view.EmptyMessage)
		}
	}
}

func TestRenderShape(t *testing.T) {
	records := []entity.Record{
		{"customerName": "Ada", "phoneNumber": "555", "totalPurchaseAmount": json.Number("12.50")},
		{"customerName": "Bob", "phoneNumber": "556", "totalPurchaseAmount": json.Number("3")},
		{"customerName": "Cy", "phoneNumber": "557", "totalPurchaseAmount": json.Number("1")},
	}

	for _, variant := range Variants() {
		view := variant.Render(context.Background(), records)
		if len(view.Rows) != len(records) {
			t.Fatalf("%s: expected %d rows, got %d", variant.Kind, len(records), len(view.Rows))
		}
		if len(view.Headers) != len(variant.Columns) {
			t.Fatalf("%s: expected %d headers, got %d", variant.Kind, len(variant.Columns), len(view.Headers))
		}
		for _, row := range view.Rows {
			if len(row.Cells) != len(variant.Columns) {
				t.Fatalf("%s: expected %d cells, got %d", variant.Kind, len(variant.Columns), len(row.Cells))
			}
		}
	}
}

func TestRenderKeyedLookupIgnoresFieldOrder(t *testing.T) {
	var rec entity.Record
	raw := `{"totalPurchaseAmount": 99.5, "phoneNumber": "0812", "customerName": "Dewi"}`
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	view := Customers.Render(context.Background(), []entity.Record{rec})
	got := []string{view.Rows[0].Cells[0].Text, view.Rows[0].Cells[1].Text, view.Rows[0].Cells[2].Text}
	want := []string{"Dewi", "0812", "99.5"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRenderLabelFallback(t *testing.T) {
	view := Customers.Render(context.Background(), []entity.Record{
		{"Customer Name": "Eka", "phoneNumber": "1", "totalPurchaseAmount": "5"},
	})

	if got := view.Rows[0].Cells[0].Text; got != "Eka" {
		t.Fatalf("expected label fallback, got %q", got)
	}
	if len(view.Rows[0].MissingFields) != 0 {
		t.Fatalf("expected no missing fields, got %v", view.Rows[0].MissingFields)
	}
}

func TestRenderFalsyAndMissing(t *testing.T) {
	view := Products.Render(context.Background(), []entity.Record{{
		"productName":  "",
		"category":     nil,
		"unitPrice":    json.Number("0"),
		"tax":          json.Number("0.00"),
		"priceWithTax": false,
	}})

	row := view.Rows[0]
	for i, cell := range row.Cells {
		if cell.Text != Placeholder {
			t.Fatalf("cell %d: expected %q, got %q", i, Placeholder, cell.Text)
		}
	}
	if row.Cells[0].Missing {
		t.Fatal("empty string is present, not missing")
	}
	if !row.Cells[5].Missing {
		t.Fatal("expected stockQuantity to be flagged missing")
	}
	if len(row.MissingFields) != 1 || row.MissingFields[0] != "stockQuantity" {
		t.Fatalf("unexpected missing fields: %v", row.MissingFields)
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "INV-1", "INV-1"},
		{"string zero stays", "0", "0"},
		{"number", json.Number("1200.50"), "1200.5"},
		{"exponent", json.Number("1e3"), "1000"},
		{"float", 2.25, "2.25"},
		{"int", 7, "7"},
		{"true", true, "true"},
		{"nested", map[string]any{"a": "b"}, `{"a":"b"}`},
		{"list", []any{"x", "y"}, `["x","y"]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatValue(tc.value); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestForUnknownKind(t *testing.T) {
	if _, ok := For(entity.Kind("orders")); ok {
		t.Fatal("expected unknown kind to be rejected")
	}
	if v, ok := For(entity.KindProducts); !ok || v.Title != "Products" {
		t.Fatalf("unexpected variant: %+v", v)
	}
}
