package outbound

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shandysiswandi/extractview/internal/extraction/entity"
)

// Decode reads the extraction response body. A body that is not JSON is an
// error. Valid JSON of any other shape yields empty collections, and
// collection entries that are not objects are skipped.
func Decode(raw []byte) (entity.ExtractionResult, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return entity.ExtractionResult{}, fmt.Errorf("decode response: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return entity.ExtractionResult{}, errors.New("decode response: trailing data after json value")
	}

	var data map[string]any
	if root, ok := body.(map[string]any); ok {
		data, _ = root["data"].(map[string]any)
	}

	return entity.ExtractionResult{
		Invoices:  records(data, entity.KindInvoices),
		Products:  records(data, entity.KindProducts),
		Customers: records(data, entity.KindCustomers),
	}, nil
}

func records(data map[string]any, kind entity.Kind) []entity.Record {
	items, _ := data[string(kind)].([]any)
	out := make([]entity.Record, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, entity.Record(obj))
		}
	}
	return out
}
