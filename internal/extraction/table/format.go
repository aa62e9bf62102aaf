package table

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// formatValue renders one cell. nil, "", false and numeric zero are falsy
// and become the placeholder.
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return Placeholder
	case string:
		if v == "" {
			return Placeholder
		}
		return v
	case bool:
		if !v {
			return Placeholder
		}
		return strconv.FormatBool(v)
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return v.String()
		}
		return formatDecimal(d)
	case float64:
		return formatDecimal(decimal.NewFromFloat(v))
	case float32:
		return formatDecimal(decimal.NewFromFloat32(v))
	case int:
		return formatDecimal(decimal.NewFromInt(int64(v)))
	case int64:
		return formatDecimal(decimal.NewFromInt(v))
	case int32:
		return formatDecimal(decimal.NewFromInt32(v))
	case map[string]any, []any:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	default:
		return fmt.Sprint(v)
	}
}

func formatDecimal(d decimal.Decimal) string {
	if d.IsZero() {
		return Placeholder
	}
	return d.String()
}
