package db

import (
	"fmt"
	"time"
)

// ToFloat64 converts a numeric value to float64.
func ToFloat64(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int64:
		return float64(val)
	case int32:
		return float64(val)
	case int:
		return float64(val)
	default:
		return 0
	}
}

// ToInt converts a numeric value to int.
func ToInt(v any) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case int32:
		return int(val)
	case float64:
		return int(val)
	case float32:
		return int(val)
	default:
		return 0
	}
}

// ToDateStr converts a value (time.Time or string) to a date string.
func ToDateStr(v any) string {
	switch d := v.(type) {
	case time.Time:
		return d.Format("2006-01-02")
	case string:
		return d
	default:
		return fmt.Sprint(v)
	}
}

// ScalarToInt converts a database scalar result to int.
func ScalarToInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// normalizeCell converts date/datetime scalars to ISO-8601 text, recursing
// into struct (map[string]any) and list ([]any) cells so a nested
// timestamp is normalized the same way a top-level one is. Every other
// value passes through unchanged. This is the single materialization-time
// transform applied to query results; callers never see a raw time.Time.
func normalizeCell(v any) any {
	switch val := v.(type) {
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	case map[string]any:
		for k, nested := range val {
			val[k] = normalizeCell(nested)
		}
		return val
	case []any:
		for i, nested := range val {
			val[i] = normalizeCell(nested)
		}
		return val
	default:
		return v
	}
}
