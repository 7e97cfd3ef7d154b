package persistence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row is one data row of a tabular source. Cells hold whatever the source
// produced: string, time.Time, numeric values, or nil for empty cells.
type Row []any

// At returns the cell at index i, or nil when the row is shorter.
func (r Row) At(i int) any {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}

// Table is a header plus rows as read from a workbook sheet, a CSV file or a
// database table.
type Table struct {
	Header []string
	Rows   []Row
}

// Index maps each trimmed header name to its first column position.
func (t Table) Index() map[string]int {
	idx := make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, exists := idx[name]; !exists {
			idx[name] = i
		}
	}
	return idx
}

// TimestampLayout is used wherever a native timestamp has to become text.
const TimestampLayout = "2006-01-02 15:04:05"

// CellText renders a cell the way it should appear in a text column.
func CellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(TimestampLayout)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
