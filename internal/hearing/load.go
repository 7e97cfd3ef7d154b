package hearing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/example/hearing-board/internal/dateparser"
	"github.com/example/hearing-board/internal/persistence"
)

// LoadStats summarises what happened to the source rows.
type LoadStats struct {
	Rows        int
	Loaded      int
	BlankDate   int
	Unparseable int
}

// Dropped is the number of rows excluded from the working set.
func (s LoadStats) Dropped() int {
	return s.BlankDate + s.Unparseable
}

type columnIndex struct {
	dateTime, caseNumber, plaintiff, defendant, room, judge int
}

func resolveColumns(header []string, cols Columns) (columnIndex, error) {
	index := persistence.Table{Header: header}.Index()
	missing := &MissingColumnsError{}
	lookup := func(f Field) int {
		name := strings.TrimSpace(cols.Header(f))
		i, ok := index[name]
		if !ok {
			missing.Fields = append(missing.Fields, f)
			missing.Headers = append(missing.Headers, name)
			return -1
		}
		return i
	}

	idx := columnIndex{
		dateTime:   lookup(FieldDateTime),
		caseNumber: lookup(FieldCase),
		plaintiff:  lookup(FieldPlaintiff),
		defendant:  lookup(FieldDefendant),
		room:       lookup(FieldRoom),
		judge:      lookup(FieldJudge),
	}
	if len(missing.Fields) > 0 {
		return columnIndex{}, missing
	}
	return idx, nil
}

// Load resolves the configured columns against table, parses every date/time
// cell once and returns the resulting dataset. Rows with a blank or
// unparseable date/time are dropped and counted. A nil parser uses UTC.
func Load(table persistence.Table, cols Columns, parser *dateparser.Parser) (*Dataset, error) {
	if parser == nil {
		parser = dateparser.New(nil)
	}
	idx, err := resolveColumns(table.Header, cols.WithDefaults())
	if err != nil {
		return nil, err
	}

	stats := LoadStats{Rows: len(table.Rows)}
	records := make([]Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		raw := row.At(idx.dateTime)
		if isBlank(raw) {
			stats.BlankDate++
			continue
		}
		res := parser.Parse(raw)
		if !res.OK() {
			stats.Unparseable++
			continue
		}
		records = append(records, newRecord(row, idx, raw, res.Time()))
	}
	stats.Loaded = len(records)

	return newDataset(records, cols.WithDefaults(), stats), nil
}

func newRecord(row persistence.Row, idx columnIndex, raw any, at time.Time) Record {
	r := Record{
		CaseNumber:  persistence.CellText(row.At(idx.caseNumber)),
		Plaintiff:   persistence.CellText(row.At(idx.plaintiff)),
		Defendant:   persistence.CellText(row.At(idx.defendant)),
		RawDateTime: raw,
		Room:        persistence.CellText(row.At(idx.room)),
		Judge:       persistence.CellText(row.At(idx.judge)),
		At:          at,
		Date:        civil.DateOf(at),
		Clock:       civil.TimeOf(at),
	}
	r.RoomNumber, r.HasRoomNumber = parseRoom(r.Room)
	return r
}

// parseRoom accepts finite numeric text such as "3" or "3.0".
func parseRoom(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []byte:
		return strings.TrimSpace(string(val)) == ""
	}
	return false
}
