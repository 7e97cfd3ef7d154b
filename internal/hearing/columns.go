package hearing

// Field identifies one of the six logical columns of a hearing row.
type Field string

const (
	FieldDateTime  Field = "datetime"
	FieldCase      Field = "case_number"
	FieldPlaintiff Field = "plaintiff"
	FieldDefendant Field = "defendant"
	FieldRoom      Field = "room"
	FieldJudge     Field = "judge"
)

// DisplayFields is the fixed column order used for display and export.
var DisplayFields = []Field{
	FieldCase,
	FieldPlaintiff,
	FieldDefendant,
	FieldDateTime,
	FieldRoom,
	FieldJudge,
}

// Columns maps logical fields to source header names.
type Columns struct {
	DateTime  string
	Case      string
	Plaintiff string
	Defendant string
	Room      string
	Judge     string
}

// DefaultColumns returns the header names used by the court calendar workbook.
func DefaultColumns() Columns {
	return Columns{
		DateTime:  "Fecha y hora Audiencia",
		Case:      "Radicado",
		Plaintiff: "Demandante",
		Defendant: "Demandado",
		Room:      "Sala Audiencia",
		Judge:     "Juez",
	}
}

// Header returns the configured header for f.
func (c Columns) Header(f Field) string {
	switch f {
	case FieldDateTime:
		return c.DateTime
	case FieldCase:
		return c.Case
	case FieldPlaintiff:
		return c.Plaintiff
	case FieldDefendant:
		return c.Defendant
	case FieldRoom:
		return c.Room
	case FieldJudge:
		return c.Judge
	default:
		return ""
	}
}

// WithDefaults fills blank entries from DefaultColumns.
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	if c.DateTime == "" {
		c.DateTime = d.DateTime
	}
	if c.Case == "" {
		c.Case = d.Case
	}
	if c.Plaintiff == "" {
		c.Plaintiff = d.Plaintiff
	}
	if c.Defendant == "" {
		c.Defendant = d.Defendant
	}
	if c.Room == "" {
		c.Room = d.Room
	}
	if c.Judge == "" {
		c.Judge = d.Judge
	}
	return c
}

// DisplayHeaders returns the header names in display order.
func (c Columns) DisplayHeaders() []string {
	out := make([]string, 0, len(DisplayFields))
	for _, f := range DisplayFields {
		out = append(out, c.Header(f))
	}
	return out
}
