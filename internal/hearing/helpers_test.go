package hearing

import (
	"time"

	"github.com/example/hearing-board/internal/persistence"
)

func sampleHeader() []string {
	return []string{" Radicado", "Demandante", "Demandado", "Fecha y hora Audiencia ", "Sala Audiencia", "Juez"}
}

func sampleTable() persistence.Table {
	return persistence.Table{
		Header: sampleHeader(),
		Rows: []persistence.Row{
			{"2025-001", "Ana Pérez", "Banco Andino", "21 de enero de 2026 2:00 pm", "3", "Juez Gómez"},
			{"2025-002", "Luis Mora", "Constructora Sur", "21 de enero de 2026 9:00 am", "1", "Juez Ruiz "},
			{"2025-003", "Carla Díaz", "Seguros Altos", time.Date(2026, time.January, 22, 10, 30, 0, 0, time.UTC), "Virtual", "Juez Gómez"},
			{"2025-004", "Pedro Ríos", "Ana Pérez", "22 de enero de 2026 8:00 am", float64(3), "Juez Ruiz"},
			{"2025-005", "Marta Gil", "Transportes Río", "", "2", "Juez Gómez"},
			{"2025-006", "Jorge León", "Alimentos Sol", "no programada", "2", "Juez Gómez"},
			{"2025-007", "Sofía Vega", "Banco Andino", "23 de setiembre de 2026 11:15 am", "2.0", "Juez Ruiz"},
		},
	}
}

func mustLoad(table persistence.Table) *Dataset {
	ds, err := Load(table, DefaultColumns(), nil)
	if err != nil {
		panic(err)
	}
	return ds
}

func caseNumbers(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.CaseNumber)
	}
	return out
}
