package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/hearing-board/internal/hearing"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Carga el archivo de audiencias e informa qué filas se pueden usar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.newHearingService()
			if err != nil {
				return err
			}
			if _, err := svc.Reload(cmd.Context()); err != nil {
				return err
			}
			opts, err := svc.Options(cmd.Context())
			if err != nil {
				return err
			}

			rooms := make([]string, 0, len(opts.Rooms))
			for _, room := range opts.Rooms {
				rooms = append(rooms, strconv.Itoa(room))
			}

			out := a.stdout
			fmt.Fprintf(out, "Archivo: %s\n", a.cfg.Source)
			fmt.Fprintf(out, "Filas: %d\n", opts.Stats.Rows)
			fmt.Fprintf(out, "Audiencias válidas: %d\n", opts.Stats.Loaded)
			fmt.Fprintf(out, "Descartadas: %d (sin fecha: %d, fecha no reconocida: %d)\n",
				opts.Stats.Dropped(), opts.Stats.BlankDate, opts.Stats.Unparseable)
			if opts.HasDates {
				fmt.Fprintf(out, "Rango de fechas: %s a %s\n", opts.DateFrom, opts.DateTo)
			}
			fmt.Fprintf(out, "Salas: %s\n", strings.Join(rooms, ", "))
			fmt.Fprintf(out, "Jueces: %s\n", strings.Join(opts.Judges, ", "))

			conflicts := hearing.DetectConflicts(svc.Dataset().Records())
			fmt.Fprintf(out, "Conflictos de agenda: %d\n", len(conflicts))
			for _, c := range conflicts {
				label := "sala"
				if c.Type == hearing.ConflictTypeJudge {
					label = "juez"
				}
				fmt.Fprintf(out, "  %s %s %s: %s\n", c.At.Format("2006-01-02 15:04"), label, c.Key, strings.Join(c.CaseNumbers, ", "))
			}
			return nil
		},
	}
}
