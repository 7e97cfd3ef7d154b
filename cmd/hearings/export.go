package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/hearing-board/internal/application"
)

func newExportCommand(a *app) *cobra.Command {
	var (
		in     application.FilterInput
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta las audiencias filtradas a xlsx o csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.newHearingService()
			if err != nil {
				return err
			}
			if _, err := svc.Reload(cmd.Context()); err != nil {
				return err
			}

			var buf bytes.Buffer
			result, err := svc.Export(cmd.Context(), in, format, &buf)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err = buf.WriteTo(a.stdout)
				return err
			}
			if output == "" {
				output = result.FileName
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(a.stdout, "%d audiencias exportadas a %s\n", result.Count, output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.DateFrom, "from", "", "fecha inicial AAAA-MM-DD")
	flags.StringVar(&in.DateTo, "to", "", "fecha final AAAA-MM-DD")
	flags.StringVar(&in.TimeFrom, "time-from", "", "hora inicial HH:MM")
	flags.StringVar(&in.TimeTo, "time-to", "", "hora final HH:MM")
	flags.StringVar(&in.Room, "room", "all", `número de sala o "all"`)
	flags.StringVar(&in.Judge, "judge", "", "juez exacto")
	flags.StringVar(&in.CaseNumber, "case", "", "fragmento del número de expediente")
	flags.StringVar(&in.Party, "party", "", "fragmento del nombre de demandante o demandado")
	flags.StringVar(&format, "format", "xlsx", "formato de salida: xlsx o csv")
	flags.StringVarP(&output, "output", "o", "", `archivo de salida ("-" para stdout); por defecto audiencias_filtradas.<formato>`)
	return cmd
}
