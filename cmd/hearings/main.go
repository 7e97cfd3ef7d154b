package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/hearing-board/internal/application"
	"github.com/example/hearing-board/internal/config"
	"github.com/example/hearing-board/internal/dateparser"
	"github.com/example/hearing-board/internal/logging"
	"github.com/example/hearing-board/internal/persistence/sources"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describeError(err))
		os.Exit(1)
	}
}

// app holds state shared by every subcommand once the root pre-run has
// resolved configuration.
type app struct {
	envFile string
	source  string
	sheet   string

	stdout io.Writer
	stderr io.Writer

	cfg    config.Config
	logger *slog.Logger
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "hearings",
		Short:         "Tablero de audiencias: consulta, filtrado y exportación",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "archivo .env opcional con variables HEARINGS_*")
	flags.StringVar(&a.source, "source", "", "archivo de audiencias (.xlsx, .csv o .db); reemplaza HEARINGS_SOURCE")
	flags.StringVar(&a.sheet, "sheet", "", "hoja del libro xlsx; reemplaza HEARINGS_SHEET")

	root.AddCommand(newServeCommand(a), newExportCommand(a), newCheckCommand(a))

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		if _, err := sources.KindOf(a.source); err != nil {
			return err
		}
		cfg.Source = a.source
	}
	if flags.Changed("sheet") {
		cfg.Sheet = a.sheet
	}

	a.cfg = cfg
	a.logger = logging.New(a.stderr, cfg.LogLevel)
	return nil
}

func (a *app) newHearingService() (*application.HearingService, error) {
	source, err := sources.Open(a.cfg.Source, sources.Options{
		Sheet:    a.cfg.Sheet,
		Table:    a.cfg.SQLiteTable,
		Location: a.cfg.Location,
	})
	if err != nil {
		return nil, err
	}
	return application.NewHearingServiceWithLogger(
		source,
		a.cfg.Columns,
		dateparser.New(a.cfg.Location),
		nil,
		nil,
		a.logger,
	), nil
}

// describeError expands validation errors into their field messages.
func describeError(err error) string {
	var vErr *application.ValidationError
	if !errors.As(err, &vErr) || !vErr.HasErrors() {
		return err.Error()
	}
	fields := make([]string, 0, len(vErr.FieldErrors))
	for field := range vErr.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+vErr.FieldErrors[field])
	}
	return strings.Join(parts, "; ")
}
