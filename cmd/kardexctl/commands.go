package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/infrastructure/csvload"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/kardex-api/pkg/config"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// errCriticalFound hace terminar el comando con código distinto de cero (uso en cron).
var errCriticalFound = errors.New("hay medicamentos en estado crítico")

// options flags compartidos por todos los subcomandos.
type options struct {
	file         string
	encoding     string
	date         string
	timezone     string
	jsonOutput   bool
	logLevel     string
	lowStockDays int
}

func (o *options) bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.file, "file", "", "CSV de medicamentos (una fila por medicamento)")
	f.StringVar(&o.encoding, "encoding", "utf-8", "Codificación del CSV: utf-8, latin1, windows-1252")
	f.StringVar(&o.date, "date", "", "Fecha de referencia AAAA-MM-DD (por defecto hoy)")
	f.StringVar(&o.timezone, "timezone", "America/Mexico_City", "Zona horaria para derivar hoy")
	f.BoolVar(&o.jsonOutput, "json", false, "Salida JSON")
	f.StringVar(&o.logLevel, "log-level", "warn", "Nivel de log en stderr: debug, info, warn, error")
	f.IntVar(&o.lowStockDays, "low-days", inventory.DefaultSettings().LowStockDays, "Días restantes para considerar stock bajo")
	_ = cmd.MarkPersistentFlagRequired("file")
}

func (o *options) settings() inventory.Settings {
	s := inventory.DefaultSettings()
	s.LowStockDays = o.lowStockDays
	return s
}

func (o *options) today(now time.Time) (time.Time, error) {
	loc := config.AppConfig{Timezone: o.timezone}.Location()
	return inventory.ReferenceDate(o.date, now.In(loc))
}

// load lee el CSV en un store en memoria. Las advertencias por fila van al log.
func (o *options) load(log *logger.Logger) (*memory.Store, error) {
	res, err := csvload.NewLoader(o.encoding).LoadFile(o.file)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		log.Warn().Str("file", o.file).Msg(w)
	}
	store := memory.NewStore()
	store.Replace(res.Residents, res.Medications)
	log.Debug().Int("residents", len(res.Residents)).Int("medications", len(res.Medications)).Msg("CSV cargado")
	return store, nil
}

func (o *options) logger(w io.Writer) *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: o.logLevel, Output: w})
}

func assessCmd(opts *options) *cobra.Command {
	var (
		filter         string
		query          string
		failOnCritical bool
	)
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Evalúa todos los medicamentos activos y los ordena por urgencia",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(cmd.Context(), opts, assessArgs{filter, query, failOnCritical}, time.Now(), cmd.OutOrStdout(), os.Stderr)
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "all | ok | low | critical | review")
	cmd.Flags().StringVar(&query, "q", "", "Buscar por medicamento o residente")
	cmd.Flags().BoolVar(&failOnCritical, "fail-on-critical", false, "Salir con error si hay medicamentos críticos")
	return cmd
}

type assessArgs struct {
	filter         string
	query          string
	failOnCritical bool
}

func runAssess(ctx context.Context, opts *options, args assessArgs, now time.Time, out, logOut io.Writer) error {
	log := opts.logger(logOut)

	filter, err := inventory.ParseFilter(args.filter)
	if err != nil {
		return fmt.Errorf("--filter %q: %w", args.filter, err)
	}
	today, err := opts.today(now)
	if err != nil {
		return fmt.Errorf("--date %q: %w", opts.date, err)
	}
	store, err := opts.load(log)
	if err != nil {
		return err
	}

	uc := inventory.NewInventoryUseCase(store, store, opts.settings(), log)
	list, err := uc.GlobalInventory(ctx, filter, args.query, today)
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		err = writeJSON(out, list)
	} else {
		err = writeInventory(out, list)
	}
	if err != nil {
		return err
	}

	if args.failOnCritical {
		for _, it := range list.Items {
			if it.Assessment.IsCritical {
				return errCriticalFound
			}
		}
	}
	return nil
}

func reportCmd(opts *options) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reporte de requerimientos: qué pedir para cubrir N días",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), opts, days, time.Now(), cmd.OutOrStdout(), os.Stderr)
		},
	}
	cmd.Flags().IntVar(&days, "days", inventory.DefaultSettings().CoverageDays, "Días de cobertura")
	return cmd
}

func runReport(ctx context.Context, opts *options, days int, now time.Time, out, logOut io.Writer) error {
	log := opts.logger(logOut)

	if days < 1 {
		return fmt.Errorf("--days debe ser mayor que cero")
	}
	today, err := opts.today(now)
	if err != nil {
		return fmt.Errorf("--date %q: %w", opts.date, err)
	}
	store, err := opts.load(log)
	if err != nil {
		return err
	}

	uc := inventory.NewRequirementUseCase(store, store, opts.settings(), log)
	rep, err := uc.Report(ctx, days, today)
	if err != nil {
		return err
	}
	if opts.jsonOutput {
		return writeJSON(out, rep)
	}
	return writeReport(out, rep)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeInventory(w io.Writer, list *dto.InventoryListDTO) error {
	fmt.Fprintf(w, "Fecha de referencia: %s  (%d medicamentos)\n\n", list.ReferenceDate, list.Total)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ESTADO\tRESIDENTE\tMEDICAMENTO\tPATRÓN\tCONSUMO/DÍA\tSTOCK\tDÍAS\tSALDO\tREVISIÓN")
	for _, it := range list.Items {
		a := it.Assessment
		review := ""
		if a.NeedsReview {
			review = "sí"
		}
		usage := a.DailyUsage.String()
		if !a.UsageKnown {
			usage = "?"
		}
		balance := "-"
		if a.BalanceText != "" {
			balance = a.BalanceText
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			a.Status, it.ResidentName, it.Name, it.DosagePattern,
			usage, a.CurrentStock.String(), a.SimpleDaysRemaining, balance, review)
	}
	return tw.Flush()
}

func writeReport(w io.Writer, rep *dto.RequirementReportDTO) error {
	fmt.Fprintf(w, "Requerimientos para %d días al %s\n", rep.CoverageDays, rep.ReferenceDate)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range rep.Residents {
		fmt.Fprintf(tw, "\n%s\n", r.Resident.Name)
		for _, l := range r.Missing {
			fmt.Fprintf(tw, "  FALTA\t%s\t%s\tnecesario %s\tstock %s\tpedir %s\n",
				l.Name, l.DosagePattern, l.Needed.String(), l.CurrentStock.String(), l.Deficit.String())
		}
		for _, l := range r.Reserve {
			fmt.Fprintf(tw, "  RESERVA\t%s\t%s\tnecesario %s\tstock %s\t\n",
				l.Name, l.DosagePattern, l.Needed.String(), l.CurrentStock.String())
		}
		for _, l := range r.NeedsReview {
			fmt.Fprintf(tw, "  REVISAR\t%s\t%s\tconsumo desconocido\tstock %s\t\n",
				l.Name, l.DosagePattern, l.CurrentStock.String())
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(rep.Totals) > 0 {
		fmt.Fprintln(w, "\nTotal a solicitar")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, t := range rep.Totals {
			fmt.Fprintf(tw, "  %s\t%s\t(%d residentes)\n", t.Name, t.Deficit.String(), t.Residents)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if rep.ReviewCount > 0 {
		fmt.Fprintf(w, "\n%d medicamentos requieren revisión del patrón de dosis\n", rep.ReviewCount)
	}
	return nil
}
