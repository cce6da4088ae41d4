// =============================================================================
// Ordemtex - Report Command
// =============================================================================
//
// This file defines the 'report' command: load one or more exports into an
// import session and print the derived dashboard figures — the KPI block,
// the per-sector load, the per-client rollup and the status of each order.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmtavares/ordemtex/internal/ingest"
	"github.com/jmtavares/ordemtex/internal/session"
	"github.com/jmtavares/ordemtex/internal/stats"
	"github.com/jmtavares/ordemtex/internal/status"
	"github.com/jmtavares/ordemtex/internal/types"
	"github.com/jmtavares/ordemtex/pkg/utils"
)

// Report command flags.
var (
	reportJSON    bool
	reportMode    string
	reportCliente string
	reportFamilia string
	reportStatus  string
	reportSearch  string
)

// reportPayload is the JSON shape of one report run.
type reportPayload struct {
	Imports []session.ImportRecord `json:"imports"`
	KPIs    types.KPIData          `json:"kpis"`
	Sectors []types.SectorStats    `json:"sectors"`
	Clients []types.ClientStats    `json:"clients"`
}

// reportCmd represents the 'report' command.
var reportCmd = &cobra.Command{
	Use:   "report <file>...",
	Short: "Compute dashboard aggregates over one or more exports",
	Long: `The report command imports the given exports into one in-memory session
and prints the aggregates the planning dashboard is built on: KPIs,
per-sector load and the per-client rollup. Filters narrow the collection
before aggregation.`,

	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(args)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Print the report as JSON")
	reportCmd.Flags().StringVar(&reportMode, "mode", "", `Import mode: "replace" or "append" (default from config)`)
	reportCmd.Flags().StringVar(&reportCliente, "cliente", "", "Only orders of this client (exact match)")
	reportCmd.Flags().StringVar(&reportFamilia, "familia", "", "Only orders of this article family")
	reportCmd.Flags().StringVar(&reportStatus, "status", "", "Only orders with this status (em_producao, concluida, atrasada, facturada)")
	reportCmd.Flags().StringVar(&reportSearch, "search", "", "Free-text search over document, client, PO and reference")
}

func runReport(paths []string) error {
	mode := session.Mode(appConfig.ImportMode)
	if reportMode != "" {
		mode = session.Mode(reportMode)
	}
	// Reporting over several files only makes sense additively.
	if len(paths) > 1 {
		mode = session.ModeAppend
	}

	store := session.NewStore(mode)
	maxSize := int64(appConfig.MaxFileSizeMB) * 1024 * 1024
	now := time.Now()

	for _, path := range paths {
		if gate := utils.ValidateUploadPath(path, maxSize); !gate.Valid {
			return fmt.Errorf("%s: %s", path, gate.Error)
		}

		result := ingest.New(logger).ParseFile(path)
		rec := store.Apply(path, result, now)
		logger.Info().
			Str("import", rec.ID).
			Str("file", path).
			Int("valid", rec.ValidRows).
			Int("errors", rec.ErrorCount).
			Msg("export loaded")
	}

	filter := stats.Filter{
		Cliente: reportCliente,
		Familia: reportFamilia,
		Status:  types.OrderStatus(reportStatus),
		Search:  reportSearch,
	}
	orders := filter.Apply(store.Orders(), now)

	payload := reportPayload{
		Imports: store.History(),
		KPIs:    stats.KPIs(orders, now),
		Sectors: stats.SectorLoad(orders),
		Clients: stats.ClientRollup(orders),
	}

	if reportJSON || appConfig.ReportFormat == "json" {
		return printJSON(payload)
	}

	printReport(orders, payload, now)
	return nil
}

// printReport renders the human-readable dashboard report.
func printReport(orders []types.Order, p reportPayload, now time.Time) {
	fmt.Println("=== Indicadores ===")
	fmt.Printf("Encomendas em aberto:   %d\n", p.KPIs.TotalEncomendas)
	fmt.Printf("Encomendas atrasadas:   %d\n", p.KPIs.EncomendasAtrasadas)
	fmt.Printf("Entregas esta semana:   %d\n", p.KPIs.EntregasEstaSemana)
	fmt.Printf("Entregas este mês:      %d\n", p.KPIs.EntregasEsteMes)
	fmt.Printf("Taxa de cumprimento:    %d%%\n", p.KPIs.TaxaCumprimento)
	fmt.Printf("Quantidade em aberto:   %.0f\n", p.KPIs.QuantidadeEmAberto)
	fmt.Printf("Quantidade facturada:   %.0f\n", p.KPIs.QuantidadeFacturada)

	fmt.Println("\n=== Carga por sector ===")
	for _, s := range p.Sectors {
		fmt.Printf("%-18s %10.0f  (%d encomendas)\n", s.SectorName, s.Quantidade, s.NumeroEncomendas)
	}

	fmt.Println("\n=== Clientes ===")
	for _, c := range p.Clients {
		fmt.Printf("%-30s %4d encomendas  pedida %10.0f  em aberto %10.0f\n",
			c.Cliente, c.TotalEncomendas, c.QuantidadeTotal, c.EmAberto)
	}

	fmt.Println("\n=== Encomendas ===")
	for i := range orders {
		o := &orders[i]
		fmt.Printf("%-12s %-24s pedida %8.0f  aberto %8.0f  %s\n",
			o.NrDocumento, o.Cliente, o.QtdPedida, o.EmAberto, status.OrderStatus(o, now))
	}
}
