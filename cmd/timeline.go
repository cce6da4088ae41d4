// =============================================================================
// Ordemtex - Timeline Command
// =============================================================================
//
// This file defines the 'timeline' command: parse an export and print each
// order's sector bars laid out on a day-resolution date grid. The geometry
// (inclusive start/end column per sector) is the same one the planning
// timeline view draws.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmtavares/ordemtex/internal/ingest"
	"github.com/jmtavares/ordemtex/internal/normalize"
	"github.com/jmtavares/ordemtex/internal/stats"
	"github.com/jmtavares/ordemtex/internal/types"
	"github.com/jmtavares/ordemtex/pkg/utils"
)

// Timeline command flags.
var (
	timelineFrom string
	timelineDays int
	timelineJSON bool
)

// timelineEntry is the JSON shape of one order's bars.
type timelineEntry struct {
	NrDocumento string              `json:"nrDocumento"`
	Cliente     string              `json:"cliente"`
	Bars        []types.TimelineBar `json:"bars"`
}

// timelineCmd represents the 'timeline' command.
var timelineCmd = &cobra.Command{
	Use:   "timeline <file>",
	Short: "Print sector bar geometry over a date window",
	Long: `The timeline command lays each order's sector dates out on a grid of
consecutive days and prints the resulting bars: for each sector with a
start date, the inclusive start and end columns. A sector's bar ends
where the next sector's starts.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTimeline(args[0])
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)

	timelineCmd.Flags().StringVar(
		&timelineFrom,
		"from",
		"",
		"First day of the grid, DD/MM/YYYY (default: earliest sector date)",
	)
	timelineCmd.Flags().IntVar(
		&timelineDays,
		"days",
		0,
		"Grid width in days (default from config)",
	)
	timelineCmd.Flags().BoolVar(&timelineJSON, "json", false, "Print the bars as JSON")
}

func runTimeline(path string) error {
	maxSize := int64(appConfig.MaxFileSizeMB) * 1024 * 1024
	if gate := utils.ValidateUploadPath(path, maxSize); !gate.Valid {
		return fmt.Errorf("%s", gate.Error)
	}

	result := ingest.New(logger).ParseFile(path)
	if result.ValidRows == 0 {
		return fmt.Errorf("nenhuma linha importada")
	}

	days := timelineDays
	if days <= 0 {
		days = appConfig.TimelineDays
	}

	from, err := gridStart(result.Orders)
	if err != nil {
		return err
	}
	grid := stats.DateGrid(from, days)

	var entries []timelineEntry
	for i := range result.Orders {
		o := &result.Orders[i]
		bars := stats.TimelineBars(o, grid)
		if len(bars) == 0 {
			continue
		}
		entries = append(entries, timelineEntry{
			NrDocumento: o.NrDocumento,
			Cliente:     o.Cliente,
			Bars:        bars,
		})
	}

	if timelineJSON {
		return printJSON(entries)
	}

	fmt.Printf("=== Cronograma: %s a %s ===\n",
		normalize.FormatDMY(grid[0]), normalize.FormatDMY(grid[len(grid)-1]))
	for _, entry := range entries {
		fmt.Printf("%s  %s\n", entry.NrDocumento, entry.Cliente)
		for _, bar := range entry.Bars {
			marker := " "
			if bar.Active {
				marker = "*"
			}
			fmt.Printf("  %s %-18s colunas %2d..%-2d  qtd %.0f\n",
				marker, bar.SectorName, bar.StartIdx, bar.EndIdx, bar.Quantity)
		}
	}
	return nil
}

// gridStart resolves the first day of the grid: the --from flag when
// given, otherwise the earliest sector start date across all orders.
func gridStart(orders []types.Order) (time.Time, error) {
	if timelineFrom != "" {
		d, ok := normalize.ParseDMY(timelineFrom)
		if !ok {
			return time.Time{}, fmt.Errorf("data inválida %q (use DD/MM/YYYY)", timelineFrom)
		}
		return d, nil
	}

	var earliest time.Time
	for i := range orders {
		o := &orders[i]
		for _, field := range []string{o.DataTec, o.DataFelpoCru, o.DataTint, o.DataConf, o.DataArmExp, o.DataEnt} {
			if d, ok := normalize.ParseDMY(field); ok {
				if earliest.IsZero() || d.Before(earliest) {
					earliest = d
				}
			}
		}
	}

	if earliest.IsZero() {
		return time.Time{}, fmt.Errorf("nenhuma data de sector encontrada")
	}
	return earliest, nil
}
