// =============================================================================
// Ordemtex - Import Command
// =============================================================================
//
// This file defines the 'import' command: gate the file, run the ingestion
// pipeline, and report what happened. Three outcomes are possible and all
// three are printed from the same ParseResult shape:
//
//   - success: every row imported, zero errors;
//   - partial: some rows imported, the rejected rows listed per row;
//   - failure: nothing imported, one file-level error.
//
// =============================================================================

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jmtavares/ordemtex/internal/ingest"
	"github.com/jmtavares/ordemtex/internal/types"
	"github.com/jmtavares/ordemtex/pkg/utils"
)

// importJSON switches the import output to JSON.
var importJSON bool

// importCmd represents the 'import' command.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Parse an ERP export and report validation results",
	Long: `The import command validates the file (extension, size), decodes the
spreadsheet container and runs every data row through normalization and
validation. Rows with errors are rejected individually; a bad row never
stops the rest of the file.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(args[0])
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(
		&importJSON,
		"json",
		false,
		"Print the full parse result as JSON",
	)
}

func runImport(path string) error {
	maxSize := int64(appConfig.MaxFileSizeMB) * 1024 * 1024
	if gate := utils.ValidateUploadPath(path, maxSize); !gate.Valid {
		return fmt.Errorf("%s", gate.Error)
	}

	result := ingest.New(logger).ParseFile(path)

	if importJSON {
		return printJSON(result)
	}

	printImportSummary(path, result)

	if result.ValidRows == 0 && len(result.Errors) > 0 {
		return fmt.Errorf("nenhuma linha importada")
	}
	return nil
}

// printImportSummary renders the human-readable import report.
func printImportSummary(path string, result *types.ParseResult) {
	fmt.Printf("=== Importação: %s ===\n", path)
	fmt.Printf("Linhas processadas: %d\n", result.TotalRows)
	fmt.Printf("Linhas válidas:     %d\n", result.ValidRows)
	fmt.Printf("Erros:              %d\n", len(result.Errors))

	for _, w := range result.Warnings {
		fmt.Printf("Aviso: %s\n", w)
	}

	if len(result.Errors) == 0 {
		return
	}

	// Group errors by row for display; file-level errors come first.
	byRow := make(map[int][]types.ValidationError)
	for _, e := range result.Errors {
		byRow[e.Row] = append(byRow[e.Row], e)
	}

	rows := make([]int, 0, len(byRow))
	for row := range byRow {
		rows = append(rows, row)
	}
	sort.Ints(rows)

	fmt.Println()
	for _, row := range rows {
		if row == 0 {
			fmt.Println("Ficheiro:")
		} else {
			fmt.Printf("Linha %d:\n", row)
		}
		for _, e := range byRow[row] {
			if e.Value != "" {
				fmt.Printf("  ✗ [%s] %s (valor: %s)\n", e.Field, e.Message, e.Value)
			} else {
				fmt.Printf("  ✗ [%s] %s\n", e.Field, e.Message)
			}
		}
	}
}

// printJSON renders any value as indented JSON on stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
