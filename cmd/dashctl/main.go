// dashctl is the offline companion to the API server: it normalizes a raw
// records dump, applies the same filters the dashboards use and writes the
// result as CSV or XLSX.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"finadash/pkg/core/export"
	"finadash/pkg/core/filter"
	"finadash/pkg/core/normalize"
	"finadash/pkg/models"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	flagDomain   string
	flagFormat   string
	flagOut      string
	flagCurrency string
	flagSearch   string
	flagStatus   string
)

var rootCmd = &cobra.Command{
	Use:   "dashctl",
	Short: "Offline export tool for dashboard record dumps",
}

var exportCmd = &cobra.Command{
	Use:   "export <records.json>",
	Short: "Normalize, filter and export a raw records dump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		state := filter.State{
			Currency: flagCurrency,
			Search:   flagSearch,
			Status:   flagStatus,
		}

		var text string
		var written bool
		switch flagDomain {
		case "hr":
			var raws []models.RawPersonRecord
			if err := json.Unmarshal(data, &raws); err != nil {
				return fmt.Errorf("failed to parse person records: %w", err)
			}
			people := filter.ApplyPerson(normalize.NormalizePeople(raws), filter.CompilePerson(state))
			text, written, err = exportRecords(people, export.PersonColumns())
		default:
			var raws []models.RawFinancialRecord
			if err := json.Unmarshal(data, &raws); err != nil {
				return fmt.Errorf("failed to parse financial records: %w", err)
			}
			records := filter.ApplyFinancial(normalize.NormalizeFinancial(raws), filter.CompileFinancial(state))
			text, written, err = exportRecords(records, export.FinancialColumns())
		}
		if errors.Is(err, export.ErrNothingToExport) {
			fmt.Println("Nothing to export: no records match the filter.")
			return nil
		}
		if err != nil {
			return err
		}
		if written {
			fmt.Printf("Wrote %s\n", flagOut)
			return nil
		}

		if flagOut == "" || flagOut == "-" {
			fmt.Print(text)
			return nil
		}
		if err := os.WriteFile(flagOut, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Printf("Wrote %s\n", flagOut)
		return nil
	},
}

// exportRecords routes to the requested serializer. XLSX output writes the
// workbook itself (it is binary) and reports written=true; CSV returns the
// text for the caller to place.
func exportRecords[T any](records []T, columns []export.Column[T]) (string, bool, error) {
	if strings.EqualFold(flagFormat, "xlsx") {
		if flagOut == "" || flagOut == "-" {
			return "", false, fmt.Errorf("xlsx output requires --out")
		}
		if len(records) == 0 {
			return "", false, export.ErrNothingToExport
		}
		f, err := os.Create(flagOut)
		if err != nil {
			return "", false, err
		}
		defer f.Close()
		if err := export.ToXLSX(f, records, columns); err != nil {
			return "", false, err
		}
		return "", true, nil
	}
	text, err := export.ToCSV(records, columns)
	return text, false, err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dashctl %s (%s)\n", Version, runtime.Version())
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagDomain, "domain", "banking", "record domain: banking or hr")
	exportCmd.Flags().StringVar(&flagFormat, "format", "csv", "output format: csv or xlsx")
	exportCmd.Flags().StringVar(&flagOut, "out", "-", "output path, - for stdout")
	exportCmd.Flags().StringVar(&flagCurrency, "currency", "", "currency filter (3-letter code)")
	exportCmd.Flags().StringVar(&flagSearch, "search", "", "free-text filter")
	exportCmd.Flags().StringVar(&flagStatus, "status", "", "status filter")
	rootCmd.AddCommand(exportCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
