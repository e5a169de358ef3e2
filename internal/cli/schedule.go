package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/queryshv/rad-report/internal/export"
	"github.com/queryshv/rad-report/internal/importer"
	"github.com/queryshv/rad-report/internal/schedule"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a rota spreadsheet into the schedule",
		Long: `Read the first sheet of an .xlsx or .xls rota and merge every
(date, operator) pair into the schedule. Pairs sit in columns A-B and D-E
below a header row; pairs with an empty cell or an unreadable date are
skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read workbook: %w", err)
			}
			res, err := importer.ReadEntries(filepath.Base(path), data, a.log)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Empty() {
				fmt.Fprintln(out, importer.NoEntriesMessage)
				return nil
			}

			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()
			if err := store.UpsertMany(cmd.Context(), res.Entries); err != nil {
				return err
			}
			fmt.Fprintf(out, "Imported %d entries (%d skipped) into %s\n", len(res.Entries), len(res.Skipped), store.Location())
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the schedule as a spreadsheet or PDF",
		Long: `Write the schedule as operator_schedule_export.xlsx (or .pdf with
--format pdf). Use -o - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()
			rec, err := store.Get(cmd.Context())
			if err != nil {
				return err
			}

			var data []byte
			switch strings.ToLower(format) {
			case "xlsx":
				data, err = export.XLSX(rec.Entries())
				if output == "" {
					output = export.XLSXFileName
				}
			case "pdf":
				data, err = export.PDF(rec.Entries(), export.PDFOptions{FontPath: a.cfg.PDF.FontPath})
				if output == "" {
					output = export.PDFFileName
				}
			default:
				return fmt.Errorf("unknown format %q (want xlsx or pdf)", format)
			}
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(rec), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "xlsx", "export format: xlsx or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (- for stdout)")
	return cmd
}

func newScheduleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect the operator schedule",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the schedule as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()
			rec, err := store.Get(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		},
	})
	return cmd
}

func printJSON(cmd *cobra.Command, rec schedule.Record) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rec)
}
