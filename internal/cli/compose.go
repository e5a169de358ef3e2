package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	rerrors "github.com/queryshv/rad-report/internal/errors"
	"github.com/queryshv/rad-report/internal/report"
)

func newComposeCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "compose <draft.json>",
		Short: "Print the report text for a draft",
		Long: `Read a report draft (the JSON the report form sends), resolve every
alarm log's operator from the schedule and print the composed report.
Form problems are listed on stderr. With --strict the command fails while
any alarm log lacks a date or a known operator.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read draft: %w", err)
			}
			var d report.Draft
			if err := json.Unmarshal(data, &d); err != nil {
				return fmt.Errorf("parse draft: %w", err)
			}
			if err := d.Validate(); err != nil {
				return err
			}
			d.Normalize()

			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()
			rec, err := store.Get(cmd.Context())
			if err != nil {
				return err
			}
			d.ResolveOperators(rec)

			for _, p := range d.Problems() {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", p.Path, p.Message)
			}
			if strict && !d.Exportable() {
				return rerrors.ReportIncomplete()
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.Compose(&d))
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail unless every alarm log has a date and a known operator")
	return cmd
}
