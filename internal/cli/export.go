package cli

import (
	"os"

	"github.com/spf13/cobra"

	exportdomain "insights/internal/export/domain"
	shareddomain "insights/internal/shared/domain"
)

func newExportCmd(bootstrap bootstrapFunc) *cobra.Command {
	var start, end, format, exportType, category, out string

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export the ledger (csv, parquet) or the report (csv)",
		Example: "  insights export --start 2024-01-01 --end 2024-12-31 --format parquet --out ledger.parquet",
		RunE: func(cmd *cobra.Command, args []string) error {
			dateRange, err := shareddomain.ParseDateRange(start, end)
			if err != nil {
				return err
			}
			f, err := exportdomain.ParseExportFormat(format)
			if err != nil {
				return err
			}
			job, err := exportdomain.NewExportJob(f, exportdomain.ExportType(exportType), dateRange, category)
			if err != nil {
				return err
			}

			a, _, err := bootstrap(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := a.Exports.Export(cmd.Context(), job)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(out, data, 0o644)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&format, "format", "csv", "csv or parquet")
	cmd.Flags().StringVar(&exportType, "type", string(exportdomain.ExportTypeLedger), "ledger or report")
	cmd.Flags().StringVar(&category, "category", "", "ledger only: keep a single category")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
