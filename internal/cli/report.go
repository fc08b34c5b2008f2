package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"insights/api"
	shareddomain "insights/internal/shared/domain"
)

func newReportCmd(bootstrap bootstrapFunc) *cobra.Command {
	var start, end, format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the report for a date range",
		Example: "  insights report --start 2024-01-01 --end 2024-02-28\n" +
			"  insights report --start 2024-01-01 --end 2024-12-31 --format yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q (json or yaml)", format)
			}
			// période validée avant toute connexion
			dateRange, err := shareddomain.ParseDateRange(start, end)
			if err != nil {
				return err
			}

			a, _, err := bootstrap(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			bundle, err := a.Reports.GenerateReport(cmd.Context(), dateRange)
			if err != nil {
				return err
			}

			resp := api.NewReportResponse(bundle)
			out := cmd.OutOrStdout()
			if format == "yaml" {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(resp); err != nil {
					return err
				}
				return enc.Close()
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
