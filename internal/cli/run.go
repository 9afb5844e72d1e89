package cli

import (
	"github.com/spf13/cobra"
)

func NewRunCmd(global *GlobalOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full extract, transform and load pipeline",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := setup(global)
			if err != nil {
				return err
			}
			return runPipeline(c.Context(), cfg, opts, c.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Extract and transform only, write nothing")
	cmd.Flags().Float64VarP(&opts.Threshold, "threshold", "t", -1, "GDP threshold in billions for the summary query (default from config)")
	cmd.Flags().StringVarP(&opts.URL, "url", "u", "", "Source page URL (default from config)")

	return cmd
}
