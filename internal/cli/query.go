package cli

import (
	"github.com/BartekS5/gdpetl/internal/etl"
	"github.com/BartekS5/gdpetl/pkg/database"
	"github.com/spf13/cobra"
)

func NewQueryCmd(global *GlobalOptions) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "query",
		Short: "List countries at or above a GDP threshold from the embedded database",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := setup(global)
			if err != nil {
				return err
			}
			if threshold >= 0 {
				cfg.Threshold = threshold
			}

			db, err := database.OpenSQLite(c.Context(), cfg.SQLitePath)
			if err != nil {
				return err
			}
			defer db.Close()

			_, err = etl.NewQueryRunner(db, c.OutOrStdout()).RunThreshold(c.Context(), cfg.TableName, cfg.Threshold)
			return err
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", -1, "GDP threshold in billions (default from config)")

	return cmd
}
