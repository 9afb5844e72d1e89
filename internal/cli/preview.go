package cli

import (
	"fmt"
	"io"

	"github.com/BartekS5/gdpetl/internal/etl"
	"github.com/BartekS5/gdpetl/pkg/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func NewPreviewCmd(global *GlobalOptions) *cobra.Command {
	var limit int
	var url string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Fetch, extract and transform the table and print it without loading",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := setup(global)
			if err != nil {
				return err
			}
			if url != "" {
				cfg.SourceURL = url
			}

			fetcher, err := newFetcher(cfg)
			if err != nil {
				return err
			}
			markup, err := fetcher.Fetch(c.Context(), cfg.SourceURL)
			if err != nil {
				return err
			}

			tbl, err := newExtractor(cfg).Extract(markup, []string{models.ColumnCountry, models.ColumnGDPMillions})
			if err != nil {
				return err
			}
			if err := etl.NewTransformer().Transform(tbl); err != nil {
				return err
			}

			renderTable(c.OutOrStdout(), tbl, limit)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum rows to print (0 for all)")
	cmd.Flags().StringVarP(&url, "url", "u", "", "Source page URL (default from config)")

	return cmd
}

func renderTable(w io.Writer, tbl *models.Table, limit int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", tbl.Columns[0], tbl.Columns[1]})

	for i, rec := range tbl.Records {
		if limit > 0 && i >= limit {
			break
		}
		t.AppendRow(table.Row{i, rec.Country, rec.GDP})
	}
	t.AppendFooter(table.Row{"", "total", fmt.Sprintf("%d rows", tbl.Len())})

	t.SetStyle(table.StyleRounded)
	t.Render()
}
