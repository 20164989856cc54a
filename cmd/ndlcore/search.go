package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theodi/ndlcore"
	"github.com/theodi/ndlcore/internal/render"
)

// defaultTableColumns keeps terminal output readable; csv and json carry every field.
var defaultTableColumns = []string{"title", "source", "format", "date", "_distance"}

func (a *app) searchCmd() *cobra.Command {
	var (
		limit   int
		output  string
		columns []string
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the corpus and print the results",
		Long: `Run one semantic search against the NDL Core Corpus.

Output formats:
- table: bordered table of the selected columns (default)
- csv:   every column, or the --columns selection
- json:  records plus column descriptions, as handed to an agent`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(output)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("limit") && limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}
			hasLimit := cmd.Flags().Changed("limit")

			client, err := ndlcore.New(
				ndlcore.WithBaseURL(a.cfg.API.BaseURL),
				ndlcore.WithHTTPClient(a.httpClient()),
				ndlcore.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if format == render.FormatJSON {
				var opts []ndlcore.SearchOption
				if hasLimit {
					opts = append(opts, ndlcore.WithLimit(limit))
				}
				resp, err := client.SearchAgentic(ctx, args[0], opts...)
				if err != nil {
					return err
				}
				return render.JSON(out, resp)
			}

			t, err := client.Search(ctx, args[0])
			if err != nil {
				return err
			}
			if hasLimit && limit < t.Len() {
				t.Rows = t.Rows[:limit]
			}

			switch {
			case len(columns) > 0:
				t = t.Select(columns...)
			case format == render.FormatTable:
				t = t.Select(defaultTableColumns...)
			}

			if format == render.FormatCSV {
				return render.CSV(out, t)
			}
			return render.Table(out, t, render.DefaultCellWidth)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results (default all)")
	cmd.Flags().StringVarP(&output, "output", "o", string(render.FormatTable), "Output format: table, json, csv")
	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "Columns to show for table and csv output")

	return cmd
}

func (a *app) schemaCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the corpus field registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := render.ParseFormat(output)
			if err != nil {
				return err
			}
			switch format {
			case render.FormatTable:
				return render.SchemaTable(cmd.OutOrStdout(), ndlcore.CorpusSchema())
			case render.FormatJSON:
				return render.JSON(cmd.OutOrStdout(), ndlcore.CorpusSchema())
			default:
				return fmt.Errorf("schema supports table and json output, got %s", format)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(render.FormatJSON), "Output format: json, table")
	return cmd
}
