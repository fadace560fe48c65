package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"associates/internal/engine/paapi"
	"associates/internal/engine/products"
)

var (
	searchCount int
	searchIndex string
	searchRaw   bool
)

var searchCmd = &cobra.Command{
	Use:   "search <keywords...>",
	Short: "Search items by keywords",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		resp, err := client.SearchItems(cmd.Context(), strings.Join(args, " "), searchCount, searchIndex)
		if err != nil {
			return reportError(cmd, err)
		}

		if searchRaw {
			return printJSON(cmd.OutOrStdout(), resp.Raw)
		}
		return printJSON(cmd.OutOrStdout(), products.NormalizeAll(resp.Items()))
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchCount, "count", "n", 5, "number of results (1-10)")
	searchCmd.Flags().StringVarP(&searchIndex, "index", "i", paapi.DefaultSearchIndex, "search index")
	searchCmd.Flags().BoolVar(&searchRaw, "raw", false, "print the unmodified response")
}
