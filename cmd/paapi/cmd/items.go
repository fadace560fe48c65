package cmd

import (
	"github.com/spf13/cobra"

	"associates/internal/engine/products"
	"associates/internal/pkg/parser"
	"associates/internal/pkg/validator"
)

var itemsCmd = &cobra.Command{
	Use:   "items <asin>...",
	Short: "Look up items by ASIN",
	Long: `Look up up to ten items. ASINs may be given as separate arguments or
as one comma separated list.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ids []string
		for _, arg := range args {
			ids = append(ids, parser.ParseItemIDs(arg)...)
		}
		if err := validator.ValidateASINs(ids); err != nil {
			return err
		}

		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		resp, err := client.GetItems(cmd.Context(), ids)
		if err != nil {
			return reportError(cmd, err)
		}

		type detail struct {
			Product       products.Record `json:"product"`
			VariantImages []string        `json:"variant_images"`
		}
		out := []detail{}
		for _, item := range resp.Items() {
			out = append(out, detail{
				Product:       products.Normalize(item),
				VariantImages: products.VariantImages(item, 4),
			})
		}
		for _, e := range resp.Errors() {
			cmd.PrintErrf("%s: %s\n", e.Code, e.Message)
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}
