package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"associates/internal/engine/paapi"
	"associates/internal/engine/products"
	"associates/internal/engine/social"
)

var (
	postPlatform string
	postCount    int
)

var postCmd = &cobra.Command{
	Use:   "post <keywords...>",
	Short: "Generate social media posts for search results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if postCount < 1 || postCount > social.MaxPosts {
			return fmt.Errorf("--count must be between 1 and %d", social.MaxPosts)
		}

		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		resp, err := client.SearchItems(cmd.Context(), strings.Join(args, " "), postCount, paapi.DefaultSearchIndex)
		if err != nil {
			return reportError(cmd, err)
		}

		w := cmd.OutOrStdout()
		for i, post := range social.BuildPosts(products.NormalizeAll(resp.Items()), postPlatform) {
			fmt.Fprintf(w, "--- Post %d: %s\n", i+1, products.Truncate(post.Product.Title, 50))
			if post.ImageURL != "" {
				fmt.Fprintf(w, "Image: %s\n", post.ImageURL)
			}
			fmt.Fprintf(w, "%s\n\n", post.Text)
		}
		return nil
	},
}

func init() {
	postCmd.Flags().StringVarP(&postPlatform, "platform", "p", social.PlatformFacebook, "facebook or instagram")
	postCmd.Flags().IntVarP(&postCount, "count", "n", 3, "number of posts (1-5)")
}
