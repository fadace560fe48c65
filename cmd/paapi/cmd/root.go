// Package cmd provides the paapi command line client.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"associates/internal/engine/paapi"
	"associates/internal/pkg/logger"
	"associates/internal/platform/clients"
	"associates/internal/platform/config"
)

var (
	cfgFile     string
	marketplace string
	partnerTag  string
	verbose     bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "paapi",
	Short: "Query the Amazon Product Advertising API",
	Long: `paapi signs and sends Product Advertising API 5.0 requests using the
credentials from the config file or PAAPI_* environment variables.

Examples:
  paapi search "christmas ornaments" --count 5
  paapi items B0C76343HK B09XYZ1234
  paapi post "christmas gifts" --platform instagram
  paapi sign SearchItems --payload request.json`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if marketplace != "" {
			loaded.PAAPI.Marketplace = marketplace
		}
		if partnerTag != "" {
			loaded.PAAPI.PartnerTag = partnerTag
		}

		// stdout carries command output
		loaded.Logging.Output = "stderr"
		if verbose {
			loaded.Logging.Level = "debug"
		}
		logger.Init(loaded.Logging)

		cfg = loaded
		return nil
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", os.Getenv("CONFIG_PATH"), "config file")
	rootCmd.PersistentFlags().StringVarP(&marketplace, "marketplace", "m", "", "marketplace, e.g. www.amazon.de")
	rootCmd.PersistentFlags().StringVar(&partnerTag, "partner-tag", "", "associate tag, overrides config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(marketplacesCmd)
}

func newClient(ctx context.Context) (*paapi.Client, error) {
	return clients.NewDefaultClient(ctx, cfg.PAAPI)
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// reportError prints the client's error envelope before failing the command.
func reportError(cmd *cobra.Command, err error) error {
	if printErr := printJSON(cmd.ErrOrStderr(), paapi.ErrorEnvelope(err)); printErr != nil {
		log.Error().Err(printErr).Msg("failed to print error envelope")
	}
	return err
}

var marketplacesCmd = &cobra.Command{
	Use:   "marketplaces",
	Short: "List supported marketplaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), paapi.Marketplaces())
	},
}
