package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"associates/internal/engine/paapi"
	"associates/internal/platform/clients"
)

var signPayload string

var signCmd = &cobra.Command{
	Use:   "sign <SearchItems|GetItems>",
	Short: "Print the signed headers for a request body without sending it",
	Long: `Sign a request body and print the URL and headers that would be sent.
The body is read from --payload, or from stdin when --payload is "-".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		op := paapi.Operation(args[0])
		if !op.Valid() {
			return fmt.Errorf("%w: %s", paapi.ErrUnknownOperation, args[0])
		}

		body, err := readPayload(cmd)
		if err != nil {
			return err
		}

		creds, err := clients.NewResolver(cfg.PAAPI).Defaults(cmd.Context(), "")
		if err != nil {
			return err
		}

		signer := paapi.NewSigner(creds, cfg.PAAPI.Marketplace, nil)
		signed := signer.SignBody(op, body, time.Now())

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "POST %s\n", signed.URL)
		for _, h := range signed.Headers {
			fmt.Fprintf(w, "%s: %s\n", h.Name, h.Value)
		}
		fmt.Fprintf(w, "\n%s\n", signed.Body)
		return nil
	},
}

func readPayload(cmd *cobra.Command) ([]byte, error) {
	switch signPayload {
	case "":
		return []byte("{}"), nil
	case "-":
		return io.ReadAll(cmd.InOrStdin())
	default:
		return os.ReadFile(signPayload)
	}
}

func init() {
	signCmd.Flags().StringVar(&signPayload, "payload", "", `request body file, "-" for stdin`)
}
