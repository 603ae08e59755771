package cli

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Jubris-Knifes/cardbase/client"
	"github.com/Jubris-Knifes/cardbase/config"
	"github.com/spf13/cobra"
)

type options struct {
	apiURL  string
	timeout time.Duration
	json    bool
	verbose bool
}

// NewRootCmd builds the cardctl command tree. conf supplies the flag defaults.
func NewRootCmd(conf config.Client) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "cardctl",
		Short: "Query the card database API",
		Long: `cardctl queries a running card API: list every card, show one card by
uuid, search cards by name, list set codes or the cards of one set.

Examples:
  cardctl all
  cardctl card 5f8287b1-5bb6-5f4c-ad17-316a40d5bb0c
  cardctl search bolt
  cardctl set-codes
  cardctl cards --set M10`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", conf.BaseURL, "base URL of the card API")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", conf.Timeout(), "request timeout")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print raw JSON instead of a listing")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		newAllCmd(opts),
		newCardCmd(opts),
		newSearchCmd(opts),
		newSetCodesCmd(opts),
		newCardsCmd(opts),
	)

	return root
}

func (o *options) client() (*client.Client, error) {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return client.New(o.apiURL,
		client.WithHTTPClient(&http.Client{Timeout: o.timeout}),
		client.WithLogger(logger),
	)
}
