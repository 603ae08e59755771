package cli

import (
	"github.com/spf13/cobra"
)

func newAllCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "List every card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}

			cards, err := c.FetchAllCards(cmd.Context())
			if err != nil {
				return err
			}

			return printCards(cmd.OutOrStdout(), opts.json, cards)
		},
	}
}

func newCardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "card <uuid>",
		Short: "Show one card by uuid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}

			card, err := c.FetchCard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if card == nil {
				return printNotFound(cmd.OutOrStdout(), opts.json)
			}

			return printCard(cmd.OutOrStdout(), opts.json, *card)
		},
	}
}

func newSearchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Search cards whose name contains <name>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}

			cards, err := c.FetchCardBySearch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if cards == nil {
				return printNotFound(cmd.OutOrStdout(), opts.json)
			}

			return printCards(cmd.OutOrStdout(), opts.json, cards)
		},
	}
}

func newSetCodesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set-codes",
		Short: "List the distinct set codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}

			setCodes, err := c.FetchSetCodes(cmd.Context())
			if err != nil {
				return err
			}

			return printSetCodes(cmd.OutOrStdout(), opts.json, setCodes)
		},
	}
}

func newCardsCmd(opts *options) *cobra.Command {
	var setCode string

	cmd := &cobra.Command{
		Use:   "cards",
		Short: "List cards, optionally only those of one set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}

			cards, err := c.FetchCardsBySetCode(cmd.Context(), setCode)
			if err != nil {
				return err
			}

			return printCards(cmd.OutOrStdout(), opts.json, cards)
		},
	}

	cmd.Flags().StringVarP(&setCode, "set", "s", "", "only list cards of this set code")

	return cmd
}
