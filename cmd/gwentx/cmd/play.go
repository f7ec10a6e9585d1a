package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	gnet "github.com/peterkuimelis/gwentx/internal/net"
)

func newPlayCmd(a *app) *cobra.Command {
	var deck, aiDeck, randomDeck int

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a match against the AI in this terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := a.gameServer(cmd.Context(), aiDeck)
			if err != nil {
				return err
			}
			// Operational logs would interleave with the board.
			srv.Logger = zap.NewNop()
			srv.RandomDecks = randomDeck

			c := gnet.NewClient(nil, cmd.InOrStdin(), cmd.OutOrStdout())
			return gnet.PlayLocal(cmd.Context(), srv, deck, c)
		},
	}
	cmd.Flags().IntVar(&deck, "deck", 1, "your deck number (from the decks file)")
	cmd.Flags().IntVar(&aiDeck, "ai-deck", 0, "AI deck number (0 = the deck after yours)")
	cmd.Flags().IntVar(&randomDeck, "random-deck", 0, "play random decks of this many catalog cards instead of the decks file")
	return cmd
}
