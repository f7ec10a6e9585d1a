package cmd

import (
	"github.com/spf13/cobra"

	gnet "github.com/peterkuimelis/gwentx/internal/net"
)

func newJoinCmd(_ *app) *cobra.Command {
	var deck int
	var addr string

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Connect to a game server and play in this terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gnet.Connect(cmd.Context(), addr, deck, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&deck, "deck", 1, "deck number to use (from the server's decks file)")
	cmd.Flags().StringVar(&addr, "addr", "localhost:9000", "server address to connect to")
	return cmd
}
