package cmd

import (
	"github.com/spf13/cobra"

	"github.com/peterkuimelis/gwentx/internal/config"
	"github.com/peterkuimelis/gwentx/internal/log"
)

func newServeCmd(a *app) *cobra.Command {
	var aiDeck int
	var quiet bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Wait for one player over TCP and play them against the AI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := a.gameServer(cmd.Context(), aiDeck)
			if err != nil {
				return err
			}
			if !quiet {
				srv.Events = log.NewTextLogger(cmd.OutOrStdout())
			}
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().String("port", "9000", "TCP port to listen on")
	cmd.Flags().Float64("ai-chance", 0.8, "probability the AI plays a card instead of passing")
	cmd.Flags().IntVar(&aiDeck, "ai-deck", 0, "AI deck number (0 = the deck after the player's)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "do not print the game log")
	mustBind(a.v, cmd.Flags(), map[string]string{
		config.KeyPort:         "port",
		config.KeyAIPlayChance: "ai-chance",
	})
	return cmd
}
