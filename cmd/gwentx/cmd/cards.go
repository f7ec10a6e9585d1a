package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/gwentx/internal/catalog"
	"github.com/peterkuimelis/gwentx/internal/game"
)

func newCardsCmd(a *app) *cobra.Command {
	var faction string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "cards",
		Short: "List the card catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			cards := cat.Cards()
			if faction != "" {
				cards = cat.ByFaction(game.ParseFaction(faction))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(catalog.Records(cards))
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tFACTION\tTYPE\tPOWER\tROW\tEFFECTS")
			for _, c := range cards {
				power, row := "-", "-"
				if c.HasPower {
					power = fmt.Sprint(c.Power)
				}
				if c.Row.Valid() {
					row = c.Row.String()
				}
				kind := c.Category.String()
				if c.IsGold() {
					kind += " (gold)"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					c.ID, c.Name, c.Faction, kind, power, row, c.Effects)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out, catalog.ComputeStats(cards))
			return nil
		},
	}
	cmd.Flags().StringVar(&faction, "faction", "", "only list this faction (plus neutral cards)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON records")
	return cmd
}
