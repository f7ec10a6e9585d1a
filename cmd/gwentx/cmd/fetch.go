package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/gwentx/internal/catalog"
	"github.com/peterkuimelis/gwentx/internal/config"
)

func newFetchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the card catalog and rewrite the local cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := a.cfg.Catalog
			client := catalog.NewClient(cc.URL, a.logger)
			cat, err := catalog.NewCache(cc.Cache, client, a.logger).Refresh(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d cards to %s\n", cat.Len(), cc.Cache)
			fmt.Fprintln(cmd.OutOrStdout(), catalog.ComputeStats(cat.Cards()))
			return nil
		},
	}
	cmd.Flags().String("url", catalog.DefaultURL, "catalog API base URL")
	mustBind(a.v, cmd.Flags(), map[string]string{config.KeyCatalogURL: "url"})
	return cmd
}
