package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/filter"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/page"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/render"
)

func init() {
	RootCmd.AddCommand(BrowseCmd)
	BrowseCmd.Flags().String("search", "", "free text matched against brand, model and description")
	BrowseCmd.Flags().String("brand", filter.All, "exact brand")
	BrowseCmd.Flags().String("price", filter.All, "price ceiling")
	BrowseCmd.Flags().String("body", filter.All, "body style: sedan, suv, truck, convertible or coupe")
	BrowseCmd.Flags().String("reserve", "", "reserve a viewing for this car id")
}

var BrowseCmd = &cobra.Command{
	Use:   BrowseCmdName,
	Short: BrowseCmdShort,
	Args:  cobra.NoArgs,
	RunE:  browseCmdFunc(),
}

func browseCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, _, err := newCatalogClient()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		store := page.NewStorefront(client, logger)
		if err := store.Load(ctx); err != nil {
			return err
		}
		query := filter.Query{
			Search: flagString(cmd, "search"),
			Brand:  flagString(cmd, "brand"),
			Price:  flagString(cmd, "price"),
			Body:   flagString(cmd, "body"),
		}
		if err := store.ApplyQuery(ctx, query); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		view := store.View()
		render.WriteOptions(out, "Brands:", view.Brands)
		render.WriteOptions(out, "Prices:", view.Prices)
		render.WriteOptions(out, "Bodies:", view.Bodies)
		render.WriteListing(out, view.Listing)

		if id := flagString(cmd, "reserve"); id != "" {
			msg, err := store.Reserve(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, msg)
		}
		return nil
	}
}
