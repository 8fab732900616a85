package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/page"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/render"
)

func init() {
	RootCmd.AddCommand(CarsCmd)
	CarsCmd.AddCommand(carsListCmd, carsGetCmd, carsCreateCmd, carsUpdateCmd, carsDeleteCmd)

	for _, c := range []*cobra.Command{carsCreateCmd, carsUpdateCmd} {
		c.Flags().String("brand", "", "brand")
		c.Flags().String("model", "", "model")
		c.Flags().String("year", "", "model year")
		c.Flags().String("price", "", "price in USD")
		c.Flags().String("mileage", "", "mileage in miles")
		c.Flags().String("description", "", "free text description")
		c.Flags().String("image", "", "path of an image to upload")
	}
}

var (
	CarsCmd = &cobra.Command{
		Use:   CarsCmdName,
		Short: CarsCmdShort,
	}

	carsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List every car",
		Args:  cobra.NoArgs,
		RunE:  carsListCmdFunc(),
	}

	carsGetCmd = &cobra.Command{
		Use:   "get <carId>",
		Short: "Show one car",
		Args:  cobra.ExactArgs(1),
		RunE:  carsGetCmdFunc(),
	}

	carsCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a car, uploading --image first when given",
		Args:  cobra.NoArgs,
		RunE:  carsCreateCmdFunc(),
	}

	carsUpdateCmd = &cobra.Command{
		Use:   "update <carId>",
		Short: "Update a car; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE:  carsUpdateCmdFunc(),
	}

	carsDeleteCmd = &cobra.Command{
		Use:   "delete <carId>",
		Short: "Delete a car",
		Args:  cobra.ExactArgs(1),
		RunE:  carsDeleteCmdFunc(),
	}
)

func carsListCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, _, err := newCatalogClient()
		if err != nil {
			return err
		}
		inv := page.NewInventory(client, logger)
		if err := inv.Load(cmd.Context()); err != nil {
			return err
		}
		render.WriteListing(cmd.OutOrStdout(), inv.View())
		return nil
	}
}

func carsGetCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, _, err := newCatalogClient()
		if err != nil {
			return err
		}
		details := page.NewDetails(client, logger)
		if err := details.Open(cmd.Context(), args[0]); err != nil {
			return err
		}
		view, err := details.View()
		if err != nil {
			return err
		}
		render.WriteDetail(cmd.OutOrStdout(), view)
		return nil
	}
}

func carsCreateCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, uploader, err := newCatalogClient()
		if err != nil {
			return err
		}
		image, closeImage, err := openImage(flagString(cmd, "image"))
		if err != nil {
			return err
		}
		defer closeImage()

		add := page.NewAddCar(client, uploader, logger)
		if err := add.SelectImage(cmd.Context(), image); err != nil {
			return err
		}
		car, err := add.Submit(cmd.Context(), formFromFlags(cmd, page.CarForm{}))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Car created: %s\n", car.CarID)
		return nil
	}
}

func carsUpdateCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, uploader, err := newCatalogClient()
		if err != nil {
			return err
		}
		edit := page.NewEditCar(client, uploader, logger)
		if err := edit.Open(cmd.Context(), args[0]); err != nil {
			return err
		}

		image, closeImage, err := openImage(flagString(cmd, "image"))
		if err != nil {
			return err
		}
		defer closeImage()
		if err := edit.SelectImage(cmd.Context(), image); err != nil {
			return err
		}

		if _, err := edit.Submit(cmd.Context(), formFromFlags(cmd, edit.Form())); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Car updated: %s\n", args[0])
		return nil
	}
}

func carsDeleteCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, _, err := newCatalogClient()
		if err != nil {
			return err
		}
		if err := client.DeleteCar(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Car deleted: %s\n", args[0])
		return nil
	}
}

// formFromFlags overlays the flags the user set on base.
func formFromFlags(cmd *cobra.Command, base page.CarForm) page.CarForm {
	for name, dst := range map[string]*string{
		"brand":       &base.Brand,
		"model":       &base.Model,
		"year":        &base.Year,
		"price":       &base.Price,
		"mileage":     &base.Mileage,
		"description": &base.Description,
	} {
		if cmd.Flags().Changed(name) {
			*dst = flagString(cmd, name)
		}
	}
	return base
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
