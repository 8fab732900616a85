package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(UploadCmd)
}

var UploadCmd = &cobra.Command{
	Use:   UploadCmdName,
	Short: UploadCmdShort,
	Args:  cobra.ExactArgs(1),
	RunE:  uploadCmdFunc(),
}

func uploadCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		_, uploader, err := newCatalogClient()
		if err != nil {
			return err
		}
		image, closeImage, err := openImage(args[0])
		if err != nil {
			return err
		}
		defer closeImage()

		objectURL, err := uploader.Upload(cmd.Context(), image)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), objectURL)
		return nil
	}
}
