package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/api"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/config"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/upload"
)

var (
	cfg    config.Config
	logger *log.Logger
)

var RootCmd = &cobra.Command{
	Use:               RootCmdName,
	Short:             RootCmdShort,
	Long:              RootCmdLong,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func Execute() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		if logger != nil {
			logger.Error(err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(-1)
	}
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.String(config.KeyConfigFile, "", "config file (yaml, json or toml)")
	flags.String(config.KeyAPIURL, "", "catalog API base URL")
	flags.String(config.KeyLogLevel, "info", "log level (debug, info, warn, error)")
	viper.BindPFlags(flags)
	config.Setup(viper.GetViper())
}

func loadConfig(cmd *cobra.Command, args []string) error {
	// A missing .env is fine.
	_ = godotenv.Load()

	var err error
	cfg, err = config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	logger = cfg.NewLogger(os.Stderr)
	return nil
}

// newCatalogClient returns the API client and uploader for the configured API.
func newCatalogClient() (*api.Client, *upload.Uploader, error) {
	if err := cfg.RequireAPI(); err != nil {
		return nil, nil, err
	}
	client := api.NewClient(cfg.APIURL, api.WithLogger(logger))
	return client, upload.NewUploader(client, client.HTTPClient(), logger), nil
}

// openImage opens path as an upload. An empty path means no image.
func openImage(path string) (*upload.File, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open image: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat image: %w", err)
	}
	return &upload.File{Name: info.Name(), Size: info.Size(), Body: f}, func() { f.Close() }, nil
}
