package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/catalog"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/config"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/server"
)

const shutdownTimeout = 10 * time.Second

func init() {
	RootCmd.AddCommand(ServeCmd)
	ServeCmd.Flags().String(config.KeyServerAddress, ":8080", "address to listen on")
	viper.BindPFlags(ServeCmd.Flags())

	RootCmd.AddCommand(CatalogCmd)
	CatalogCmd.Flags().String(config.KeyCatalogAddress, ":3000", "address to listen on")
	CatalogCmd.Flags().String(config.KeyCatalogPublicURL, "http://localhost:3000", "URL presigned uploads are issued under")
	viper.BindPFlags(CatalogCmd.Flags())
}

var (
	ServeCmd = &cobra.Command{
		Use:   ServeCmdName,
		Short: ServeCmdShort,
		Long:  ServeCmdLong,
		RunE:  serveCmdFunc(),
	}

	CatalogCmd = &cobra.Command{
		Use:   CatalogCmdName,
		Short: CatalogCmdShort,
		Long:  CatalogCmdLong,
		RunE:  catalogCmdFunc(),
	}
)

func serveCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, uploader, err := newCatalogClient()
		if err != nil {
			return err
		}

		serve, err := server.NewHTTPServer(cfg.ServerAddress, client, uploader, logger)
		if err != nil {
			return err
		}

		logger.Info("started serve cmd", "addr", cfg.ServerAddress, "api", cfg.APIURL)
		return run(serve)
	}
}

func catalogCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		serve := catalog.NewHTTPServer(cfg.CatalogAddress, cfg.CatalogPublicURL, logger)
		logger.Info("started catalog cmd", "addr", cfg.CatalogAddress, "public", cfg.CatalogPublicURL)
		return run(serve)
	}
}

// run serves until interrupted or the listener fails.
func run(serve *http.Server) error {
	signalCh := make(chan os.Signal, 1)
	errCh := make(chan error, 1)

	go func() {
		if err := serve.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	signal.Notify(signalCh, os.Interrupt)
	defer signal.Stop(signalCh)

	select {
	case err := <-errCh:
		logger.Error("shutting down the server", "err", err)
		return err
	case sig := <-signalCh:
		logger.Info("shutdown the server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return serve.Shutdown(ctx)
}
