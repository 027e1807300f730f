package cmd

import (
	"fmt"
	"os"

	"github.com/nguyentranbao-ct/storefront/internal/app"
	"github.com/nguyentranbao-ct/storefront/internal/catalog"
	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/server"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Storefront catalog, cart and wishlist API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (default)",
	RunE:  serve,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the product catalog the server would load, as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.Load()
		if err != nil {
			return err
		}
		c := catalog.Default()
		if conf.Catalog.File != "" {
			if c, err = catalog.Load(conf.Catalog.File); err != nil {
				return err
			}
		}
		out, err := catalog.Marshal(c)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, catalogCmd)
}

func serve(cmd *cobra.Command, args []string) error {
	conf, err := app.Setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app.Invoke(conf, server.StartServer).Run()
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
