package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ikkisovi/portifolio-dashboard/internal/app"
	"github.com/Ikkisovi/portifolio-dashboard/internal/logger"
)

var bundleOut string

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Build the example bundle once and print it as JSON",
	RunE:  runBundle,
}

func init() {
	bundleCmd.Flags().StringVarP(&bundleOut, "out", "o", "", "write JSON to file instead of stdout")
	rootCmd.AddCommand(bundleCmd)
}

func runBundle(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	a, err := app.New(cfg, log)
	if err != nil {
		return fmt.Errorf("wiring app: %w", err)
	}

	bundle := a.Cache().Get(context.Background())

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}

	if bundleOut == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(bundleOut, data, 0644)
}
