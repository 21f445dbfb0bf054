package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ikkisovi/portifolio-dashboard/internal/app"
	"github.com/Ikkisovi/portifolio-dashboard/internal/logger"
)

var archivesCmd = &cobra.Command{
	Use:   "archives",
	Short: "List the price archives staged in the configured store",
	RunE:  runArchives,
}

func init() {
	rootCmd.AddCommand(archivesCmd)
}

func runArchives(cmd *cobra.Command, args []string) error {
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

	paths, err := a.ListArchives(context.Background())
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		fmt.Println("no archives staged")
		return nil
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}
