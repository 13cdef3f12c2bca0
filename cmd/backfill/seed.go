package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"ideahub/internal/config"
	dbpostgres "ideahub/internal/database/postgres"
	"ideahub/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default skill and industry catalogue (idempotent)",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	r := seeder.Runner{
		Seeders: seeder.Defaults(),
		Logger:  log.New(cmd.ErrOrStderr(), "", log.LstdFlags),
	}
	return r.Run(ctx, db)
}
