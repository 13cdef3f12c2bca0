package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"ideahub/internal/app"
	"ideahub/internal/config"
	"ideahub/internal/usecase"

	"github.com/spf13/cobra"
)

var (
	completenessWorkers   int
	completenessBatchSize int
	completenessRate      int
)

var completenessCmd = &cobra.Command{
	Use:   "completeness",
	Short: "Recompute the stored profile completeness of every user",
	RunE:  runCompleteness,
}

func init() {
	completenessCmd.Flags().IntVar(&completenessWorkers, "workers", 4, "Concurrent workers")
	completenessCmd.Flags().IntVar(&completenessBatchSize, "batch-size", 200, "Users fetched per page")
	completenessCmd.Flags().IntVar(&completenessRate, "rate", 0, "Max users per second (0 = unlimited)")
	rootCmd.AddCommand(completenessCmd)
}

func runCompleteness(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Printf("[Backfill] close error: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	job := usecase.NewCompletenessBackfill(c.Users, c.ProfileUC, usecase.BackfillOptions{
		Workers:   completenessWorkers,
		BatchSize: completenessBatchSize,
		RateLimit: completenessRate,
	}, logger)

	report, err := job.Run(ctx)
	logger.Printf("[Backfill] completeness finished in %s", time.Since(start).Round(time.Millisecond))
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d users failed", report.Failed)
	}
	return nil
}
