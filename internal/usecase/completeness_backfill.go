package usecase

import (
	"context"
	"log"
	"sync/atomic"

	"ideahub/internal/domain/user"
	"ideahub/internal/workerpool"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type completenessRefresher interface {
	RefreshCompleteness(ctx context.Context, userID uuid.UUID) (int, error)
}

type BackfillOptions struct {
	Workers   int
	BatchSize int
	RateLimit int
}

type BackfillReport struct {
	Processed int64
	Failed    int64
}

// CompletenessBackfill recomputes the stored completeness of every user.
type CompletenessBackfill struct {
	users     user.Repository
	refresher completenessRefresher
	opts      BackfillOptions
	logger    *log.Logger
}

func NewCompletenessBackfill(users user.Repository, refresher completenessRefresher, opts BackfillOptions, logger *log.Logger) *CompletenessBackfill {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 200
	}
	return &CompletenessBackfill{users: users, refresher: refresher, opts: opts, logger: logger}
}

func (b *CompletenessBackfill) Run(ctx context.Context) (BackfillReport, error) {
	pool := workerpool.New(b.opts.Workers, b.opts.BatchSize)
	pool.SetRateLimit(b.opts.RateLimit)

	g, gctx := errgroup.WithContext(ctx)
	results := pool.Run(gctx)

	var report BackfillReport
	g.Go(func() error {
		defer pool.Close()
		after := uuid.Nil
		for {
			ids, err := b.users.ListIDs(gctx, after, b.opts.BatchSize)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				return nil
			}
			for _, id := range ids {
				id := id
				ok := pool.Submit(gctx, workerpool.Task{
					Key: id.String(),
					Run: func(ctx context.Context) error {
						_, err := b.refresher.RefreshCompleteness(ctx, id)
						return err
					},
				})
				if !ok {
					return gctx.Err()
				}
			}
			after = ids[len(ids)-1]
			if len(ids) < b.opts.BatchSize {
				return nil
			}
		}
	})

	var processed, failed atomic.Int64
	g.Go(func() error {
		for r := range results {
			processed.Add(1)
			if r.Err != nil {
				failed.Add(1)
				b.logger.Printf("[Backfill] user=%s failed: %v", r.Key, r.Err)
			}
		}
		return nil
	})

	err := g.Wait()
	report.Processed = processed.Load()
	report.Failed = failed.Load()
	b.logger.Printf("[Backfill] done processed=%d failed=%d", report.Processed, report.Failed)
	return report, err
}
