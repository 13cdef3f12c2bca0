package app

import (
	"context"
	"log"
	"time"

	"ideahub/internal/config"
	"ideahub/internal/database"
	dbpostgres "ideahub/internal/database/postgres"
	"ideahub/internal/infrastructure/cache"
	"ideahub/internal/infrastructure/preview"
	"ideahub/internal/pkg/jwt"
	"ideahub/internal/repository"
	"ideahub/internal/usecase"
	"ideahub/internal/ws"
)

// Container holds the shared clients and use cases for one process.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB       database.DB
	Cache    *cache.Redis
	Hub      *ws.Hub
	Verifier *jwt.HMACService

	Users         *repository.PostgresUserRepository
	Ideas         *repository.PostgresIdeaRepository
	Skills        *repository.PostgresSkillRepository
	Engagements   *repository.PostgresEngagementRepository
	Contributions *repository.PostgresContributionRepository

	ProfileUC      *usecase.Profile
	MatchingUC     *usecase.Matching
	IdeaUC         *usecase.Ideas
	EngagementUC   *usecase.Engagement
	ContributionUC *usecase.Contributions
	SkillUC        *usecase.Skill
	SearchUC       *usecase.UserSearch
	PreviewUC      *usecase.Preview
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Printf("[App] database connected host=%s db=%s", cfg.Database.DBHost, cfg.Database.DBName)

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Cache:    cache.NewRedis(cfg.Redis, logger),
		Hub:      ws.NewHub(logger),
		Verifier: jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn),

		Users:         repository.NewPostgresUserRepository(db),
		Ideas:         repository.NewPostgresIdeaRepository(db),
		Skills:        repository.NewPostgresSkillRepository(db),
		Engagements:   repository.NewPostgresEngagementRepository(db),
		Contributions: repository.NewPostgresContributionRepository(db),
	}

	notifier := ws.NewNotifier(c.Hub)

	c.ProfileUC = usecase.NewProfileUsecase(c.Users, c.Cache, logger)
	c.MatchingUC = usecase.NewMatchingUsecase(c.Users, c.Ideas, c.Cache, usecase.MatchingOptions{
		CacheTTL:      cfg.Match.CacheTTL,
		CandidatePool: cfg.Match.CandidatePool,
	}, logger)
	c.IdeaUC = usecase.NewIdeaUsecase(c.Ideas, c.Cache, logger)
	c.EngagementUC = usecase.NewEngagementUsecase(c.Ideas, c.Engagements, notifier, logger)
	c.ContributionUC = usecase.NewContributionUsecase(c.Ideas, c.Contributions, notifier, logger)
	c.SkillUC = usecase.NewSkillUsecase(c.Skills, logger)
	c.SearchUC = usecase.NewUserSearchUsecase(c.Users, c.Cache, logger)
	c.PreviewUC = usecase.NewPreviewUsecase(c.Users, preview.NewFetcher(cfg.Preview, logger), c.Cache, logger)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Printf("[App] cache close error: %v", err)
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
