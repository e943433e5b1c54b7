package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdugdh24/mentorlink-backend/internal/config"
	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http"
	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/mentorlink-backend/internal/infrastructure/database"
	"github.com/gdugdh24/mentorlink-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/mentorlink-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/mentorlink-backend/internal/infrastructure/server"
	"github.com/gdugdh24/mentorlink-backend/internal/matching"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/gdugdh24/mentorlink-backend/internal/repository/memory"
	"github.com/gdugdh24/mentorlink-backend/internal/repository/postgres"
	rediscache "github.com/gdugdh24/mentorlink-backend/internal/repository/redis"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/auth"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/match"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/mentorship"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.Client
}

// repositories groups the storage backends the use cases depend on
type repositories struct {
	founders      repository.FounderRepository
	startups      repository.StartupRepository
	mentors       repository.MentorRepository
	requests      repository.RequestRepository
	transactor    repository.Transactor
	notifications repository.NotificationRepository
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.New(cfg.Logging.Level, cfg.Server.Env)
	c := &Container{
		Config: cfg,
		Logger: log,
	}

	repos, err := c.initRepositories()
	if err != nil {
		c.Close()
		return nil, err
	}

	// Cache the mentor pool when Redis is configured
	if cfg.Redis.Enabled() {
		redisClient, err := database.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, mentor pool will not be cached", "error", err)
		} else {
			c.Redis = redisClient
			repos.mentors = rediscache.NewMentorCache(repos.mentors, redisClient, cfg.Redis.MentorPoolTTL, log)
		}
	}

	// AI drafts are optional; the template is used without a client
	var introWriter mentorship.IntroWriter
	if cfg.Gemini.APIKey != "" {
		geminiClient, err := gemini.NewClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Warn("failed to initialize gemini client", "error", err)
		} else {
			c.Gemini = geminiClient
			introWriter = geminiClient
		}
	}

	scorer, err := newScorer(cfg.Matching.Regions)
	if err != nil {
		c.Close()
		return nil, err
	}

	// Initialize use cases
	matchUseCase := match.NewMatchUseCase(
		repos.founders,
		repos.startups,
		repos.mentors,
		repos.requests,
		scorer,
		match.Limits{Default: cfg.Matching.DefaultLimit, Max: cfg.Matching.MaxLimit},
	)

	mentorshipUseCase := mentorship.NewMentorshipUseCase(
		repos.requests,
		repos.transactor,
		repos.notifications,
		repos.mentors,
		repos.founders,
		repos.startups,
		scorer,
		introWriter,
		log,
	)

	// Initialize handlers
	if err := handler.RegisterValidators(); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}
	matchHandler := handler.NewMatchHandler(matchUseCase, log)
	requestHandler := handler.NewRequestHandler(mentorshipUseCase, log)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(auth.NewTokenVerifier(cfg.JWT.AccessSecret))

	router := http.NewRouter(matchHandler, requestHandler, authMiddleware)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), log)
	return c, nil
}

func (c *Container) initRepositories() (*repositories, error) {
	switch c.Config.Storage.Type {
	case config.StorageMemory:
		c.Logger.Info("using in-memory storage")
		store := memory.NewStore()
		if path := c.Config.Storage.SeedFile; path != "" {
			if err := store.LoadSeedFile(path); err != nil {
				return nil, err
			}
		}
		return &repositories{
			founders:      store.FounderRepository(),
			startups:      store.StartupRepository(),
			mentors:       store.MentorRepository(),
			requests:      store.RequestRepository(),
			transactor:    store.Transactor(),
			notifications: store.NotificationRepository(),
		}, nil
	default:
		db, err := database.NewPostgresDB(&c.Config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		return &repositories{
			founders:      postgres.NewFounderRepository(db),
			startups:      postgres.NewStartupRepository(db),
			mentors:       postgres.NewMentorRepository(db),
			requests:      postgres.NewRequestRepository(db),
			transactor:    postgres.NewTransactor(db),
			notifications: postgres.NewNotificationRepository(db),
		}, nil
	}
}

func newScorer(overrides string) (matching.Scorer, error) {
	regions := matching.DefaultRegions()
	if overrides != "" {
		extra, err := matching.ParseRegions(overrides)
		if err != nil {
			return matching.Scorer{}, fmt.Errorf("failed to parse matching regions: %w", err)
		}
		for country, region := range extra {
			regions[country] = region
		}
	}
	return matching.NewScorer(regions), nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.Logger.Error("error closing gemini client", "error", err)
		}
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Error("error closing redis", "error", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
