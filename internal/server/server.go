package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"filmdesk/internal/budget"
	"filmdesk/internal/config"
	"filmdesk/internal/database"
	"filmdesk/internal/llm"
	"filmdesk/internal/mail"
	"filmdesk/internal/metrics"
	"filmdesk/internal/repositories"
	"filmdesk/internal/session"
)

// Server owns the HTTP server and the connections behind it.
type Server struct {
	*http.Server
	pool  *pgxpool.Pool
	redis *redis.Client
}

// New connects to PostgreSQL (and Redis when configured), applies
// migrations, loads the budget model and builds the HTTP server.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	pool, err := database.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(pool, logger); err != nil {
		pool.Close()
		return nil, err
	}

	s := &Server{pool: pool}
	deps := Deps{
		Config: cfg,
		Logger: logger,
		Stores: Stores{
			Users:         repositories.NewUserRepository(pool),
			Projects:      repositories.NewProjectRepository(pool),
			Schedule:      repositories.NewScheduleRepository(pool),
			Expenses:      repositories.NewExpenseRepository(pool),
			Assets:        repositories.NewAssetRepository(pool),
			Scenes:        repositories.NewSceneRepository(pool),
			Conversations: repositories.NewConversationRepository(pool),
		},
		Metrics: metrics.New(),
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("Connected to Redis successfully", zap.String("addr", cfg.Redis.Addr))
		s.redis = rdb
		deps.Revoker = session.Revoker(repositories.NewRedisRepository(rdb))
	}

	client, err := llm.NewClient(ctx, &cfg.LLM, logger)
	switch {
	case errors.Is(err, llm.ErrNoAPIKey):
		logger.Warn("No LLM API key configured; script analysis and copilot are disabled",
			zap.String("provider", cfg.LLM.Provider))
	case err != nil:
		s.Close()
		return nil, err
	default:
		deps.LLM = client
		logger.Info("LLM client ready", zap.String("provider", client.Provider()), zap.String("model", client.Model()))
	}

	if cfg.Budget.Enabled() {
		predictor, err := budget.Load(cfg.Budget.ModelPath, cfg.Budget.ColumnsPath)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to load budget model: %w", err)
		}
		deps.Predictor = predictor
		logger.Info("Budget model loaded", zap.Int("columns", len(predictor.Columns())))
	} else {
		logger.Warn("Budget model not configured; predictions are disabled")
	}

	if cfg.Mail.Server != "" {
		deps.Mailer = mail.NewSMTPMailer(&cfg.Mail, logger)
	}

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      NewRouter(deps),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}
	return s, nil
}

// Close releases the connections opened by New.
func (s *Server) Close() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}
