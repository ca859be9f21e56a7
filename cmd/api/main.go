package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aryandumale04/SmartPrep/internal/ai"
	"github.com/aryandumale04/SmartPrep/internal/auth"
	"github.com/aryandumale04/SmartPrep/internal/cache"
	"github.com/aryandumale04/SmartPrep/internal/config"
	"github.com/aryandumale04/SmartPrep/internal/database"
	"github.com/aryandumale04/SmartPrep/internal/handler"
	"github.com/aryandumale04/SmartPrep/internal/logger"
	"github.com/aryandumale04/SmartPrep/internal/render"
	"github.com/aryandumale04/SmartPrep/internal/repository"
)

type application struct {
	DB         *pgxpool.Pool
	Redis      *redis.Client
	Logger     *zap.Logger
	Config     *config.Config
	Repository *repository.Repository
	Handler    *handler.Handler
	Limiter    *clientLimiter
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(cfg.Env)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()
	log.Info("config loaded", zap.Stringer("config", cfg))

	pool, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			return err
		}
		log.Info("database schema applied")
	}

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}

	app := &application{
		DB:         pool,
		Logger:     log,
		Config:     cfg,
		Repository: repository.NewRepository(pool),
		Limiter:    newClientLimiter(cfg.Limiter.RPS, cfg.Limiter.Burst),
	}

	explanations, err := app.explanationCache(ctx)
	if err != nil {
		return err
	}
	if app.Redis != nil {
		defer app.Redis.Close()
	}

	app.Handler = &handler.Handler{
		Logger:          log,
		Users:           app.Repository.User,
		Sessions:        app.Repository.PrepSession,
		Questions:       app.Repository.Question,
		AI:              ai.NewService(gen, log, ai.WithCache(explanations)),
		Renderer:        render.New(render.WithStyle(cfg.Render.CodeStyle)),
		TokenMaker:      auth.NewJWTMaker(cfg.JWT.Secret),
		AccessTokenTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
	}

	log.Info("ai provider ready", zap.String("provider", gen.Name()))
	return app.serve()
}

func newGenerator(ctx context.Context, cfg *config.Config) (ai.Generator, error) {
	switch cfg.AI.Provider {
	case "groq":
		return ai.NewGroqClient(cfg.AI.GroqAPIKey, cfg.AIModel(), cfg.AI.Timeout, ai.WithMaxTokens(cfg.AI.MaxTokens)), nil
	case "openai":
		return ai.NewOpenAIClient(cfg.AI.OpenAIAPIKey, cfg.AIModel(), cfg.AI.Timeout, ai.WithMaxTokens(cfg.AI.MaxTokens)), nil
	default:
		return ai.NewGeminiClient(ctx, cfg.AI.GeminiAPIKey, cfg.AIModel())
	}
}

// explanationCache prefers Redis and falls back to an in-process LRU when
// Redis is not configured or not reachable.
func (app *application) explanationCache(ctx context.Context) (ai.ExplanationCache, error) {
	if app.Config.UseRedis() {
		rc := cache.NewRedisClient(app.Config.Redis.Addr, app.Config.Redis.Password, app.Config.Redis.DB)
		if err := cache.Ping(ctx, rc); err != nil {
			app.Logger.Warn("redis unavailable, using in-process cache", zap.Error(err))
			_ = rc.Close()
		} else {
			app.Redis = rc
			return cache.NewRedisCache[ai.Explanation](rc, app.Config.Cache.TTL, app.Logger), nil
		}
	}
	return cache.NewLRUCache[ai.Explanation](app.Config.Cache.LRUSize)
}
