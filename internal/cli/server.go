package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"visitor-trivia-service/internal/app"
	"visitor-trivia-service/internal/config"
	"visitor-trivia-service/internal/infra/memory"
	"visitor-trivia-service/internal/infra/opentdb"
	pgstore "visitor-trivia-service/internal/infra/postgres"
	redisstore "visitor-trivia-service/internal/infra/redis"
	"visitor-trivia-service/internal/logger"
	transport "visitor-trivia-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log := logger.Log

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	ids, cleanup, err := newIDAllocator(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	renderer, err := transport.NewTemplateRenderer()
	if err != nil {
		return err
	}

	trivia := opentdb.NewClient(cfg.Trivia.URL, config.TTLDuration(cfg.Trivia.Timeout, 10*time.Second))
	router := transport.NewRouter(transport.RouterConfig{
		Visitors: app.NewVisitorService(ids),
		Trivia:   app.NewTriviaService(trivia),
		Renderer: renderer,
		Cookies: transport.CookieOptions{
			Secure: cfg.Cookies.Secure,
			MaxAge: config.TTLDuration(cfg.Cookies.MaxAge, 0),
		},
		TriviaRateLimit: cfg.Trivia.RateLimit,
	})

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Bind, cfg.ResolvePort(portFlag)),
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.TTLDuration(cfg.Server.ShutdownTimeout, 5*time.Second))
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newIDAllocator prefers Postgres, then Redis, then the in-process counter.
func newIDAllocator(ctx context.Context, cfg config.Config) (app.IDAllocator, func(), error) {
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		logger.Log.Info().Msg("visitor ids: postgres sequence")
		return pgstore.NewIDAllocator(pool), pool.Close, nil
	case cfg.Redis.Addr != "":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		logger.Log.Info().Str("addr", cfg.Redis.Addr).Msg("visitor ids: redis")
		return redisstore.NewIDAllocator(client, cfg.Redis.Key), func() { _ = client.Close() }, nil
	default:
		logger.Log.Info().Msg("visitor ids: in-memory counter")
		return memory.NewIDAllocator(), func() {}, nil
	}
}
