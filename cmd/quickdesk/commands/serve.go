package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShardulMane20/Quick-Desk/internal/api"
	"github.com/ShardulMane20/Quick-Desk/internal/api/handler"
	"github.com/ShardulMane20/Quick-Desk/internal/core/service"
	"github.com/ShardulMane20/Quick-Desk/internal/infrastructure/db/mongo"
	"github.com/ShardulMane20/Quick-Desk/internal/infrastructure/db/redis"
	"github.com/ShardulMane20/Quick-Desk/internal/infrastructure/queue"
	"github.com/ShardulMane20/Quick-Desk/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Connect to MongoDB and Redis, start the change dispatcher and serve the
HTTP API until SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log := bootstrap()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := connectMongo(ctx, cfg)
	if err != nil {
		return printError("Cannot reach MongoDB", err, "Check MONGO_URI and that the server is running.")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := connectRedis(ctx, cfg)
	if err != nil {
		return printError("Cannot reach Redis", err, "Check REDIS_ADDR and that the server is running.")
	}
	defer rdb.Close()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Warn().Err(err).Msg("index creation failed; continuing")
	}

	// --- Persistence ---
	users := mongo.NewUserRepository(db)
	tickets := mongo.NewTicketRepository(db)
	messages := mongo.NewMessageRepository(db)
	events := mongo.NewEventRepository(db)
	categories := mongo.NewCategoryRepository(db)
	stats := mongo.NewStatsRepository(db)

	tokens := redis.NewTokenStore(rdb)
	feed := redis.NewFeed(rdb)

	// --- Change pipeline ---
	changes := service.NewChangeService(events, feed, redis.NewDedupChecker(rdb), logger.Component("changes"))
	dispatcher := queue.NewDispatcher(cfg.DispatchWorkers, changes, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	// --- Use cases ---
	svc := api.Services{
		Auth:      service.NewAuthService(users, tokens, cfg.JWTSecret, cfg.JWTTTL),
		Sessions:  service.NewSessionResolver(users, logger.Component("session")),
		Tokens:    tokens,
		Tickets:   service.NewTicketService(tickets, messages, events, dispatcher, logger.Component("tickets")),
		Admin:     service.NewAdminService(users, categories, logger.Component("admin")),
		Dashboard: service.NewDashboardService(stats, users),
		Live:      service.NewLiveService(tickets, feed, cfg.LiveDebounce, logger.Component("live")),
		Readiness: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(db),
			"redis":   handler.RedisPinger(rdb),
		},
	}

	e := api.NewRouter(svc, api.Options{
		JWTSecret:          cfg.JWTSecret,
		CORSOrigin:         cfg.CORSOrigin,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return printError("Server failed", err, "")
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}
