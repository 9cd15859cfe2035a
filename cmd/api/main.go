package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"chatline/config"
	"chatline/internal/events"
	"chatline/internal/handler"
	"chatline/internal/redis"
	"chatline/internal/repository"
	"chatline/internal/server"
	"chatline/internal/services"
	"chatline/internal/websocket"
	"chatline/pkg/database"
	"chatline/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	if err := run(cfg, l); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}

// stores bundles the repositories chosen by STORAGE_DRIVER with the
// health check and cleanup that go with them.
type stores struct {
	users    repository.UserRepository
	messages repository.MessageRepository
	health   server.HealthFunc
	close    func()
}

func openStores(ctx context.Context, cfg *config.Config, l *logger.Logger) (*stores, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		l.Info(ctx, "using in-memory storage")
		mem := repository.NewMemoryStore()
		return &stores{
			users:    mem.Users(),
			messages: mem.Messages(),
			close:    func() {},
		}, nil

	case config.StoragePostgres:
		pool, err := database.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		l.Info(ctx, "connected to postgres", zap.String("host", cfg.DBHost), zap.String("database", cfg.DBName))

		if cfg.MigrationsOnBoot {
			migrator, err := database.NewMigrator(pool)
			if err != nil {
				pool.Close()
				return nil, err
			}
			if err := migrator.Up(ctx); err != nil {
				pool.Close()
				return nil, err
			}
			l.Info(ctx, "migrations applied")
		}

		return &stores{
			users:    repository.NewUserRepository(pool),
			messages: repository.NewMessageRepository(pool),
			health:   pool.Ping,
			close:    pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func run(cfg *config.Config, l *logger.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStores(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer st.close()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	// With redis every instance publishes to the channel and the bridge
	// feeds the local hub, so each client sees an event once.
	var publisher events.Publisher = hub
	if cfg.RedisEnabled {
		client := redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		if err := redis.Ping(ctx, client); err != nil {
			return err
		}
		publisher = redis.NewPublisher(client, cfg.BroadcastChannel)

		bridge := websocket.NewRedisBridge(redis.NewSubscriber(client), hub, l)
		go func() {
			if err := bridge.Run(ctx, []string{cfg.BroadcastChannel}); err != nil && !errors.Is(err, context.Canceled) {
				l.Error(ctx, "redis bridge stopped", zap.Error(err))
			}
		}()
		l.Info(ctx, "broadcasting through redis", zap.String("channel", cfg.BroadcastChannel))
	}

	userService := services.NewUserService(st.users, l)
	messageService := services.NewMessageService(st.messages, publisher, l)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		User:    handler.NewUserHandler(userService),
		Message: handler.NewMessageHandler(messageService),
		WS:      websocket.NewHandler(hub, l),
	}, st.health)

	return srv.Start()
}
