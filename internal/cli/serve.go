package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/handlers"
	"productapi/internal/middleware"
	"productapi/internal/repositories"
	"productapi/internal/server"
	"productapi/internal/services"
	"productapi/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var inMemory bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cfg, inMemory)
		},
	}
	cmd.Flags().BoolVar(&inMemory, "in-memory", false, "keep products in memory instead of the configured database")
	return cmd
}

// storage is the persistence selected for a serve run.
type storage struct {
	repo   repositories.ProductRepository
	tx     repositories.Transactor
	health server.HealthCheck
	close  func() error
}

func openStorage(cfg *config.Config, inMemory bool) (*storage, error) {
	if inMemory {
		slog.Info("using in-memory product repository")
		return &storage{
			repo:  repositories.NewMockProductRepository(),
			tx:    repositories.NoopTransactor{},
			close: func() error { return nil },
		}, nil
	}

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			database.Close(db)
			return nil, err
		}
	}
	return &storage{
		repo:   repositories.NewGORMProductRepository(db),
		tx:     repositories.NewGORMTransactor(db),
		health: func(ctx context.Context) error { return database.Ping(ctx, db) },
		close:  func() error { return database.Close(db) },
	}, nil
}

// newApp wires storage, the optional event publisher and the HTTP layer.
func newApp(cfg *config.Config, store *storage, publisher services.EventPublisher) *fiber.App {
	var opts []services.Option
	if publisher != nil {
		opts = append(opts, services.WithEventPublisher(publisher))
	}
	productService := services.NewProductService(store.repo, store.tx, opts...)
	productHandler := handlers.NewProductHandler(productService)

	serverOpts := server.Options{
		Health:    store.health,
		AccessLog: true,
	}
	if cfg.Metrics.Enabled {
		serverOpts.Metrics = middleware.NewMetrics()
	}
	return server.New(productHandler, serverOpts)
}

func serve(cfg *config.Config, inMemory bool) error {
	store, err := openStorage(cfg, inMemory)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.close(); err != nil {
			slog.Error("error closing database", slog.Any("error", err))
		}
	}()

	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	app := newApp(cfg, store, publisher)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", slog.String("port", cfg.AppPort))
		listenErr <- app.Listen(cfg.AppPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	slog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		slog.Error("error during Fiber shutdown", slog.Any("error", err))
	}
	slog.Info("server gracefully stopped")
	return nil
}
