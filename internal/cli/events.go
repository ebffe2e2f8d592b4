package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"productapi/internal/models"
	"productapi/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Work with product change events",
	}
	eventsCmd.AddCommand(&cobra.Command{
		Use:   "tail",
		Short: "Log product events from the queue until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.EventsEnabled() {
				return fmt.Errorf("RABBITMQ_URL is not set")
			}

			client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			slog.Info("waiting for product events", slog.String("queue", cfg.RabbitMQ.Queue))
			return client.ConsumeProductEvents(ctx, func(event models.ProductEvent) error {
				slog.Info("product event",
					slog.String("event_id", event.EventID),
					slog.String("type", string(event.Type)),
					slog.Int64("product_id", event.ProductID),
					slog.Time("occurred_at", event.OccurredAt),
				)
				return nil
			})
		},
	})
	return eventsCmd
}
