/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/lafayette53/apiserver/internal/mq"
	"github.com/lafayette53/apiserver/internal/notify"
	"github.com/spf13/cobra"
)

// notifyCmd represents the notify command.
var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Consume notification events",
	Long: `Subscribes to the notification channel and logs every event whose
signature verifies. Forged or expired events are dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		broker, err := mq.Open(ctx, cfg)
		if err != nil {
			return err
		}
		if broker == nil {
			return errors.New("notify needs MQ_BACKEND set to rabbitmq or pubsub")
		}
		defer broker.Close()

		logger.Info("consuming notifications", "channel", cfg.Notify.Channel)
		err = notify.Consume(ctx, broker, cfg.Notify,
			func(err error) {
				logger.Warn("dropped notification", "err", err)
			},
			func(_ context.Context, event notify.Event) error {
				logger.Info("notification",
					"type", event.Type,
					"recipient", event.Recipient,
					"fields", len(event.Data))
				return nil
			})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}
