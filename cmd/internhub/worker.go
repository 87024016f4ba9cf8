package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/artem13815/internhub/pkg/application"
	"github.com/artem13815/internhub/pkg/queue"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume enrichment jobs from RabbitMQ",
	Long:  "Run résumé extraction, GitHub analysis and scoring for applications published by `serve` in ENRICH_MODE=queue.",
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

// enrichHandler adapts the orchestrator to the queue. Unknown ids are dropped.
func enrichHandler(svc application.UseCase) queue.Handler {
	return func(ctx context.Context, applicationID string) error {
		_, err := svc.Enrich(ctx, applicationID)
		if errors.Is(err, application.ErrNotFound) {
			return fmt.Errorf("%w: %s", queue.ErrDrop, applicationID)
		}
		return err
	}
}

func runWorker(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx, bootOptions{migrate: true, queue: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.log.Info().Str("queue", rt.cfg.Queue.Queue).Msg("worker started")
	if err := rt.mq.Consume(ctx, enrichHandler(rt.svc)); err != nil {
		return err
	}
	rt.log.Info().Msg("worker stopped")
	return nil
}
