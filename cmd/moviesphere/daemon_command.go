package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"moviesphere/internal/analysis"
	"moviesphere/internal/config"
	"moviesphere/internal/daemon"
	"moviesphere/internal/logging"
	"moviesphere/internal/models"
	"moviesphere/internal/notifications"
	"moviesphere/internal/sessions"
	"moviesphere/internal/services/vision"
	"moviesphere/internal/store"
	"moviesphere/internal/workflow"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the analysis daemon in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				logger, err := logging.NewFromConfig(cfg)
				if err != nil {
					return fmt.Errorf("build logger: %w", err)
				}

				registry, err := models.Load(cfg)
				if err != nil {
					return err
				}
				sess, err := sessions.NewFromConfig(cfg.Sessions)
				if err != nil {
					return err
				}
				defer sess.Close()

				detector := vision.NewCLI(registry.Detector(),
					cfg.Analysis.DetectorConfidence, cfg.Analysis.DetectorOverlap,
					vision.WithBinary(cfg.Analysis.DetectorBinary))
				notifier := notifications.NewService(cfg)
				pipeline := analysis.NewPipeline(registry, detector, cfg.Analysis, logger)
				manager := workflow.NewManager(cfg, st, pipeline, notifier, logger)

				d, err := daemon.New(cfg, st, logger, manager, sess)
				if err != nil {
					return err
				}

				runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				if err := d.Start(runCtx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Daemon running; log file at %s\n", d.LogPath())

				<-runCtx.Done()
				d.Stop()
				return nil
			})
		},
	}
}
