package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"moviesphere/internal/analysis"
	"moviesphere/internal/config"
	"moviesphere/internal/logging"
	"moviesphere/internal/models"
	"moviesphere/internal/notifications"
	"moviesphere/internal/services/vision"
	"moviesphere/internal/store"
	"moviesphere/internal/workflow"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <performance-id>",
		Short: "Run frame analysis for one performance synchronously",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse performance id %q: %w", args[0], err)
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				logger, err := logging.NewFromConfig(cfg)
				if err != nil {
					return fmt.Errorf("build logger: %w", err)
				}
				registry, err := models.Load(cfg)
				if err != nil {
					return err
				}

				detector := vision.NewCLI(registry.Detector(),
					cfg.Analysis.DetectorConfidence, cfg.Analysis.DetectorOverlap,
					vision.WithBinary(cfg.Analysis.DetectorBinary))
				pipeline := analysis.NewPipeline(registry, detector, cfg.Analysis, logger)
				manager := workflow.NewManager(cfg, st, pipeline, notifications.NewService(cfg), logger)

				screenTime, err := manager.Analyze(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Performance %d analyzed: %.2fs of screen time\n", id, screenTime)
				return nil
			})
		},
	}
}
