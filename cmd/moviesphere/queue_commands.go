package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"moviesphere/internal/config"
	"moviesphere/internal/store"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect the performance analysis queue",
	}

	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueStatusCommand(ctx))
	queueCmd.AddCommand(newQueueAddCommand(ctx))
	queueCmd.AddCommand(newQueueRetryCommand(ctx))

	return queueCmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var stateFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List performances and their analysis state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				var (
					performances []*store.Performance
					err          error
				)
				if stateFlag != "" {
					performances, err = st.ListPerformancesByState(cmd.Context(), store.AnalysisState(stateFlag))
				} else {
					performances, err = st.ListPerformances(cmd.Context())
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(performances) == 0 {
					fmt.Fprintln(out, "Queue is empty")
					return nil
				}

				rows := make([][]string, 0, len(performances))
				for _, perf := range performances {
					screenTime := "-"
					if perf.ScreenTime != nil {
						screenTime = strconv.FormatFloat(*perf.ScreenTime, 'f', 2, 64)
					}
					rows = append(rows, []string{
						strconv.FormatInt(perf.ID, 10),
						perf.MovieTitle,
						perf.ActorName,
						string(perf.AnalysisState),
						screenTime,
						perf.ErrorMessage,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Movie", "Actor", "State", "Screen Time", "Error"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&stateFlag, "state", "", "Filter by analysis state")
	return cmd
}

func newQueueStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show aggregate queue counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				summary, err := st.Health(cmd.Context())
				if err != nil {
					return err
				}
				rows := [][]string{
					{"pending", strconv.Itoa(summary.Pending)},
					{"running", strconv.Itoa(summary.Running)},
					{"completed", strconv.Itoa(summary.Completed)},
					{"failed", strconv.Itoa(summary.Failed)},
					{"skipped", strconv.Itoa(summary.Skipped)},
					{"total", strconv.Itoa(summary.Total)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"State", "Count"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func newQueueAddCommand(ctx *commandContext) *cobra.Command {
	var (
		movieTitle string
		duration   float64
		actorName  string
		character  string
		screenTime float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Enqueue a performance for analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				perf := &store.Performance{
					MovieTitle:           movieTitle,
					MovieDurationSeconds: duration,
					ActorName:            actorName,
					CharacterName:        character,
				}
				// An explicit screen time skips the pipeline entirely.
				if cmd.Flags().Changed("screen-time") {
					perf.ScreenTime = &screenTime
				}
				created, err := st.CreatePerformance(cmd.Context(), perf)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Performance %d created (state %s)\n",
					created.ID, created.AnalysisState)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&movieTitle, "movie", "", "Movie title")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Movie duration in seconds")
	cmd.Flags().StringVar(&actorName, "actor", "", "Actor display name")
	cmd.Flags().StringVar(&character, "character", "", "Character name")
	cmd.Flags().Float64Var(&screenTime, "screen-time", 0, "Explicit screen time in seconds (skips analysis)")
	_ = cmd.MarkFlagRequired("movie")
	_ = cmd.MarkFlagRequired("duration")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

func newQueueRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry <performance-id>",
		Short: "Requeue a failed performance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse performance id %q: %w", args[0], err)
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				if err := st.RetryAnalysis(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Performance %d requeued\n", id)
				return nil
			})
		},
	}
}
