package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"moviesphere/internal/config"
	"moviesphere/internal/logging"
	"moviesphere/internal/moderation"
	"moviesphere/internal/notifications"
	"moviesphere/internal/sessions"
	"moviesphere/internal/store"
	"moviesphere/internal/strikes"
)

func newStrikesCommand(ctx *commandContext) *cobra.Command {
	strikesCmd := &cobra.Command{
		Use:   "strikes",
		Short: "Inspect and issue moderation strikes",
	}

	strikesCmd.AddCommand(newStrikesListCommand(ctx))
	strikesCmd.AddCommand(newStrikesIssueCommand(ctx))

	return strikesCmd
}

func newStrikesListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list <user-id>",
		Short: "List a user's strikes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse user id %q: %w", args[0], err)
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				userStrikes, err := st.ListStrikesByUser(cmd.Context(), userID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(userStrikes) == 0 {
					fmt.Fprintf(out, "No strikes for user %d\n", userID)
					return nil
				}

				now := time.Now().UTC()
				rows := make([][]string, 0, len(userStrikes))
				active := 0
				for _, strike := range userStrikes {
					if strike.ActiveAt(now) {
						active++
					}
					rows = append(rows, []string{
						strconv.FormatInt(strike.ID, 10),
						fmt.Sprintf("%s/%d", strike.TargetKind, strike.TargetID),
						strike.IssuedAt.Format(time.RFC3339),
						strike.ExpiresAt.Format(time.RFC3339),
						yesNo(strike.ActiveAt(now)),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Target", "Issued", "Expires", "Active"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				))
				fmt.Fprintf(out, "%d total, %d active\n", len(userStrikes), active)
				return nil
			})
		},
	}
}

func newStrikesIssueCommand(ctx *commandContext) *cobra.Command {
	var (
		kindFlag string
		targetID int64
		userID   int64
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a strike for a forbidden target",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := moderation.ParseKind(kindFlag)
			if !ok {
				return fmt.Errorf("unknown content kind %q", kindFlag)
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				sess, err := sessions.NewFromConfig(cfg.Sessions)
				if err != nil {
					return err
				}
				defer sess.Close()

				engine := strikes.NewEngine(st, sess, notifications.NewService(cfg), logging.NewNop(), cfg.Moderation)
				result, err := engine.IssueStrike(cmd.Context(), kind, targetID, userID, time.Now().UTC())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Strike %d issued; user %d has %d active strikes\n",
					result.Strike.ID, userID, result.ActiveStrikes)
				if result.Banned {
					fmt.Fprintf(out, "User banned; %d sessions revoked\n", result.RevokedSessions)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "review", "Target content kind (review or news)")
	cmd.Flags().Int64Var(&targetID, "target", 0, "Target content id")
	cmd.Flags().Int64Var(&userID, "user", 0, "Offending user id")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
