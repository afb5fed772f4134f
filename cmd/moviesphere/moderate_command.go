package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"moviesphere/internal/config"
	"moviesphere/internal/logging"
	"moviesphere/internal/models"
	"moviesphere/internal/moderation"
	"moviesphere/internal/notifications"
	"moviesphere/internal/sessions"
	"moviesphere/internal/store"
	"moviesphere/internal/strikes"
)

func newModerateCommand(ctx *commandContext) *cobra.Command {
	moderateCmd := &cobra.Command{
		Use:   "moderate",
		Short: "Submit content through moderation",
	}

	moderateCmd.AddCommand(newModerateKindCommand(ctx, moderation.KindReview))
	moderateCmd.AddCommand(newModerateKindCommand(ctx, moderation.KindNews))

	return moderateCmd
}

func newModerateKindCommand(ctx *commandContext, kind moderation.Kind) *cobra.Command {
	var (
		authorID int64
		username string
		movieID  int64
		title    string
		body     string
		draft    bool
	)

	use := string(kind)
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Moderate a %s submission", use),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(body) == "" {
				return errors.New("--body is required")
			}
			if kind == moderation.KindNews && strings.TrimSpace(title) == "" {
				return errors.New("--title is required for news")
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				outcome, item, result, err := moderateSubmission(cmd, cfg, st, submission{
					kind:     kind,
					authorID: authorID,
					username: username,
					movieID:  movieID,
					title:    title,
					body:     body,
					draft:    draft,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Content %d: state=%s score=%d\n", item.ID, outcome.State, outcome.Score)
				if result != nil {
					fmt.Fprintf(out, "Strike issued (%d active)\n", result.ActiveStrikes)
					if result.Banned {
						fmt.Fprintf(out, "Author banned; %d sessions revoked\n", result.RevokedSessions)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&authorID, "author", 0, "Author user id")
	cmd.Flags().StringVar(&username, "username", "", "Author username (for new profiles)")
	cmd.Flags().Int64Var(&movieID, "movie", 0, "Movie id the content refers to")
	cmd.Flags().StringVar(&title, "title", "", "Content title")
	cmd.Flags().StringVar(&body, "body", "", "Content body")
	cmd.Flags().BoolVar(&draft, "draft", false, "Save as draft without scoring")
	_ = cmd.MarkFlagRequired("author")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

type submission struct {
	kind     moderation.Kind
	authorID int64
	username string
	movieID  int64
	title    string
	body     string
	draft    bool
}

// moderateSubmission persists the content, scores it, and escalates a
// forbidden outcome to the strike engine.
func moderateSubmission(cmd *cobra.Command, cfg *config.Config, st *store.Store, sub submission) (moderation.Outcome, *store.ContentItem, *strikes.Result, error) {
	registry, err := models.Load(cfg)
	if err != nil {
		return moderation.Outcome{}, nil, nil, err
	}
	scorer, err := moderation.NewScorer(registry)
	if err != nil {
		return moderation.Outcome{}, nil, nil, err
	}
	engine := moderation.NewEngine(scorer, cfg.Moderation)

	cmdCtx := cmd.Context()
	if _, err := st.EnsureProfile(cmdCtx, sub.authorID, sub.username); err != nil {
		return moderation.Outcome{}, nil, nil, err
	}

	var movieID *int64
	if sub.movieID > 0 {
		movieID = &sub.movieID
	}
	item, err := st.CreateContent(cmdCtx, &store.ContentItem{
		Kind:     sub.kind,
		Title:    sub.title,
		Body:     sub.body,
		State:    moderation.StateDraft,
		AuthorID: sub.authorID,
		MovieID:  movieID,
	})
	if err != nil {
		return moderation.Outcome{}, nil, nil, err
	}

	intent := moderation.IntentPublish
	if sub.draft {
		intent = moderation.IntentDraft
	}
	now := time.Now().UTC()
	outcome, err := engine.Moderate(moderation.Content{
		Kind:      sub.kind,
		ID:        item.ID,
		AuthorID:  sub.authorID,
		Title:     sub.title,
		Body:      sub.body,
		PrevState: item.State,
	}, intent, now)
	if err != nil {
		return moderation.Outcome{}, nil, nil, err
	}
	if err := st.SaveModerationOutcome(cmdCtx, item.ID, outcome); err != nil {
		return moderation.Outcome{}, nil, nil, err
	}

	var result *strikes.Result
	if outcome.StrikeRequired {
		sess, err := sessions.NewFromConfig(cfg.Sessions)
		if err != nil {
			return moderation.Outcome{}, nil, nil, err
		}
		defer sess.Close()

		notifier := notifications.NewService(cfg)
		strikeEngine := strikes.NewEngine(st, sess, notifier, logging.NewNop(), cfg.Moderation)
		result, err = strikeEngine.IssueStrike(cmdCtx, sub.kind, item.ID, sub.authorID, now)
		if err != nil {
			return moderation.Outcome{}, nil, nil, err
		}
	}
	return outcome, item, result, nil
}
