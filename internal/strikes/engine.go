package strikes

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"moviesphere/internal/config"
	"moviesphere/internal/logging"
	"moviesphere/internal/moderation"
	"moviesphere/internal/notifications"
	"moviesphere/internal/services"
	"moviesphere/internal/sessions"
	"moviesphere/internal/store"
)

// Engine issues strikes and escalates repeat offenders to bans.
type Engine struct {
	store    *store.Store
	sessions sessions.Store
	notifier notifications.Service
	logger   *slog.Logger
	policy   config.Moderation

	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

// Result describes what one strike issuance did.
type Result struct {
	Strike          *store.Strike
	ActiveStrikes   int
	Banned          bool
	RevokedSessions int
}

// NewEngine wires the strike engine.
func NewEngine(st *store.Store, sess sessions.Store, notifier notifications.Service, logger *slog.Logger, policy config.Moderation) *Engine {
	if notifier == nil {
		notifier = notifications.NewService(&config.Config{})
	}
	return &Engine{
		store:     st,
		sessions:  sess,
		notifier:  notifier,
		logger:    logging.WithComponent(logger, "strikes"),
		policy:    policy,
		userLocks: make(map[int64]*sync.Mutex),
	}
}

// userLock serializes strike issuance per user so the count-then-ban
// sequence cannot interleave for the same offender.
func (e *Engine) userLock(userID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.userLocks[userID] = lock
	}
	return lock
}

// IssueStrike records a strike against the target's author. A target can
// carry at most one strike; issuing a second returns
// services.ErrDuplicateStrike. When the author's active strike count
// reaches the ban threshold the profile is banned and every session is
// revoked. Notification failures are logged but never roll back the
// strike or the ban.
func (e *Engine) IssueStrike(ctx context.Context, targetKind moderation.Kind, targetID, userID int64, issuedAt time.Time) (*Result, error) {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	exists, err := e.store.StrikeExists(ctx, targetKind, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, services.Wrap(services.ErrDuplicateStrike, "strikes", "issue",
			fmt.Sprintf("%s %d already has a strike", targetKind, targetID), nil)
	}

	issuedAt = issuedAt.UTC()
	strike, err := e.store.InsertStrike(ctx, &store.Strike{
		TargetKind: targetKind,
		TargetID:   targetID,
		UserID:     userID,
		IssuedAt:   issuedAt,
		ExpiresAt:  addMonthsClamped(issuedAt, e.policy.StrikeValidityMonths),
	})
	if err != nil {
		return nil, err
	}

	active, err := e.store.CountActiveStrikes(ctx, userID, issuedAt)
	if err != nil {
		return nil, err
	}

	result := &Result{Strike: strike, ActiveStrikes: active}
	username := e.username(ctx, userID)

	e.logger.Info("strike issued",
		slog.String(logging.FieldTarget, fmt.Sprintf("%s/%d", targetKind, targetID)),
		slog.Int64(logging.FieldUserID, userID),
		slog.Int("active_strikes", active))

	if notifyErr := e.notifier.NotifyStrikeIssued(ctx, username, active); notifyErr != nil {
		e.logger.Warn("strike notification failed",
			slog.Int64(logging.FieldUserID, userID),
			slog.String("error", notifyErr.Error()))
	}

	if active >= e.policy.BanStrikeCount {
		banned, revoked, banErr := e.ban(ctx, userID, username)
		if banErr != nil {
			return nil, banErr
		}
		result.Banned = banned
		result.RevokedSessions = revoked
	}
	return result, nil
}

// ban flags the profile and revokes sessions; already-banned users are a
// no-op so repeated strikes past the threshold do not re-announce the ban.
func (e *Engine) ban(ctx context.Context, userID int64, username string) (bool, int, error) {
	profile, err := e.store.GetProfile(ctx, userID)
	if err == nil && profile.IsBanned {
		return false, 0, nil
	}

	if err := e.store.SetBanned(ctx, userID, true); err != nil {
		return false, 0, err
	}

	revoked := 0
	if e.sessions != nil {
		revoked, err = e.sessions.InvalidateAll(ctx, userID)
		if err != nil {
			e.logger.Warn("session invalidation failed",
				slog.Int64(logging.FieldUserID, userID),
				slog.String("error", err.Error()))
		}
	}

	e.logger.Info("user banned",
		slog.Int64(logging.FieldUserID, userID),
		slog.Int("revoked_sessions", revoked))

	if notifyErr := e.notifier.NotifyUserBanned(ctx, username, revoked); notifyErr != nil {
		e.logger.Warn("ban notification failed",
			slog.Int64(logging.FieldUserID, userID),
			slog.String("error", notifyErr.Error()))
	}
	return true, revoked, nil
}

// addMonthsClamped advances t by the given number of months, clamping to
// the last day of the target month instead of letting the date normalize
// forward. A strike issued Nov 30 expires Feb 28 (or 29), not Mar 2.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	hour, min, sec := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func (e *Engine) username(ctx context.Context, userID int64) string {
	profile, err := e.store.GetProfile(ctx, userID)
	if err != nil || profile.Username == "" {
		return fmt.Sprintf("user %d", userID)
	}
	return profile.Username
}

// ActiveStrikes returns the user's current active strike count.
func (e *Engine) ActiveStrikes(ctx context.Context, userID int64, now time.Time) (int, error) {
	return e.store.CountActiveStrikes(ctx, userID, now)
}
