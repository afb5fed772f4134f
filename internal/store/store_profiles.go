package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"moviesphere/internal/services"
)

// EnsureProfile creates the user's profile row if it does not exist yet.
func (s *Store) EnsureProfile(ctx context.Context, userID int64, username string) (*Profile, error) {
	timestamp := time.Now().UTC().Format(auditTimeFormat)
	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO user_profiles (user_id, username, is_banned, created_at, updated_at)
         VALUES (?, ?, 0, ?, ?)
         ON CONFLICT (user_id) DO UPDATE SET username = excluded.username, updated_at = excluded.updated_at`,
		userID,
		username,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}
	return s.GetProfile(ctx, userID)
}

// GetProfile fetches one user profile.
func (s *Store) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	ctx = ensureContext(ctx)
	var (
		profile    Profile
		banned     int64
		createdRaw string
		updatedRaw string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id, username, is_banned, created_at, updated_at FROM user_profiles WHERE user_id = ?", userID,
	).Scan(&profile.UserID, &profile.Username, &banned, &createdRaw, &updatedRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "store", "get profile", fmt.Sprintf("user %d", userID), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	profile.IsBanned = banned != 0
	profile.CreatedAt, _ = parseTime(createdRaw)
	profile.UpdatedAt, _ = parseTime(updatedRaw)
	return &profile, nil
}

// SetBanned flips the user's banned flag.
func (s *Store) SetBanned(ctx context.Context, userID int64, banned bool) error {
	timestamp := time.Now().UTC().Format(auditTimeFormat)
	value := 0
	if banned {
		value = 1
	}
	res, err := s.execWithRetry(
		ctx,
		"UPDATE user_profiles SET is_banned = ?, updated_at = ? WHERE user_id = ?",
		value, timestamp, userID,
	)
	if err != nil {
		return fmt.Errorf("set banned: %w", err)
	}
	return requireRow(res, "profile", userID)
}
