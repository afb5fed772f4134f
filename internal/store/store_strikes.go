package store

import (
	"context"
	"fmt"
	"time"

	"moviesphere/internal/moderation"
	"moviesphere/internal/services"
)

const strikeColumns = "id, target_kind, target_id, user_id, issued_at, expires_at, created_at"

// InsertStrike persists a new strike. The UNIQUE constraint on the target
// backs the at-most-one-strike-per-target invariant; a violation surfaces
// as services.ErrDuplicateStrike even when two writers race past the
// existence pre-check.
func (s *Store) InsertStrike(ctx context.Context, strike *Strike) (*Strike, error) {
	createdAt := time.Now().UTC().Format(auditTimeFormat)
	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO strikes (target_kind, target_id, user_id, issued_at, expires_at, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		strike.TargetKind,
		strike.TargetID,
		strike.UserID,
		strike.IssuedAt.UTC().Format(windowTimeFormat),
		strike.ExpiresAt.UTC().Format(windowTimeFormat),
		createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, services.Wrap(services.ErrDuplicateStrike, "store", "insert strike",
				fmt.Sprintf("%s %d already has a strike", strike.TargetKind, strike.TargetID), nil)
		}
		return nil, fmt.Errorf("insert strike: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.getStrike(ctx, id)
}

// StrikeExists reports whether the target already carries a strike.
func (s *Store) StrikeExists(ctx context.Context, kind moderation.Kind, targetID int64) (bool, error) {
	ctx = ensureContext(ctx)
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM strikes WHERE target_kind = ? AND target_id = ?", kind, targetID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check strike existence: %w", err)
	}
	return count > 0, nil
}

// CountActiveStrikes counts the user's strikes whose window covers now:
// issued_at <= now < expires_at.
func (s *Store) CountActiveStrikes(ctx context.Context, userID int64, now time.Time) (int, error) {
	ctx = ensureContext(ctx)
	cutoff := now.UTC().Format(windowTimeFormat)
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM strikes WHERE user_id = ? AND issued_at <= ? AND expires_at > ?",
		userID, cutoff, cutoff,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active strikes: %w", err)
	}
	return count, nil
}

// ListStrikesByUser returns all of a user's strikes, newest first. Strikes
// are never deleted; expired rows remain for the audit trail.
func (s *Store) ListStrikesByUser(ctx context.Context, userID int64) ([]*Strike, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+strikeColumns+" FROM strikes WHERE user_id = ? ORDER BY issued_at DESC, id DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("list strikes: %w", err)
	}
	defer rows.Close()

	var strikes []*Strike
	for rows.Next() {
		strike, err := scanStrike(rows)
		if err != nil {
			return nil, err
		}
		strikes = append(strikes, strike)
	}
	return strikes, rows.Err()
}

func (s *Store) getStrike(ctx context.Context, id int64) (*Strike, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, "SELECT "+strikeColumns+" FROM strikes WHERE id = ?", id)
	return scanStrike(row)
}

func scanStrike(scanner interface{ Scan(dest ...any) error }) (*Strike, error) {
	var (
		strike     Strike
		kindStr    string
		issuedRaw  string
		expiresRaw string
		createdRaw string
	)
	if err := scanner.Scan(
		&strike.ID,
		&kindStr,
		&strike.TargetID,
		&strike.UserID,
		&issuedRaw,
		&expiresRaw,
		&createdRaw,
	); err != nil {
		return nil, err
	}
	strike.TargetKind = moderation.Kind(kindStr)
	strike.IssuedAt, _ = parseTime(issuedRaw)
	strike.ExpiresAt, _ = parseTime(expiresRaw)
	strike.CreatedAt, _ = parseTime(createdRaw)
	return &strike, nil
}
