package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"moviesphere/internal/moderation"
	"moviesphere/internal/services"
)

const contentColumns = "id, kind, title, body, hate_score, state, author_id, movie_id, published_at, created_at, updated_at"

// CreateContent inserts a new review or news item in its initial state.
func (s *Store) CreateContent(ctx context.Context, item *ContentItem) (*ContentItem, error) {
	if item == nil {
		return nil, errors.New("content item required")
	}
	if _, ok := moderation.ParseKind(string(item.Kind)); !ok {
		return nil, services.Wrap(services.ErrInvalidArgument, "store", "create content", "unknown kind "+string(item.Kind), nil)
	}
	now := time.Now().UTC()
	timestamp := now.Format(auditTimeFormat)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO content_items (
            kind, title, body, hate_score, state, author_id, movie_id, published_at, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Kind,
		item.Title,
		item.Body,
		item.HateScore,
		item.State,
		item.AuthorID,
		nullableInt64(item.MovieID),
		nullableTime(item.PublishedAt),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert content: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetContent(ctx, id)
}

// GetContent fetches one content item by id.
func (s *Store) GetContent(ctx context.Context, id int64) (*ContentItem, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, "SELECT "+contentColumns+" FROM content_items WHERE id = ?", id)
	item, err := scanContent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "store", "get content", fmt.Sprintf("id %d", id), nil)
	}
	return item, err
}

// SaveModerationOutcome persists the state and score computed by one
// moderation pass.
func (s *Store) SaveModerationOutcome(ctx context.Context, id int64, outcome moderation.Outcome) error {
	timestamp := time.Now().UTC().Format(auditTimeFormat)
	res, err := s.execWithRetry(
		ctx,
		`UPDATE content_items SET state = ?, hate_score = ?, published_at = COALESCE(?, published_at), updated_at = ? WHERE id = ?`,
		outcome.State,
		outcome.Score,
		nullableTime(outcome.PublishedAt),
		timestamp,
		id,
	)
	if err != nil {
		return fmt.Errorf("save moderation outcome: %w", err)
	}
	return requireRow(res, "content", id)
}

// MarkContentDeleted soft-deletes a content item; the record persists for
// the audit trail.
func (s *Store) MarkContentDeleted(ctx context.Context, id int64) error {
	timestamp := time.Now().UTC().Format(auditTimeFormat)
	res, err := s.execWithRetry(
		ctx,
		`UPDATE content_items SET state = ?, updated_at = ? WHERE id = ?`,
		moderation.StateDeleted,
		timestamp,
		id,
	)
	if err != nil {
		return fmt.Errorf("mark content deleted: %w", err)
	}
	return requireRow(res, "content", id)
}

// ListContentByState returns content items in a given state, oldest first.
func (s *Store) ListContentByState(ctx context.Context, state moderation.State) ([]*ContentItem, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+contentColumns+" FROM content_items WHERE state = ? ORDER BY created_at ASC", state)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	var items []*ContentItem
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanContent(scanner interface{ Scan(dest ...any) error }) (*ContentItem, error) {
	var (
		item         ContentItem
		kindStr      string
		stateStr     string
		movieID      sql.NullInt64
		publishedRaw sql.NullString
		createdRaw   string
		updatedRaw   string
	)
	if err := scanner.Scan(
		&item.ID,
		&kindStr,
		&item.Title,
		&item.Body,
		&item.HateScore,
		&stateStr,
		&item.AuthorID,
		&movieID,
		&publishedRaw,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	item.Kind = moderation.Kind(kindStr)
	item.State = moderation.State(stateStr)
	if movieID.Valid {
		item.MovieID = &movieID.Int64
	}
	if publishedRaw.Valid {
		if ts, err := parseTime(publishedRaw.String); err == nil {
			item.PublishedAt = &ts
		}
	}
	item.CreatedAt, _ = parseTime(createdRaw)
	item.UpdatedAt, _ = parseTime(updatedRaw)
	return &item, nil
}

func parseTime(value string) (time.Time, error) {
	if ts, err := time.Parse(auditTimeFormat, value); err == nil {
		return ts, nil
	}
	return time.Parse(windowTimeFormat, value)
}

func nullableInt64(value *int64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(auditTimeFormat)
}

func requireRow(res sql.Result, entity string, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "store", "update "+entity, fmt.Sprintf("id %d", id), nil)
	}
	return nil
}
