package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"moviesphere/internal/services"
)

const performanceColumns = "id, movie_title, movie_duration_seconds, actor_name, character_name, screen_time, analysis_state, error_message, created_at, updated_at"

// CreatePerformance inserts a performance. Performances created with an
// explicit screen time are marked skipped so the analysis queue never
// picks them up; all others start pending.
func (s *Store) CreatePerformance(ctx context.Context, perf *Performance) (*Performance, error) {
	if perf == nil {
		return nil, errors.New("performance required")
	}
	if perf.MovieDurationSeconds <= 0 {
		return nil, services.Wrap(services.ErrInvalidArgument, "store", "create performance",
			"movie duration must be positive", nil)
	}

	state := AnalysisPending
	if perf.ScreenTime != nil {
		state = AnalysisSkipped
	}
	timestamp := time.Now().UTC().Format(auditTimeFormat)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO performances (
            movie_title, movie_duration_seconds, actor_name, character_name,
            screen_time, analysis_state, error_message, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, '', ?, ?)`,
		perf.MovieTitle,
		perf.MovieDurationSeconds,
		perf.ActorName,
		perf.CharacterName,
		nullableFloat64(perf.ScreenTime),
		state,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert performance: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetPerformance(ctx, id)
}

// GetPerformance fetches one performance by id.
func (s *Store) GetPerformance(ctx context.Context, id int64) (*Performance, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, "SELECT "+performanceColumns+" FROM performances WHERE id = ?", id)
	perf, err := scanPerformance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "store", "get performance", fmt.Sprintf("id %d", id), nil)
	}
	return perf, err
}

// NextPendingPerformance claims the oldest pending performance by moving it
// to running in a single conditional UPDATE. The state guard in the WHERE
// clause makes the claim safe against concurrent workers; (nil, nil) means
// the queue is empty.
func (s *Store) NextPendingPerformance(ctx context.Context) (*Performance, error) {
	ctx = ensureContext(ctx)
	timestamp := time.Now().UTC().Format(auditTimeFormat)

	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM performances WHERE analysis_state = ? ORDER BY created_at ASC, id ASC LIMIT 1",
		AnalysisPending,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select pending performance: %w", err)
	}

	res, err := s.execWithRetry(ctx,
		"UPDATE performances SET analysis_state = ?, error_message = '', updated_at = ? WHERE id = ? AND analysis_state = ?",
		AnalysisRunning, timestamp, id, AnalysisPending,
	)
	if err != nil {
		return nil, fmt.Errorf("claim performance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		// Another worker won the claim; treat as an empty poll.
		return nil, nil
	}
	return s.GetPerformance(ctx, id)
}

// CompleteAnalysis writes the derived screen time and marks the performance
// completed. This is the only write path for analysis results, so finishing
// a run can never re-enqueue the row.
func (s *Store) CompleteAnalysis(ctx context.Context, id int64, screenTime float64) error {
	timestamp := time.Now().UTC().Format(auditTimeFormat)
	res, err := s.execWithRetry(ctx,
		"UPDATE performances SET screen_time = ?, analysis_state = ?, error_message = '', updated_at = ? WHERE id = ?",
		screenTime, AnalysisCompleted, timestamp, id,
	)
	if err != nil {
		return fmt.Errorf("complete analysis: %w", err)
	}
	return requireRow(res, "performance", id)
}

// FailAnalysis records a failure message and marks the performance failed.
func (s *Store) FailAnalysis(ctx context.Context, id int64, message string) error {
	timestamp := time.Now().UTC().Format(auditTimeFormat)
	res, err := s.execWithRetry(ctx,
		"UPDATE performances SET analysis_state = ?, error_message = ?, updated_at = ? WHERE id = ?",
		AnalysisFailed, message, timestamp, id,
	)
	if err != nil {
		return fmt.Errorf("fail analysis: %w", err)
	}
	return requireRow(res, "performance", id)
}

// RetryAnalysis moves a failed performance back to pending.
func (s *Store) RetryAnalysis(ctx context.Context, id int64) error {
	timestamp := time.Now().UTC().Format(auditTimeFormat)
	res, err := s.execWithRetry(ctx,
		"UPDATE performances SET analysis_state = ?, error_message = '', updated_at = ? WHERE id = ? AND analysis_state = ?",
		AnalysisPending, timestamp, id, AnalysisFailed,
	)
	if err != nil {
		return fmt.Errorf("retry analysis: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrInvalidArgument, "store", "retry analysis",
			fmt.Sprintf("performance %d is not failed", id), nil)
	}
	return nil
}

// ResetStaleRunning returns performances stuck in running to pending. Called
// once at startup to recover rows orphaned by an unclean shutdown.
func (s *Store) ResetStaleRunning(ctx context.Context) (int64, error) {
	timestamp := time.Now().UTC().Format(auditTimeFormat)
	res, err := s.execWithRetry(ctx,
		"UPDATE performances SET analysis_state = ?, updated_at = ? WHERE analysis_state = ?",
		AnalysisPending, timestamp, AnalysisRunning,
	)
	if err != nil {
		return 0, fmt.Errorf("reset stale running: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// ListPerformances returns all performances, oldest first.
func (s *Store) ListPerformances(ctx context.Context) ([]*Performance, error) {
	return s.queryPerformances(ctx,
		"SELECT "+performanceColumns+" FROM performances ORDER BY created_at ASC, id ASC")
}

// ListPerformancesByState returns performances in one analysis state,
// oldest first.
func (s *Store) ListPerformancesByState(ctx context.Context, state AnalysisState) ([]*Performance, error) {
	return s.queryPerformances(ctx,
		"SELECT "+performanceColumns+" FROM performances WHERE analysis_state = ? ORDER BY created_at ASC, id ASC", state)
}

func (s *Store) queryPerformances(ctx context.Context, query string, args ...any) ([]*Performance, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list performances: %w", err)
	}
	defer rows.Close()

	var performances []*Performance
	for rows.Next() {
		perf, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		performances = append(performances, perf)
	}
	return performances, rows.Err()
}

// UpsertEmotion writes the emotion duration for one performance, replacing
// any earlier result for the same emotion.
func (s *Store) UpsertEmotion(ctx context.Context, performanceID int64, emotion Emotion, result float64) error {
	if _, ok := ParseEmotion(string(emotion)); !ok {
		return services.Wrap(services.ErrInvalidArgument, "store", "upsert emotion",
			"unknown emotion "+string(emotion), nil)
	}
	timestamp := time.Now().UTC().Format(auditTimeFormat)
	_, err := s.execWithRetry(ctx,
		`INSERT INTO emotion_analyses (performance_id, emotion, result, updated_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT (performance_id, emotion) DO UPDATE SET result = excluded.result, updated_at = excluded.updated_at`,
		performanceID, emotion, result, timestamp,
	)
	if err != nil {
		return fmt.Errorf("upsert emotion: %w", err)
	}
	return nil
}

// ListEmotions returns the emotion analyses recorded for one performance.
func (s *Store) ListEmotions(ctx context.Context, performanceID int64) ([]*EmotionAnalysis, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, performance_id, emotion, result, updated_at FROM emotion_analyses WHERE performance_id = ? ORDER BY emotion ASC",
		performanceID)
	if err != nil {
		return nil, fmt.Errorf("list emotions: %w", err)
	}
	defer rows.Close()

	var analyses []*EmotionAnalysis
	for rows.Next() {
		var (
			entry      EmotionAnalysis
			emotionStr string
			updatedRaw string
		)
		if err := rows.Scan(&entry.ID, &entry.PerformanceID, &emotionStr, &entry.Result, &updatedRaw); err != nil {
			return nil, err
		}
		entry.Emotion = Emotion(emotionStr)
		entry.UpdatedAt, _ = parseTime(updatedRaw)
		analyses = append(analyses, &entry)
	}
	return analyses, rows.Err()
}

// Health aggregates performance counts by analysis state.
func (s *Store) Health(ctx context.Context) (*HealthSummary, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT analysis_state, COUNT(1) FROM performances GROUP BY analysis_state")
	if err != nil {
		return nil, fmt.Errorf("health summary: %w", err)
	}
	defer rows.Close()

	summary := &HealthSummary{}
	for rows.Next() {
		var (
			state string
			count int
		)
		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		summary.Total += count
		switch AnalysisState(state) {
		case AnalysisPending:
			summary.Pending = count
		case AnalysisRunning:
			summary.Running = count
		case AnalysisCompleted:
			summary.Completed = count
		case AnalysisFailed:
			summary.Failed = count
		case AnalysisSkipped:
			summary.Skipped = count
		}
	}
	return summary, rows.Err()
}

func scanPerformance(scanner interface{ Scan(dest ...any) error }) (*Performance, error) {
	var (
		perf       Performance
		screenTime sql.NullFloat64
		stateStr   string
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(
		&perf.ID,
		&perf.MovieTitle,
		&perf.MovieDurationSeconds,
		&perf.ActorName,
		&perf.CharacterName,
		&screenTime,
		&stateStr,
		&perf.ErrorMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	if screenTime.Valid {
		perf.ScreenTime = &screenTime.Float64
	}
	perf.AnalysisState = AnalysisState(stateStr)
	perf.CreatedAt, _ = parseTime(createdRaw)
	perf.UpdatedAt, _ = parseTime(updatedRaw)
	return &perf, nil
}

func nullableFloat64(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}
