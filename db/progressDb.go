package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/models"

	_ "github.com/lib/pq"
)

// MaxEvents caps the append-only event log. Oldest entries are evicted
// first: the log exists for time-windowed reporting, so FIFO, not LRU.
const MaxEvents = 500

type ProgressRepository interface {
	GetRecord(subject, level, skill string) (*models.MasteryRecord, error)
	GetRecords(subject, level string) ([]*models.MasteryRecord, error)
	GetAllRecords() ([]*models.MasteryRecord, error)
	UpsertRecord(record *models.MasteryRecord) error
	AppendEvent(event *models.Event) error
	GetEventsSince(subject, level string, since time.Time) ([]*models.Event, error)
	TrimEvents(max int) error
	ClearProgress() error
	Close() error
}

type PostgresProgressRepository struct {
	db *sql.DB
}

func NewPostgresProgressRepository(databaseURL string) (*PostgresProgressRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresProgressRepository{db: db}, nil
}

// GetRecord returns nil without error when no record exists yet; the
// service layer treats that as a zero-valued record.
func (r *PostgresProgressRepository) GetRecord(subject, level, skill string) (*models.MasteryRecord, error) {
	query := `
		SELECT subject, level, skill, correct_count, total_count, current_streak, last_updated_at
		FROM tutor.mastery_records
		WHERE subject = $1 AND level = $2 AND skill = $3`

	record := &models.MasteryRecord{}
	row := r.db.QueryRow(query, subject, level, skill)

	err := row.Scan(&record.Subject, &record.Level, &record.Skill,
		&record.CorrectCount, &record.TotalCount, &record.CurrentStreak, &record.LastUpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get mastery record: %w", err)
	}

	return record, nil
}

func (r *PostgresProgressRepository) GetRecords(subject, level string) ([]*models.MasteryRecord, error) {
	query := `
		SELECT subject, level, skill, correct_count, total_count, current_streak, last_updated_at
		FROM tutor.mastery_records
		WHERE subject = $1 AND level = $2
		ORDER BY skill`

	rows, err := r.db.Query(query, subject, level)
	if err != nil {
		return nil, fmt.Errorf("failed to query mastery records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *PostgresProgressRepository) GetAllRecords() ([]*models.MasteryRecord, error) {
	query := `
		SELECT subject, level, skill, correct_count, total_count, current_streak, last_updated_at
		FROM tutor.mastery_records
		ORDER BY subject, level, skill`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query mastery records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]*models.MasteryRecord, error) {
	records := make([]*models.MasteryRecord, 0)
	for rows.Next() {
		record := &models.MasteryRecord{}
		err := rows.Scan(&record.Subject, &record.Level, &record.Skill,
			&record.CorrectCount, &record.TotalCount, &record.CurrentStreak, &record.LastUpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mastery record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over mastery records: %w", err)
	}

	return records, nil
}

func (r *PostgresProgressRepository) UpsertRecord(record *models.MasteryRecord) error {
	query := `
		INSERT INTO tutor.mastery_records (subject, level, skill, correct_count, total_count, current_streak, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (subject, level, skill) DO UPDATE SET
			correct_count = EXCLUDED.correct_count,
			total_count = EXCLUDED.total_count,
			current_streak = EXCLUDED.current_streak,
			last_updated_at = EXCLUDED.last_updated_at`

	_, err := r.db.Exec(query, record.Subject, record.Level, record.Skill,
		record.CorrectCount, record.TotalCount, record.CurrentStreak, record.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert mastery record: %w", err)
	}

	return nil
}

func (r *PostgresProgressRepository) AppendEvent(event *models.Event) error {
	query := `
		INSERT INTO tutor.progress_events (timestamp, subject, level, skill, correct)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, event.Timestamp, event.Subject, event.Level, event.Skill, event.Correct)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	return nil
}

func (r *PostgresProgressRepository) GetEventsSince(subject, level string, since time.Time) ([]*models.Event, error) {
	query := `
		SELECT timestamp, subject, level, skill, correct
		FROM tutor.progress_events
		WHERE subject = $1 AND level = $2 AND timestamp >= $3
		ORDER BY timestamp`

	rows, err := r.db.Query(query, subject, level, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		event := &models.Event{}
		err := rows.Scan(&event.Timestamp, &event.Subject, &event.Level, &event.Skill, &event.Correct)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over events: %w", err)
	}

	return events, nil
}

func (r *PostgresProgressRepository) TrimEvents(max int) error {
	query := `
		DELETE FROM tutor.progress_events
		WHERE id NOT IN (
			SELECT id FROM tutor.progress_events
			ORDER BY timestamp DESC, id DESC
			LIMIT $1
		)`

	_, err := r.db.Exec(query, max)
	if err != nil {
		return fmt.Errorf("failed to trim events: %w", err)
	}

	return nil
}

func (r *PostgresProgressRepository) ClearProgress() error {
	if _, err := r.db.Exec("DELETE FROM tutor.progress_events"); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}

	if _, err := r.db.Exec("DELETE FROM tutor.mastery_records"); err != nil {
		return fmt.Errorf("failed to clear mastery records: %w", err)
	}

	return nil
}

func (r *PostgresProgressRepository) Close() error {
	return r.db.Close()
}
