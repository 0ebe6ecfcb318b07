package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/models"

	_ "github.com/lib/pq"
)

const StudentProfileID = "student"

type ProfileRepository interface {
	GetProfile() (*models.StudentProfile, error)
	SaveProfile(profile *models.StudentProfile) error
	Close() error
}

type PostgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(databaseURL string) (*PostgresProfileRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresProfileRepository{db: db}, nil
}

func (r *PostgresProfileRepository) GetProfile() (*models.StudentProfile, error) {
	query := `
		SELECT profile, updated_at
		FROM tutor.student_profile
		WHERE id = $1`

	profile := &models.StudentProfile{}
	var profileJSON []byte
	row := r.db.QueryRow(query, StudentProfileID)

	err := row.Scan(&profileJSON, &profile.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			// First read creates the default profile record.
			return r.createProfile()
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if err := json.Unmarshal(profileJSON, profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return profile, nil
}

func (r *PostgresProfileRepository) createProfile() (*models.StudentProfile, error) {
	profile := &models.StudentProfile{}
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := `
		INSERT INTO tutor.student_profile (id, profile)
		VALUES ($1, $2)
		RETURNING updated_at`

	row := r.db.QueryRow(query, StudentProfileID, profileJSON)
	if err := row.Scan(&profile.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

func (r *PostgresProfileRepository) SaveProfile(profile *models.StudentProfile) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := `
		INSERT INTO tutor.student_profile (id, profile, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET
			profile = EXCLUDED.profile,
			updated_at = NOW()`

	if _, err := r.db.Exec(query, StudentProfileID, profileJSON); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

func (r *PostgresProfileRepository) Close() error {
	return r.db.Close()
}
