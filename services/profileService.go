package services

import (
	"fmt"
	"log"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/db"
	"github.com/davidcogill1011-code/ai-tutor-turnkey/models"
)

type ProfileService struct {
	repo db.ProfileRepository
}

func NewProfileService(repo db.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) GetProfile() (*models.StudentProfile, error) {
	profile, err := s.repo.GetProfile()
	if err != nil {
		log.Printf("[ERROR] Failed to get profile: %v", err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) SaveProfile(profile *models.StudentProfile) error {
	if profile == nil {
		return fmt.Errorf("profile cannot be nil")
	}

	if err := s.repo.SaveProfile(profile); err != nil {
		log.Printf("[ERROR] Failed to save profile: %v", err)
		return fmt.Errorf("failed to save profile: %w", err)
	}

	log.Printf("[INFO] Saved student profile")
	return nil
}
