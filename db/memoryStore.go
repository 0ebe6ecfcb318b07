package db

import (
	"sort"
	"sync"
	"time"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/models"
)

// In-memory repositories used when no DB_URL is configured. The server
// stays fully usable with zero external dependency; state lives for the
// process lifetime with last-writer-wins semantics.

type progressKey struct {
	subject string
	level   string
	skill   string
}

type MemoryProgressRepository struct {
	mu      sync.Mutex
	records map[progressKey]models.MasteryRecord
	events  []models.Event
}

func NewMemoryProgressRepository() *MemoryProgressRepository {
	return &MemoryProgressRepository{
		records: make(map[progressKey]models.MasteryRecord),
	}
}

func (r *MemoryProgressRepository) GetRecord(subject, level, skill string) (*models.MasteryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[progressKey{subject, level, skill}]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *MemoryProgressRepository) GetRecords(subject, level string) ([]*models.MasteryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]*models.MasteryRecord, 0)
	for key, record := range r.records {
		if key.subject == subject && key.level == level {
			rec := record
			records = append(records, &rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Skill < records[j].Skill
	})
	return records, nil
}

func (r *MemoryProgressRepository) GetAllRecords() ([]*models.MasteryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]*models.MasteryRecord, 0, len(r.records))
	for _, record := range r.records {
		rec := record
		records = append(records, &rec)
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		return a.Skill < b.Skill
	})
	return records, nil
}

func (r *MemoryProgressRepository) UpsertRecord(record *models.MasteryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[progressKey{record.Subject, record.Level, record.Skill}] = *record
	return nil
}

func (r *MemoryProgressRepository) AppendEvent(event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, *event)
	return nil
}

func (r *MemoryProgressRepository) GetEventsSince(subject, level string, since time.Time) ([]*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]*models.Event, 0)
	for i := range r.events {
		event := r.events[i]
		if event.Subject == subject && event.Level == level && !event.Timestamp.Before(since) {
			events = append(events, &event)
		}
	}
	return events, nil
}

func (r *MemoryProgressRepository) TrimEvents(max int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) > max {
		// Oldest entries go first.
		r.events = append([]models.Event(nil), r.events[len(r.events)-max:]...)
	}
	return nil
}

func (r *MemoryProgressRepository) ClearProgress() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[progressKey]models.MasteryRecord)
	r.events = nil
	return nil
}

func (r *MemoryProgressRepository) Close() error {
	return nil
}

type MemoryProfileRepository struct {
	mu      sync.Mutex
	profile models.StudentProfile
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{}
}

func (r *MemoryProfileRepository) GetProfile() (*models.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile := r.profile
	return &profile, nil
}

func (r *MemoryProfileRepository) SaveProfile(profile *models.StudentProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profile = *profile
	r.profile.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryProfileRepository) Close() error {
	return nil
}
