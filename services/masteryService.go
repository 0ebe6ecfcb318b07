package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/db"
	"github.com/davidcogill1011-code/ai-tutor-turnkey/models"
)

// DefaultReportWindow is the trailing window used for rollups when the
// caller does not choose one.
const DefaultReportWindow = 7 * 24 * time.Hour

var csvHeader = []string{"skill", "correct", "total", "accuracy_percent"}

type MasteryService struct {
	repo db.ProgressRepository
	now  func() time.Time
}

func NewMasteryService(repo db.ProgressRepository) *MasteryService {
	return &MasteryService{
		repo: repo,
		now:  time.Now,
	}
}

// RecordResult applies one parsed tutor verdict to every tagged skill:
// total always advances, correct and streak only on a correct verdict,
// a non-correct verdict resets the streak. An unknown verdict is a
// no-op; the reply carried no usable signal.
func (s *MasteryService) RecordResult(subject, level string, skills []string, verdict models.Verdict) error {
	if verdict == models.VerdictUnknown {
		log.Printf("[INFO] Skipping mastery update: verdict unknown")
		return nil
	}

	skills = lo.Uniq(lo.FilterMap(skills, func(skill string, _ int) (string, bool) {
		skill = strings.TrimSpace(skill)
		return skill, skill != ""
	}))
	if len(skills) == 0 {
		log.Printf("[INFO] Skipping mastery update: no skills tagged")
		return nil
	}

	correct := verdict == models.VerdictCorrect
	now := s.now()

	for _, skill := range skills {
		record, err := s.repo.GetRecord(subject, level, skill)
		if err != nil {
			log.Printf("[ERROR] Failed to load mastery record for %q: %v", skill, err)
			return fmt.Errorf("failed to load mastery record: %w", err)
		}
		if record == nil {
			record = &models.MasteryRecord{
				Subject: subject,
				Level:   level,
				Skill:   skill,
			}
		}

		record.TotalCount++
		if correct {
			record.CorrectCount++
			record.CurrentStreak++
		} else {
			record.CurrentStreak = 0
		}
		record.LastUpdatedAt = now

		if err := s.repo.UpsertRecord(record); err != nil {
			log.Printf("[ERROR] Failed to save mastery record for %q: %v", skill, err)
			return fmt.Errorf("failed to save mastery record: %w", err)
		}

		event := &models.Event{
			Timestamp: now,
			Subject:   subject,
			Level:     level,
			Skill:     skill,
			Correct:   correct,
		}
		if err := s.repo.AppendEvent(event); err != nil {
			log.Printf("[ERROR] Failed to append progress event for %q: %v", skill, err)
			return fmt.Errorf("failed to append progress event: %w", err)
		}
	}

	if err := s.repo.TrimEvents(db.MaxEvents); err != nil {
		log.Printf("[ERROR] Failed to trim event log: %v", err)
		return fmt.Errorf("failed to trim event log: %w", err)
	}

	log.Printf("[INFO] Recorded %s verdict for %d skills in %s/%s", verdict, len(skills), subject, level)
	return nil
}

// Report aggregates events in the trailing window into one row per
// skill, sorted by skill name. A skill with zero total reports zero
// percent rather than faulting.
func (s *MasteryService) Report(subject, level string, window time.Duration) ([]models.SkillReport, error) {
	if window <= 0 {
		window = DefaultReportWindow
	}

	since := s.now().Add(-window)
	events, err := s.repo.GetEventsSince(subject, level, since)
	if err != nil {
		log.Printf("[ERROR] Failed to load events for report: %v", err)
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	type tally struct {
		correct int
		total   int
	}
	tallies := make(map[string]*tally)
	for _, event := range events {
		t, ok := tallies[event.Skill]
		if !ok {
			t = &tally{}
			tallies[event.Skill] = t
		}
		t.total++
		if event.Correct {
			t.correct++
		}
	}

	reports := lo.MapToSlice(tallies, func(skill string, t *tally) models.SkillReport {
		return models.SkillReport{
			Skill:           skill,
			Correct:         t.correct,
			Total:           t.total,
			AccuracyPercent: accuracyPercent(t.correct, t.total),
		}
	})

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Skill < reports[j].Skill
	})

	log.Printf("[INFO] Built windowed report with %d skills from %d events", len(reports), len(events))
	return reports, nil
}

// WeakestSkills ranks the windowed rollup ascending by accuracy. Ties
// surface the more-attempted skill first: with equal percentages, more
// attempts means more reliably known weak.
func (s *MasteryService) WeakestSkills(subject, level string, window time.Duration, limit int) ([]models.SkillReport, error) {
	reports, err := s.Report(subject, level, window)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].AccuracyPercent != reports[j].AccuracyPercent {
			return reports[i].AccuracyPercent < reports[j].AccuracyPercent
		}
		return reports[i].Total > reports[j].Total
	})

	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

// ExportCSV renders the windowed rollup as a comma-separated report.
// Skill names with commas or quotes are escaped by the writer.
func (s *MasteryService) ExportCSV(subject, level string, window time.Duration) (string, error) {
	reports, err := s.Report(subject, level, window)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, report := range reports {
		row := []string{
			report.Skill,
			strconv.Itoa(report.Correct),
			strconv.Itoa(report.Total),
			strconv.Itoa(report.AccuracyPercent),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	log.Printf("[INFO] Exported CSV report with %d rows", len(reports))
	return buf.String(), nil
}

// ParseCSV reads a report produced by ExportCSV back into rollup rows.
func (s *MasteryService) ParseCSV(data string) ([]models.SkillReport, error) {
	r := csv.NewReader(strings.NewReader(data))

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV is empty")
	}
	if !slices.Equal(rows[0], csvHeader) {
		return nil, fmt.Errorf("unexpected CSV header: %v", rows[0])
	}

	reports := make([]models.SkillReport, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("unexpected CSV row: %v", row)
		}

		correct, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("invalid correct count %q: %w", row[1], err)
		}
		total, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("invalid total count %q: %w", row[2], err)
		}
		percent, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("invalid accuracy percent %q: %w", row[3], err)
		}

		reports = append(reports, models.SkillReport{
			Skill:           row[0],
			Correct:         correct,
			Total:           total,
			AccuracyPercent: percent,
		})
	}

	return reports, nil
}

// SearchSkills fuzzy-matches tracked skill names against a query,
// best matches first. An empty query returns every tracked skill.
func (s *MasteryService) SearchSkills(query string) ([]string, error) {
	records, err := s.repo.GetAllRecords()
	if err != nil {
		log.Printf("[ERROR] Failed to load records for skill search: %v", err)
		return nil, fmt.Errorf("failed to load mastery records: %w", err)
	}

	names := lo.Uniq(lo.Map(records, func(record *models.MasteryRecord, _ int) string {
		return record.Skill
	}))

	if strings.TrimSpace(query) == "" {
		sort.Strings(names)
		return names, nil
	}

	ranks := fuzzy.RankFindFold(query, names)
	sort.Sort(ranks)

	return lo.Map(ranks, func(rank fuzzy.Rank, _ int) string {
		return rank.Target
	}), nil
}

// ClearProgress wipes mastery records and the event log. The student
// profile is deliberately left intact.
func (s *MasteryService) ClearProgress() error {
	if err := s.repo.ClearProgress(); err != nil {
		log.Printf("[ERROR] Failed to clear progress: %v", err)
		return fmt.Errorf("failed to clear progress: %w", err)
	}

	log.Printf("[INFO] Cleared mastery records and event log")
	return nil
}

func accuracyPercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
