package coach

import (
	"strings"

	"github.com/samber/lo"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/models"
)

// Markers and glyphs the model is instructed to emit. The model is not
// contractually guaranteed to follow them, so extraction is best-effort:
// a missing marker degrades to an empty skill list or an unknown
// verdict, never an error.
const (
	SkillsMarker   = "## skills"
	FeedbackMarker = "## feedback"

	GlyphCorrect   = "✅"
	GlyphIncorrect = "❌"

	RoadmapPlaceholder = "—"

	MaxSkillTags = 6
)

// Result is what could be salvaged from one reply.
type Result struct {
	Skills  []string
	Verdict models.Verdict
}

// ParseReply extracts the trailing skill list and the leading
// correctness glyph from raw reply text. It is total: any input,
// including empty or malformed text, yields a valid Result.
func ParseReply(text string) Result {
	return Result{
		Skills:  ExtractSkills(text),
		Verdict: ExtractVerdict(text),
	}
}

// ExtractSkills locates the last skills marker (case-insensitive),
// isolates the section body up to the next section or end of text, and
// splits it into at most MaxSkillTags trimmed tags.
func ExtractSkills(text string) []string {
	idx := lastIndexFold(text, SkillsMarker)
	if idx < 0 {
		return nil
	}

	body := text[idx+len(SkillsMarker):]
	if next := strings.Index(body, "\n## "); next >= 0 {
		body = body[:next]
	}

	skills := lo.FilterMap(strings.Split(body, ","), func(tag string, _ int) (string, bool) {
		tag = strings.TrimSpace(tag)
		return tag, tag != ""
	})

	if len(skills) > MaxSkillTags {
		skills = skills[:MaxSkillTags]
	}
	return skills
}

// ExtractVerdict inspects the first non-blank line after the feedback
// marker for a correctness glyph. No marker or no recognizable glyph
// yields VerdictUnknown, which suppresses any mastery update.
func ExtractVerdict(text string) models.Verdict {
	idx := indexFold(text, FeedbackMarker)
	if idx < 0 {
		return models.VerdictUnknown
	}

	body := text[idx+len(FeedbackMarker):]
	if nl := strings.Index(body, "\n"); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = ""
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.Contains(line, GlyphCorrect):
			return models.VerdictCorrect
		case strings.Contains(line, GlyphIncorrect):
			return models.VerdictIncorrect
		}
		return models.VerdictUnknown
	}

	return models.VerdictUnknown
}

// lastIndexFold is strings.LastIndex with case-insensitive matching.
// Matching windows of the original text keeps the returned index valid
// for slicing it; lowering the whole text first can shift byte offsets
// when a rune changes width under case mapping.
func lastIndexFold(s, substr string) int {
	for i := len(s) - len(substr); i >= 0; i-- {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}
