package coach

import (
	"reflect"
	"strings"
	"testing"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/models"
)

func TestExtractSkills(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "no marker",
			text:     "Great work, keep going!",
			expected: nil,
		},
		{
			name:     "empty input",
			text:     "",
			expected: nil,
		},
		{
			name:     "simple trailing section",
			text:     "## Next step\nTry again.\n\n## Skills\nLinear equations, Inverse operations",
			expected: []string{"Linear equations", "Inverse operations"},
		},
		{
			name:     "case insensitive marker",
			text:     "## SKILLS\nFractions, Decimals",
			expected: []string{"Fractions", "Decimals"},
		},
		{
			name:     "last marker wins",
			text:     "## Skills\nOld tags\n\n## Feedback\nNice.\n\n## Skills\nNew tag one, New tag two",
			expected: []string{"New tag one", "New tag two"},
		},
		{
			name:     "stops at next section",
			text:     "## Skills\nAlgebra, Geometry\n## Notes\nignored, also ignored",
			expected: []string{"Algebra", "Geometry"},
		},
		{
			name:     "trims and drops empties",
			text:     "## Skills\n  Algebra ,   , Geometry ,,",
			expected: []string{"Algebra", "Geometry"},
		},
		{
			name:     "caps at six tags",
			text:     "## Skills\na, b, c, d, e, f, g, h",
			expected: []string{"a", "b", "c", "d", "e", "f"},
		},
		{
			name:     "marker with no body",
			text:     "Some reply\n## Skills\n",
			expected: nil,
		},
		{
			name:     "marker preceded by runes that widen when lowered",
			text:     "ȺȺȺȺ good step İİ\n## Skills\nFractions, Decimals",
			expected: []string{"Fractions", "Decimals"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSkills(tt.text)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ExtractSkills() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestExtractVerdict(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected models.Verdict
	}{
		{
			name:     "correct glyph",
			text:     "## Feedback\n" + GlyphCorrect + " Nice step, that is right.\n\n## Next step\nContinue.",
			expected: models.VerdictCorrect,
		},
		{
			name:     "incorrect glyph",
			text:     "## Feedback\n" + GlyphIncorrect + " Not quite, check the sign.\n",
			expected: models.VerdictIncorrect,
		},
		{
			name:     "glyph after blank line",
			text:     "## Feedback\n\n" + GlyphCorrect + " Good.",
			expected: models.VerdictCorrect,
		},
		{
			name:     "no glyph on first line",
			text:     "## Feedback\nKeep trying, you are close.\n" + GlyphCorrect,
			expected: models.VerdictUnknown,
		},
		{
			name:     "missing marker",
			text:     GlyphCorrect + " correct but unmarked",
			expected: models.VerdictUnknown,
		},
		{
			name:     "empty input",
			text:     "",
			expected: models.VerdictUnknown,
		},
		{
			name:     "marker at end of text",
			text:     "reply body\n## Feedback",
			expected: models.VerdictUnknown,
		},
		{
			name:     "marker preceded by runes that shrink when lowered",
			text:     "İİİİ\n## Feedback\n" + GlyphCorrect + " Right.",
			expected: models.VerdictCorrect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractVerdict(tt.text)
			if got != tt.expected {
				t.Errorf("ExtractVerdict() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

// The parser must be total: any input yields 0-6 skills and a valid
// verdict, never a panic.
func TestParseReplyTotality(t *testing.T) {
	inputs := []string{
		"",
		"## Skills",
		"## skills,,,,",
		"## Feedback",
		strings.Repeat("## Skills\n,", 200),
		"###### Skills ## Feedback ## Skills",
		"\x00\x01 garbage ## skills \xff",
		"no markers at all, just commas, everywhere",
		// Runes whose byte width changes under case mapping must not
		// shift the marker offset out of bounds.
		"ȺȺȺȺ## skills",
		"ȺȺȺȺ## Skills\nAlgebra",
		"İİİİ## Feedback\n" + GlyphCorrect,
		strings.Repeat("Ⱥ", 50) + "## skills\na, b\n" + strings.Repeat("İ", 50) + "## feedback",
	}

	for _, input := range inputs {
		result := ParseReply(input)
		if len(result.Skills) > MaxSkillTags {
			t.Errorf("got %d skills for input %q, expected at most %d", len(result.Skills), input, MaxSkillTags)
		}
		switch result.Verdict {
		case models.VerdictCorrect, models.VerdictIncorrect, models.VerdictUnknown:
		default:
			t.Errorf("unexpected verdict %q for input %q", result.Verdict, input)
		}

		again := ParseReply(input)
		if !reflect.DeepEqual(result, again) {
			t.Errorf("ParseReply not deterministic for input %q", input)
		}
	}
}

func TestDemoRepliesParse(t *testing.T) {
	tests := []struct {
		name    string
		task    string
		mode    string
		verdict models.Verdict
	}{
		{"practice", models.TaskPractice, models.ModeNormal, models.VerdictUnknown},
		{"grade", models.TaskGrade, models.ModeNormal, models.VerdictUnknown},
		{"session", models.TaskTutor, models.ModeSession, models.VerdictCorrect},
		{"normal", models.TaskTutor, models.ModeNormal, models.VerdictUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := DemoReply(tt.task, tt.mode)
			result := ParseReply(reply)

			if len(result.Skills) < 2 || len(result.Skills) > 5 {
				t.Errorf("expected 2-5 skill tags in demo reply, got %v", result.Skills)
			}
			if result.Verdict != tt.verdict {
				t.Errorf("expected verdict %v, got %v", tt.verdict, result.Verdict)
			}
		})
	}
}

func TestDemoPracticeSkillsLine(t *testing.T) {
	reply := DemoReply(models.TaskPractice, models.ModeNormal)

	if !strings.HasSuffix(reply, "Linear equations, Inverse operations, Combining like terms") {
		t.Error("expected practice demo to end with the fixed skills line")
	}
	if got := strings.Count(reply, "Hint:"); got != 6 {
		t.Errorf("expected six practice hints, got %d", got)
	}
}
