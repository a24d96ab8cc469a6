package compress

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/onepager/internal/llm"
	"github.com/jonathan/onepager/internal/schemas"
	"github.com/jonathan/onepager/internal/types"
	rootschemas "github.com/jonathan/onepager/schemas"
)

// Limits on generated content.
const (
	MaxBullets         = 4
	MinBullets         = 2
	MinBulletLength    = 21
	MinSentenceLength  = 16
	MaxAchievements    = 5
	BulletJoinSep      = " | "
	bulletMarkerPrefix = "•-*"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	strongVerb    = regexp.MustCompile(`(?i)^(?:Architected|Engineered|Spearheaded|Orchestrated|Pioneered|Optimized|Transformed|Accelerated|Scaled|Revolutionized|Implemented|Delivered|Led|Managed|Developed|Created|Built|Designed|Improved|Increased|Reduced|Enhanced)`)
)

// contextVerbs pick a leading verb for a sentence that lacks one. First match wins.
var contextVerbs = []struct {
	pattern *regexp.Regexp
	verb    string
}{
	{regexp.MustCompile(`(?i)\b(?:system|software|application|platform|solution)\b`), "Developed"},
	{regexp.MustCompile(`(?i)\b(?:team|people|staff|members)\b`), "Led"},
	{regexp.MustCompile(`(?i)\b(?:process|workflow|procedure|method)\b`), "Optimized"},
	{regexp.MustCompile(`(?i)\b(?:revenue|sales|profit|cost|budget)\b`), "Achieved"},
}

const defaultVerb = "Delivered"

// fallbackAchievements is shown when no achievements can be generated.
var fallbackAchievements = []types.Achievement{
	{Category: "Technical Leadership", Description: "Architected scalable microservices reducing system response time by 40% and improving reliability by 99.9%."},
	{Category: "Team Excellence", Description: "Led cross-functional team of 8 developers delivering 3 major features ahead of schedule with 95% customer satisfaction."},
	{Category: "Innovation & Optimization", Description: "Pioneered automated testing framework reducing deployment time by 60% and increasing code coverage to 85%."},
	{Category: "Business Impact", Description: "Engineered data pipeline processing 1M+ records daily, generating $500K in cost savings and 30% efficiency gains."},
	{Category: "Problem Solving", Description: "Resolved critical production issues reducing downtime by 80% and implementing proactive monitoring preventing 90% of incidents."},
}

// FallbackAchievements returns a fresh copy of the fixed achievement list.
func FallbackAchievements() []types.Achievement {
	return append([]types.Achievement(nil), fallbackAchievements...)
}

// sentences splits text on terminator runs and drops blank pieces.
func sentences(text string) []string {
	var out []string
	for _, s := range sentenceSplit.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Condense shortens text to at most limit characters. Whole sentences are kept
// greedily while they fit; when not even the first sentence fits, the text is cut
// at limit. Text already within limit is returned unchanged.
func Condense(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	var b strings.Builder
	for _, s := range sentences(text) {
		next := s + "."
		if b.Len() > 0 {
			next = " " + next
		}
		if utf8.RuneCountInString(b.String()+next) > limit {
			break
		}
		b.WriteString(next)
	}
	if b.Len() > 0 {
		return b.String()
	}
	return strings.TrimSpace(string([]rune(text)[:limit]))
}

// SynthesizeBullets turns a free-text description into up to four bullets, each
// led by a strong verb.
func SynthesizeBullets(description string) []string {
	var bullets []string
	for _, s := range sentences(description) {
		if len(bullets) == MaxBullets {
			break
		}
		if utf8.RuneCountInString(s) < MinSentenceLength {
			continue
		}
		if !strongVerb.MatchString(s) {
			s = leadingVerb(s) + " " + strings.ToLower(s)
		}
		bullets = append(bullets, capitalize(s))
	}
	return bullets
}

func leadingVerb(s string) string {
	for _, cv := range contextVerbs {
		if cv.pattern.MatchString(s) {
			return cv.verb
		}
	}
	return defaultVerb
}

// ParseBullets extracts marker-prefixed lines from model output. Lines of 20
// characters or fewer are dropped and at most four are kept.
func ParseBullets(text string) []string {
	text = llm.StripFences(text)
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.ContainsRune(bulletMarkerPrefix, firstRune(line)) {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line[utf8.RuneLen(firstRune(line)):], " \t"))
		if utf8.RuneCountInString(line) < MinBulletLength {
			continue
		}
		bullets = append(bullets, line)
		if len(bullets) == MaxBullets {
			break
		}
	}
	return bullets
}

// ParseAchievements decodes a generated achievements list. The output must
// validate against the achievements schema; at most five entries are kept.
func ParseAchievements(text string) ([]types.Achievement, error) {
	cleaned := llm.CleanJSONBlock(text)
	if err := schemas.Validate(rootschemas.Achievements, []byte(cleaned)); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrRejected, err)
	}

	var raw []struct {
		Category    string `json:"category"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrRejected, err)
	}

	if len(raw) > MaxAchievements {
		raw = raw[:MaxAchievements]
	}
	out := make([]types.Achievement, 0, len(raw))
	for i, a := range raw {
		category := strings.TrimSpace(a.Category)
		if category == "" {
			category = fmt.Sprintf("Achievement %d", i+1)
		}
		description := capitalize(strings.TrimSpace(a.Description))
		if !strings.HasSuffix(description, ".") && !strings.HasSuffix(description, "!") {
			description += "."
		}
		out = append(out, types.Achievement{Category: category, Description: description})
	}
	return out, nil
}

// PositionLabel names an experience entry's place in the sorted history.
func PositionLabel(index int) string {
	switch index {
	case 0:
		return "MOST RECENT"
	case 1:
		return "SECOND MOST RECENT"
	default:
		return "earlier"
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
