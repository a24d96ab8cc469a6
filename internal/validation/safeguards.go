package validation

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// InjectionCheckResult holds the result of a basic injection heuristic check.
type InjectionCheckResult struct {
	IsSafe          bool     // Whether the content passed the basic heuristic check
	DetectedPhrases []string // Any suspicious phrases found
	Reason          string   // Human-readable explanation
}

// injectionPatterns match instructions aimed at the model rather than résumé
// content. Single words such as "ignore" appear in real résumés, so only
// phrases are matched.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(?:all\s+)?(?:previous|prior|above)\s+instructions?`),
	regexp.MustCompile(`(?i)disregard\s+(?:all\s+)?(?:previous|prior|above)`),
	regexp.MustCompile(`(?i)forget\s+(?:all\s+)?(?:previous|prior|everything)`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+an?\b`),
	regexp.MustCompile(`(?i)act\s+as\s+if\s+you\s+are`),
	regexp.MustCompile(`(?i)new\s+instructions?:`),
	regexp.MustCompile(`(?i)system\s+prompt`),
}

// CheckBasicHeuristics reports phrases that look like prompt injection.
func CheckBasicHeuristics(text string) *InjectionCheckResult {
	var detected []string
	for _, pattern := range injectionPatterns {
		if m := pattern.FindString(text); m != "" {
			detected = append(detected, strings.ToLower(m))
		}
	}

	if len(detected) > 0 {
		return &InjectionCheckResult{
			IsSafe:          false,
			DetectedPhrases: detected,
			Reason:          "detected potential injection phrases: " + strings.Join(detected, ", "),
		}
	}
	return &InjectionCheckResult{IsSafe: true}
}

// StripInjectionAttempts replaces injection phrases with [REDACTED].
func StripInjectionAttempts(text string) string {
	for _, pattern := range injectionPatterns {
		text = pattern.ReplaceAllString(text, "[REDACTED]")
	}
	return text
}

// SanitizePromptInput strips injection phrases from text bound for a prompt and
// logs a warning naming the source field when any were found.
func SanitizePromptInput(text, source string, logger logrus.FieldLogger) string {
	result := CheckBasicHeuristics(text)
	if result.IsSafe {
		return text
	}
	if logger != nil {
		logger.WithFields(logrus.Fields{
			"source": source,
			"reason": result.Reason,
		}).Warn("Potential prompt injection detected")
	}
	return StripInjectionAttempts(text)
}
