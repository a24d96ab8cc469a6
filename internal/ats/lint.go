package ats

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// MaxSentenceLength is the length above which a sentence is reported as too long.
const MaxSentenceLength = 100

type lintRule struct {
	pattern *regexp.Regexp
	message string
}

var lintRules = []lintRule{
	{regexp.MustCompile(`\b(?:i|me|my|myself)\b`), "First person pronouns detected - consider using third person"},
	{regexp.MustCompile(`\b(?:very|really|quite|extremely)\s+\w+`), "Weak adverbs detected - consider stronger alternatives"},
	{regexp.MustCompile(`\b(?:responsible for|in charge of|handled)\b`), "Weak action verbs detected - consider stronger alternatives"},
	{regexp.MustCompile(`\b(?:etc|and so on|and more)\b`), "Vague endings detected - be more specific"},
	{regexp.MustCompile(`\b(?:proven track record|results-driven|detail-oriented)\b`), "Generic phrases detected - be more specific"},
}

var (
	wordPattern     = regexp.MustCompile(`\b\w{4,}\b`)
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)
)

// WordCount is a word and the number of times it occurs.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Lint returns advisory wording issues found in text. It never modifies content
// and an empty result means nothing was flagged.
func Lint(text string) []string {
	text = strings.ToLower(text)
	issues := []string{}

	for _, rule := range lintRules {
		if rule.pattern.MatchString(text) {
			issues = append(issues, rule.message)
		}
	}

	if repeated := RepeatedWords(text, 5); len(repeated) > 0 {
		parts := make([]string, len(repeated))
		for i, wc := range repeated {
			parts[i] = fmt.Sprintf("%s(%d)", wc.Word, wc.Count)
		}
		issues = append(issues, "Repetitive words detected: "+strings.Join(parts, ", "))
	}

	long := 0
	for _, sentence := range sentencePattern.FindAllString(text, -1) {
		if len(sentence) > MaxSentenceLength {
			long++
		}
	}
	if long > 0 {
		issues = append(issues, fmt.Sprintf("%d sentences are too long (over %d characters)", long, MaxSentenceLength))
	}

	return issues
}

// RepeatedWords returns up to limit words longer than four characters that occur
// more than three times, most frequent first. Ties keep first-seen order.
func RepeatedWords(text string, limit int) []WordCount {
	counts := make(map[string]int)
	var order []string
	for _, w := range wordPattern.FindAllString(text, -1) {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	var repeated []WordCount
	for _, w := range order {
		if c := counts[w]; c > 3 && len(w) > 4 {
			repeated = append(repeated, WordCount{Word: w, Count: c})
		}
	}
	slices.SortStableFunc(repeated, func(a, b WordCount) int {
		return b.Count - a.Count
	})
	if len(repeated) > limit {
		repeated = repeated[:limit]
	}
	return repeated
}
