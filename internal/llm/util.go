package llm

import "strings"

// CleanJSONBlock removes markdown code block wrappers from JSON responses
// and drops any conversational preamble before the first bracket.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	text = strings.ReplaceAll(text, "`", "")
	if start := strings.IndexAny(text, "[{"); start > 0 {
		open := text[start]
		closer := byte('}')
		if open == '[' {
			closer = ']'
		}
		if end := strings.LastIndexByte(text, closer); end > start {
			text = text[start : end+1]
		}
	}
	return strings.TrimSpace(text)
}

// StripFences removes code fences and stray backticks from free-text output.
func StripFences(text string) string {
	text = strings.ReplaceAll(text, "```", "")
	text = strings.ReplaceAll(text, "`", "")
	return strings.TrimSpace(text)
}
