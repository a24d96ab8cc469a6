package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		key      string
		wantErr  string
		contains string
	}{
		{name: "known prompt", file: CompressionFile, key: KeySummary, contains: "Optimize this professional summary"},
		{name: "unknown file", file: "nonexistent.json", key: "some-key", wantErr: "failed to read prompt file"},
		{name: "unknown key", file: CompressionFile, key: "nonexistent-key", wantErr: "not found in compression.json (have achievements, education, experience-bullets, summary)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := Get(tt.file, tt.key)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.contains)
		})
	}
}

func TestLoad_Cached(t *testing.T) {
	first, err := Load(CompressionFile)
	require.NoError(t, err)
	second, err := Load(CompressionFile)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{KeyAchievements, KeyEducation, KeyExperienceBullets, KeySummary}, first.Keys())
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"Limit", "Summary"}, Placeholders("{{.Limit}} {{.Summary}} ~{{.Limit}} {{ .Spaced }}"))
	assert.Empty(t, Placeholders("no placeholders"))
}

func TestRender_MissingValues(t *testing.T) {
	_, err := Render(KeySummary, map[string]string{"Summary": "Engineer"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Limit")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{"replaces all occurrences", "{{.Limit}} then {{.Limit}}", map[string]string{"Limit": "80"}, "80 then 80"},
		{"unknown placeholder kept", "Hello {{.Name}} {{.Other}}", map[string]string{"Name": "Ada"}, "Hello Ada {{.Other}}"},
		{"nil data", "{{.X}}", nil, "{{.X}}"},
		{"values are not re-expanded", "{{.A}}", map[string]string{"A": "{{.B}}", "B": "b"}, "{{.B}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestRender_CompressionPrompts(t *testing.T) {
	tests := []struct {
		key  string
		data map[string]string
	}{
		{KeySummary, map[string]string{"Limit": "150", "Summary": "Engineer"}},
		{KeyExperienceBullets, map[string]string{"JobTitle": "Dev", "Company": "Acme", "Duration": "2020 - Present", "Description": "Built", "Position": "MOST RECENT"}},
		{KeyEducation, map[string]string{"Limit": "50", "Degree": "BSc", "Institution": "MIT", "Description": "Honors"}},
		{KeyAchievements, map[string]string{"Name": "Ada", "JobTitle": "Dev", "Summary": "S", "Experience": "E", "Skills": "Go", "Certifications": "N/A"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			prompt, err := Render(tt.key, tt.data)
			require.NoError(t, err)
			assert.False(t, strings.Contains(prompt, "{{."), "unfilled placeholder in %s", tt.key)
		})
	}
}
