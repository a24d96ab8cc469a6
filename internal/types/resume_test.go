package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString_Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "string", input: `"hello"`, expected: "hello"},
		{name: "number", input: `3.85`, expected: "3.85"},
		{name: "integer", input: `92`, expected: "92"},
		{name: "bool", input: `true`, expected: "true"},
		{name: "null", input: `null`, expected: ""},
		{name: "array of strings", input: `["Built APIs.", "Led team."]`, expected: "Built APIs. Led team."},
		{name: "object", input: `{"a":1}`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexString
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.Equal(t, tt.expected, string(f))
		})
	}
}

func TestSkill_UnmarshalBareString(t *testing.T) {
	var skills []Skill
	err := json.Unmarshal([]byte(`["Go", {"name":"Kubernetes","level":"Expert"}, {"skill":"SQL"}]`), &skills)
	require.NoError(t, err)
	require.Len(t, skills, 3)
	assert.Equal(t, Skill{Name: "Go"}, skills[0])
	assert.Equal(t, Skill{Name: "Kubernetes", Proficiency: "Expert"}, skills[1])
	assert.Equal(t, "SQL", skills[2].Name)
}

func TestAchievement_UnmarshalColonString(t *testing.T) {
	var achievements []Achievement
	err := json.Unmarshal([]byte(`["Leadership: Led 8 engineers", "Shipped v2", {"title":"Impact","description":"Saved $1M"}]`), &achievements)
	require.NoError(t, err)
	require.Len(t, achievements, 3)
	assert.Equal(t, Achievement{Category: "Leadership", Description: "Led 8 engineers"}, achievements[0])
	assert.Equal(t, Achievement{Description: "Shipped v2"}, achievements[1])
	assert.Equal(t, Achievement{Category: "Impact", Description: "Saved $1M"}, achievements[2])
}

func TestCustomSection_MixedItems(t *testing.T) {
	var section CustomSection
	err := json.Unmarshal([]byte(`{"title":"Volunteering","items":["Food bank",{"name":"Mentor"},""]}`), &section)
	require.NoError(t, err)
	assert.Equal(t, "Volunteering", section.Title)
	assert.Equal(t, []string{"Food bank", "Mentor"}, section.Items)
}

func TestCustomSection_ContentFallback(t *testing.T) {
	var section CustomSection
	err := json.Unmarshal([]byte(`{"name":"Interests","content":"Chess and hiking"}`), &section)
	require.NoError(t, err)
	assert.Equal(t, "Interests", section.Title)
	assert.Equal(t, []string{"Chess and hiking"}, section.Items)
}

func TestRawResume_Unmarshal(t *testing.T) {
	payload := `{
		"name": "Ada Lovelace",
		"experience": [{"position": "Engineer", "employer": "Analytical Co", "description": ["Built engines.", "Wrote programs."]}],
		"education": [{"school": "University of London", "gpa": 3.9}],
		"skills": ["Mathematics"]
	}`

	var raw RawResume
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	assert.Equal(t, "Ada Lovelace", raw.Name.String())
	require.Len(t, raw.Experience, 1)
	assert.Equal(t, "Engineer", raw.Experience[0].Position.String())
	assert.Equal(t, "Built engines. Wrote programs.", raw.Experience[0].Description.String())
	require.Len(t, raw.Education, 1)
	assert.Equal(t, "3.9", raw.Education[0].GPA.String())
}
