// Package prompts holds the text-generation prompts used by the compressor.
// Prompt files are JSON objects of key to template and are embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// CompressionFile is the prompt file used by the content compressor.
const CompressionFile = "compression.json"

// Prompt keys in CompressionFile.
const (
	KeySummary           = "summary"
	KeyExperienceBullets = "experience-bullets"
	KeyEducation         = "education"
	KeyAchievements      = "achievements"
)

//go:embed *.json
var promptFiles embed.FS

var placeholder = regexp.MustCompile(`\{\{\.([A-Za-z][A-Za-z0-9]*)\}\}`)

// File is one parsed prompt file.
type File map[string]string

// Keys returns the prompt keys in sorted order.
func (f File) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// files caches parsed prompt files by name.
var files sync.Map

// Load parses an embedded prompt file. Results are cached.
func Load(filename string) (File, error) {
	if f, ok := files.Load(filename); ok {
		return f.(File), nil
	}

	raw, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	actual, _ := files.LoadOrStore(filename, f)
	return actual.(File), nil
}

// Get returns the template stored under key in filename.
func Get(filename, key string) (string, error) {
	f, err := Load(filename)
	if err != nil {
		return "", err
	}
	tmpl, ok := f[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s (have %s)", key, filename, strings.Join(f.Keys(), ", "))
	}
	return tmpl, nil
}

// Render fills a compression prompt. Every placeholder in the template must
// have a value in data.
func Render(key string, data map[string]string) (string, error) {
	tmpl, err := Get(CompressionFile, key)
	if err != nil {
		return "", err
	}
	var missing []string
	for _, name := range Placeholders(tmpl) {
		if _, ok := data[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("prompt %q is missing values for %s", key, strings.Join(missing, ", "))
	}
	return Format(tmpl, data), nil
}

// Placeholders lists the distinct {{.Name}} placeholders of template in order of appearance.
func Placeholders(template string) []string {
	var names []string
	for _, m := range placeholder.FindAllStringSubmatch(template, -1) {
		if !slices.Contains(names, m[1]) {
			names = append(names, m[1])
		}
	}
	return names
}

// Format replaces {{.Key}} placeholders with values from data in a single
// pass. Unknown placeholders are left untouched.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
