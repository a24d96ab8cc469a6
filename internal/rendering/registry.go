package rendering

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FallbackTemplate is used when a requested template is unknown.
const FallbackTemplate = "ats_optimized"

//go:embed templates.yaml
var templatesYAML []byte

// Template is one entry of the template catalogue.
type Template struct {
	Key      string `yaml:"key" json:"key"`
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
	Style    Style  `yaml:"style" json:"style"`
}

// Style holds the visual settings a template contributes.
type Style struct {
	FontFamily string  `yaml:"fontFamily" json:"fontFamily"`
	Colors     Palette `yaml:"colors" json:"colors"`
}

// Palette is a template's colour set. Empty entries fall through to the defaults.
type Palette struct {
	Primary    string `yaml:"primary" json:"primary,omitempty"`
	Secondary  string `yaml:"secondary" json:"secondary,omitempty"`
	Text       string `yaml:"text" json:"text,omitempty"`
	Accent     string `yaml:"accent" json:"accent,omitempty"`
	Background string `yaml:"background" json:"background,omitempty"`
}

type catalogue struct {
	Templates []Template `yaml:"templates"`
}

// Registry resolves template names case-insensitively. Resolutions, including
// fallbacks, are cached for the life of the registry.
type Registry struct {
	templates []Template
	cache     sync.Map // lowercased name -> Template
	logger    logrus.FieldLogger
}

var (
	defaultRegistry     *Registry
	defaultRegistryErr  error
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry built from the embedded catalogue.
func DefaultRegistry() (*Registry, error) {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = LoadRegistry(templatesYAML, nil)
	})
	return defaultRegistry, defaultRegistryErr
}

// MustDefaultRegistry is DefaultRegistry for callers that cannot continue
// without the embedded catalogue.
func MustDefaultRegistry() *Registry {
	reg, err := DefaultRegistry()
	if err != nil {
		panic(err)
	}
	return reg
}

// LoadRegistry parses a YAML catalogue. It must contain at least one template.
func LoadRegistry(data []byte, logger logrus.FieldLogger) (*Registry, error) {
	var c catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, &TemplateError{Message: "failed to parse template catalogue", Cause: err}
	}
	if len(c.Templates) == 0 {
		return nil, &TemplateError{Message: "template catalogue is empty"}
	}
	for i, t := range c.Templates {
		if strings.TrimSpace(t.Key) == "" {
			return nil, &TemplateError{Message: fmt.Sprintf("template %d has no key", i)}
		}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Registry{templates: c.Templates, logger: logger.WithField("component", "templates")}, nil
}

// SetLogger replaces the logger used for fallback warnings.
func (r *Registry) SetLogger(logger logrus.FieldLogger) {
	r.logger = logger.WithField("component", "templates")
}

// Lookup returns the template named name. Unknown names resolve to
// ats_optimized, or to the first template when that is missing too.
func (r *Registry) Lookup(name string) Template {
	key := strings.ToLower(strings.TrimSpace(name))
	if cached, ok := r.cache.Load(key); ok {
		return cached.(Template)
	}

	t, ok := r.find(key)
	if !ok {
		t, ok = r.find(FallbackTemplate)
		if !ok {
			t = r.templates[0]
		}
		r.logger.WithFields(logrus.Fields{
			"requested": name,
			"using":     t.Key,
		}).Warn("Template not found, using fallback")
	}

	r.cache.Store(key, t)
	return t
}

// Has reports whether name matches a template without falling back.
func (r *Registry) Has(name string) bool {
	_, ok := r.find(strings.ToLower(strings.TrimSpace(name)))
	return ok
}

// Templates returns the catalogue in declaration order.
func (r *Registry) Templates() []Template {
	return append([]Template(nil), r.templates...)
}

// Names returns the template keys in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.templates))
	for i, t := range r.templates {
		names[i] = t.Key
	}
	return names
}

func (r *Registry) find(key string) (Template, bool) {
	for _, t := range r.templates {
		if strings.ToLower(t.Key) == key {
			return t, true
		}
	}
	return Template{}, false
}
