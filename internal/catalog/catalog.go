// Package catalog holds the immutable questionnaire reference data.
//
// A Catalog is loaded once at startup, validated, and then shared
// read-only between requests. Nothing mutates it after Load returns.
package catalog

import (
	_ "embed"
	"bytes"
	"fmt"
	"io"
	"os"
	"wellbeing/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the validated question catalog
type Catalog struct {
	version    string
	dimensions []string
	questions  []model.Question
	byID       map[string]int
}

type fileQuestion struct {
	ID        string       `yaml:"id"`
	Num       int          `yaml:"num"`
	Text      string       `yaml:"text"`
	Dimension string       `yaml:"dimension"`
	Scale     *model.Scale `yaml:"scale"`
	Inverted  bool         `yaml:"inverted"`
	Source    string       `yaml:"source"`
}

type file struct {
	Version    string         `yaml:"version"`
	Scale      *model.Scale   `yaml:"scale"`
	Dimensions []string       `yaml:"dimensions"`
	Questions  []fileQuestion `yaml:"questions"`
}

// Default returns the built-in 38-question catalog
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a catalog from a yaml file
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a catalog. Questions without their own
// scale inherit the top-level one.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	questions := make([]model.Question, 0, len(f.Questions))
	for i, fq := range f.Questions {
		scale := f.Scale
		if fq.Scale != nil {
			scale = fq.Scale
		}
		if scale == nil {
			return nil, fmt.Errorf("catalog: question %d (%q) has no scale", i, fq.ID)
		}
		questions = append(questions, model.Question{
			ID:        fq.ID,
			Num:       fq.Num,
			Text:      fq.Text,
			Dimension: fq.Dimension,
			Scale:     *scale,
			Inverted:  fq.Inverted,
			Source:    fq.Source,
		})
	}

	return New(f.Version, f.Dimensions, questions)
}

// New validates the given reference data and builds a Catalog from copies of it
func New(version string, dimensions []string, questions []model.Question) (*Catalog, error) {
	if len(dimensions) == 0 {
		return nil, fmt.Errorf("catalog: no dimensions")
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog: no questions")
	}

	known := make(map[string]bool, len(dimensions))
	for _, d := range dimensions {
		if d == "" {
			return nil, fmt.Errorf("catalog: empty dimension name")
		}
		if known[d] {
			return nil, fmt.Errorf("catalog: duplicate dimension %q", d)
		}
		known[d] = true
	}

	c := &Catalog{
		version:    version,
		dimensions: append([]string(nil), dimensions...),
		questions:  make([]model.Question, 0, len(questions)),
		byID:       make(map[string]int, len(questions)),
	}
	for _, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("catalog: question with empty id")
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate question id %q", q.ID)
		}
		if !known[q.Dimension] {
			return nil, fmt.Errorf("catalog: question %q references unknown dimension %q", q.ID, q.Dimension)
		}
		if !q.Scale.Valid() {
			return nil, fmt.Errorf("catalog: question %q has invalid scale [%d,%d]", q.ID, q.Scale.Min, q.Scale.Max)
		}
		q.Scale.Labels = append([]string(nil), q.Scale.Labels...)
		c.byID[q.ID] = len(c.questions)
		c.questions = append(c.questions, q)
	}

	return c, nil
}

// Version returns the catalog version tag
func (c *Catalog) Version() string {
	return c.version
}

// Dimensions returns the dimensions in display order
func (c *Catalog) Dimensions() []string {
	return append([]string(nil), c.dimensions...)
}

// Questions returns a copy of all questions in catalog order
func (c *Catalog) Questions() []model.Question {
	return append([]model.Question(nil), c.questions...)
}

// Lookup finds a question by id
func (c *Catalog) Lookup(id string) (model.Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Question{}, false
	}
	return c.questions[i], true
}

// ByDimension returns the questions bound to a dimension
func (c *Catalog) ByDimension(dimension string) []model.Question {
	var out []model.Question
	for _, q := range c.questions {
		if q.Dimension == dimension {
			out = append(out, q)
		}
	}
	return out
}

// Len returns the number of questions
func (c *Catalog) Len() int {
	return len(c.questions)
}
