// Package samples provides ready-made snippets for the composer.
package samples

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed samples.yaml
var defaultYAML []byte

// Sample is one predefined piece of text.
type Sample struct {
	Label string `yaml:"label" toml:"label"`
	Text  string `yaml:"text" toml:"text"`
}

// Parse decodes a YAML list of samples, dropping entries without text.
func Parse(data []byte) ([]Sample, error) {
	var raw []Sample
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode samples: %w", err)
	}
	return Normalize(raw), nil
}

// Normalize trims samples, drops entries without text and labels the rest.
func Normalize(items []Sample) []Sample {
	result := make([]Sample, 0, len(items))
	for i, sample := range items {
		sample.Text = strings.TrimSpace(sample.Text)
		if sample.Text == "" {
			continue
		}
		sample.Label = strings.TrimSpace(sample.Label)
		if sample.Label == "" {
			sample.Label = fmt.Sprintf("Sample %d", i+1)
		}
		result = append(result, sample)
	}
	return result
}

// Default returns the embedded snippets.
func Default() []Sample {
	result, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return result
}

// Cycler hands out samples round-robin.
type Cycler struct {
	items []Sample
	next  int
}

// NewCycler returns a Cycler over the normalized items; when none remain it
// falls back to Default.
func NewCycler(items []Sample) *Cycler {
	items = Normalize(items)
	if len(items) == 0 {
		items = Default()
	}
	return &Cycler{items: items}
}

// Next returns the following sample.
func (c *Cycler) Next() Sample {
	sample := c.items[c.next%len(c.items)]
	c.next++
	return sample
}

// Len reports how many samples are available.
func (c *Cycler) Len() int { return len(c.items) }
