package catalog

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Override adjusts the deployment-specific flags of one tool. Nil fields keep
// the built-in value.
type Override struct {
	Hidden       *bool          `yaml:"hidden"`
	Experimental *bool          `yaml:"experimental"`
	Plan         *string        `yaml:"plan"`
	Timeout      *time.Duration `yaml:"timeout"`
}

// Overrides is the on-disk overrides document, keyed by tool slug
type Overrides struct {
	Tools map[string]Override `yaml:"tools"`
}

// LoadOverrides reads an overrides file. An empty path yields no overrides.
func LoadOverrides(path string) (*Overrides, error) {
	if path == "" {
		return &Overrides{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog overrides %s: %w", path, err)
	}
	return ParseOverrides(data)
}

// ParseOverrides decodes an overrides document
func ParseOverrides(data []byte) (*Overrides, error) {
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse catalog overrides: %w", err)
	}
	return &o, nil
}

// Apply returns a copy of descriptors with the overrides applied. Naming a slug
// that does not exist is an error so typos do not pass silently.
func (o *Overrides) Apply(descriptors []ToolDescriptor) ([]ToolDescriptor, error) {
	out := append([]ToolDescriptor(nil), descriptors...)
	if o == nil || len(o.Tools) == 0 {
		return out, nil
	}

	index := make(map[string]int, len(out))
	for i, d := range out {
		index[d.Slug] = i
	}

	for slug, ov := range o.Tools {
		i, ok := index[slug]
		if !ok {
			return nil, fmt.Errorf("catalog override for unknown tool %q", slug)
		}
		d := &out[i]
		if ov.Hidden != nil {
			d.IsHidden = *ov.Hidden
		}
		if ov.Experimental != nil {
			d.IsExperimental = *ov.Experimental
		}
		if ov.Plan != nil {
			if *ov.Plan != PlanFree && *ov.Plan != PlanPro {
				return nil, fmt.Errorf("catalog override for %q: unknown plan %q", slug, *ov.Plan)
			}
			d.Plan = *ov.Plan
		}
		if ov.Timeout != nil {
			if *ov.Timeout <= 0 {
				return nil, fmt.Errorf("catalog override for %q: timeout must be positive", slug)
			}
			d.Timeout = *ov.Timeout
		}
	}
	return out, nil
}
