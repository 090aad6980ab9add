package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Field describes one categorical clinical field: the values the form
// offers and the neutral default used when the field was left blank.
type Field struct {
	Values  []string `yaml:"values"`
	Default string   `yaml:"default"`
}

// Catalog maps field name -> Field
type Catalog map[string]Field

type catalogFile struct {
	Fields map[string]Field `yaml:"fields"`
}

// Load loads a field catalog from a yaml file.
func Load(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cf catalogFile
	if err := yaml.Unmarshal(b, &cf); err != nil {
		return nil, err
	}
	c := Catalog(cf.Fields)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns the built-in catalog matching the clinical form.
func Default() Catalog {
	return Catalog{
		"family_history":    {Values: []string{"yes", "no"}, Default: "no"},
		"weight_changes":    {Values: []string{"stable", "loss", "gain"}, Default: "stable"},
		"stress_level":      {Values: []string{"low", "medium", "high"}, Default: "medium"},
		"smoking":           {Values: []string{"yes", "no"}, Default: "no"},
		"alcohol":           {Values: []string{"none", "rarely", "daily", "socially"}, Default: "none"},
		"painkiller_usage":  {Values: []string{"yes", "no", "occasional"}, Default: "no"},
		"diet":              {Values: []string{"balanced", "high protein", "low carb", "low salt"}, Default: "balanced"},
		"physical_activity": {Values: []string{"daily", "occasional", "rarely"}, Default: "occasional"},
	}
}

// DefaultFor returns the neutral default for a field, empty if the
// field is unknown.
func (c Catalog) DefaultFor(field string) string {
	return c[field].Default
}

// Normalize returns the value if it is one of the field's known
// values, otherwise the field's default. Unknown fields pass through
// unchanged.
func (c Catalog) Normalize(field, value string) string {
	f, ok := c[field]
	if !ok {
		return value
	}
	for _, v := range f.Values {
		if v == value {
			return value
		}
	}
	return f.Default
}

func (c Catalog) validate() error {
	for name, f := range c {
		if f.Default == "" {
			return fmt.Errorf("catalog field %s has no default", name)
		}
		found := false
		for _, v := range f.Values {
			if v == f.Default {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("catalog field %s default %q is not a listed value", name, f.Default)
		}
	}
	return nil
}
