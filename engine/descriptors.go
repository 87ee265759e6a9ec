package engine

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FieldDescriptor is the declarative shape a Metadata collaborator (spec.md §6)
// supplies for one field; Database construction turns these into concrete Field
// values (spec.md §3 "Field descriptor").
type FieldDescriptor struct {
	Name      string      `yaml:"name" json:"name"`
	QueryPath string      `yaml:"queryPath,omitempty" json:"queryPath,omitempty"`
	Type      string      `yaml:"type" json:"type"`
	Creator   string      `yaml:"creator,omitempty" json:"creator,omitempty"` // "user" | "system"
	Required  bool        `yaml:"required,omitempty" json:"required,omitempty"`
	Immutable bool        `yaml:"immutable,omitempty" json:"immutable,omitempty"`
	Default   interface{} `yaml:"default,omitempty" json:"default,omitempty"`

	// type-specific sub-config
	MaxLength  int               `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Searchable bool              `yaml:"searchable,omitempty" json:"searchable,omitempty"`
	EnumValues []string          `yaml:"enumValues,omitempty" json:"enumValues,omitempty"`
	IID        string            `yaml:"iid,omitempty" json:"iid,omitempty"`
	Fields     []FieldDescriptor `yaml:"fields,omitempty" json:"fields,omitempty"` // object / object-list sub-model
}

// ModelDescriptor is the declarative shape of one model (spec.md §3 "Model descriptor").
type ModelDescriptor struct {
	Name            string            `yaml:"name" json:"name"`
	Schema          string            `yaml:"schema,omitempty" json:"schema,omitempty"`
	IID             string            `yaml:"iid" json:"iid"`
	Type            string            `yaml:"type,omitempty" json:"type,omitempty"` // "" (top-level) | "object" | "object-list"
	Fields          []FieldDescriptor `yaml:"fields" json:"fields"`
	ParentHierarchy []string          `yaml:"parentHierarchy,omitempty" json:"parentHierarchy,omitempty"`
}

// DatabaseDescriptor is the declarative shape of one database (spec.md §3
// "Database descriptor").
type DatabaseDescriptor struct {
	Name              string            `yaml:"name" json:"name"`
	IID               string            `yaml:"iid" json:"iid"`
	Type              Dialect           `yaml:"type" json:"type"`
	AssignUniqueName  bool              `yaml:"assignUniqueName,omitempty" json:"assignUniqueName,omitempty"`
	Models            []ModelDescriptor `yaml:"models" json:"models"`
}

// EffectiveName returns the database's wire name, applying spec.md §3's
// "${envId}_${iid}" rule when AssignUniqueName is set.
func (d *DatabaseDescriptor) EffectiveName(envID string) string {
	if d.AssignUniqueName {
		return envID + "_" + d.IID
	}
	return d.Name
}

// LoadDatabaseDescriptorYAML parses a DatabaseDescriptor from YAML (spec.md §6:
// the Metadata collaborator normally supplies descriptors at runtime; this is a
// convenience for the common case where they're checked in as a file instead).
func LoadDatabaseDescriptorYAML(data []byte) (*DatabaseDescriptor, error) {
	var d DatabaseDescriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("engine: parsing database descriptor yaml: %w", err)
	}
	return &d, nil
}
