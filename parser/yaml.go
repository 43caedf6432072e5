package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/stagehand-xyz/go-stagehand/model"
)

// FromYAML decodes a definition from YAML, applies defaults, and validates.
func FromYAML(data []byte) (*model.Definition, error) {
	var def model.Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	def.ApplyDefaults()
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// ToYAML encodes a definition as YAML.
func ToYAML(def *model.Definition) ([]byte, error) {
	data, err := yaml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}
