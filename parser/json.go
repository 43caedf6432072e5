// Package parser imports and exports actor definitions as structured
// documents. JSON and YAML carry the same shape as model.Definition; both
// import paths apply defaults and validate, so a decoded definition is
// always safe to hand to code generation.
package parser

import (
	"encoding/json"
	"fmt"

	"github.com/stagehand-xyz/go-stagehand/model"
)

// FromJSON decodes a definition from JSON bytes, applies defaults, and
// validates. A declared tick_interval of 0 is treated as unset.
func FromJSON(data []byte) (*model.Definition, error) {
	var def model.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	def.ApplyDefaults()
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// ToJSON serializes a definition to indented JSON bytes.
func ToJSON(def *model.Definition) ([]byte, error) {
	return json.MarshalIndent(def, "", "  ")
}
