package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/stagehand-xyz/go-stagehand/dsl"
	"github.com/stagehand-xyz/go-stagehand/model"
	"github.com/stagehand-xyz/go-stagehand/parser"
)

// loadDefinition reads a definition from disk, picking the decoder by file
// extension: .json and .yaml/.yml are structured documents, everything else
// is DSL text.
func loadDefinition(path string) (*model.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read definition")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		def, err := parser.FromJSON(data)
		return def, errors.Wrapf(err, "parse %s", path)
	case ".yaml", ".yml":
		def, err := parser.FromYAML(data)
		return def, errors.Wrapf(err, "parse %s", path)
	default:
		def, err := dsl.Compile(string(data))
		return def, errors.Wrapf(err, "compile %s", path)
	}
}
