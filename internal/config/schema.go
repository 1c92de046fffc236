package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// configSchema constrains the hearth.yaml document.
var configSchema = []byte(`{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Hearth client configuration",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "server_url": {
      "type": "string",
      "minLength": 1,
      "pattern": "^https?://"
    },
    "download_dir": {
      "type": "string"
    },
    "theme": {
      "type": "string",
      "enum": ["dark", "light", "auto"]
    },
    "timeout_seconds": {
      "type": "integer",
      "minimum": 1,
      "maximum": 300
    },
    "log_file": {
      "type": "string"
    }
  }
}`)

var (
	compiledSchema *gojsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func getSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		loader := gojsonschema.NewBytesLoader(configSchema)
		compiledSchema, compileErr = gojsonschema.NewSchema(loader)
	})
	return compiledSchema, compileErr
}

// ValidateYAML checks a raw hearth.yaml document against the config schema.
// It returns a slice of validation error descriptions and an error if the
// document cannot be checked at all.
func ValidateYAML(data []byte) ([]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if doc == nil {
		return nil, nil
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding config for validation: %w", err)
	}

	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	return errs, nil
}
