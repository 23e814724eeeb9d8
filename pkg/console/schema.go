package console

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed conventions.schema.json
var schemaFS embed.FS

var (
	conventionsSchema *jsonschema.Schema
	compileOnce       sync.Once
	compileErr        error
)

func compileSchema() error {
	compileOnce.Do(func() {
		data, err := schemaFS.ReadFile("conventions.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read conventions schema: %w", err)
			return
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal conventions schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("conventions.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add conventions schema resource: %w", err)
			return
		}

		conventionsSchema, err = compiler.Compile("conventions.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile conventions schema: %w", err)
		}
	})

	return compileErr
}

// validateConventions validates YAML conventions data against the embedded
// schema.
func validateConventions(data []byte) error {
	if err := compileSchema(); err != nil {
		return err
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	if err := conventionsSchema.Validate(v); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
