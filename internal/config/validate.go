package config

import (
	"embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaFS embed.FS

// Validate checks raw config JSON against the embedded CUE schema
// before it is unmarshaled into a Config. A stray field or a wrong type
// fails here with a precise CUE error instead of being silently dropped
// by json.Unmarshal or silently doing nothing downstream.
func Validate(jsonBytes []byte) error {
	ctx := cuecontext.New()

	schemaBytes, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return fmt.Errorf("loading embedded config schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return fmt.Errorf("compiling config schema: %w", schema.Err())
	}

	configDef := schema.LookupPath(cue.ParsePath("#Config"))
	if configDef.Err() != nil {
		return fmt.Errorf("looking up #Config definition: %w", configDef.Err())
	}

	dataValue := ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return fmt.Errorf("compiling config as CUE: %w", dataValue.Err())
	}

	unified := configDef.Unify(dataValue)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}
