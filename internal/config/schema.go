package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema describes the config file. Every key is optional since files are
// decoded on top of the defaults.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(new(PacmanConfig))
	schema.Title = "Pac-Man Config"
	schema.Description = "Validates pacman.yaml files loaded with --config or from ~/.pacman/configs"
	return schema
}

// SchemaJSON renders Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
