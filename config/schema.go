package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema for the configuration document, for use
// by external validation and editor tooling.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	s := reflector.Reflect(Document{})
	return json.MarshalIndent(s, "", "  ")
}
