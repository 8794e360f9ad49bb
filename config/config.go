// Package config reads the shader configuration file that drives combo
// enumeration.
//
// The document is a JSON object mapping shader names to descriptors:
//
//	{ "shader": {
//	    "version":  "ps_3_0",
//	    "centroid": 0,
//	    "files":    [ "shader.fxc" ],
//	    "static":   [ { "name": "FOO", "minVal": 0, "maxVal": 1 } ],
//	    "dynamic":  [ { "name": "BAR", "minVal": 0, "maxVal": 3 } ],
//	    "skip":     "$FOO && $BAR == 2"
//	  } }
//
// Shader order in the file is preserved: it is the tie-break when the
// catalog lays equally-sized entries onto the command axis.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iancoleman/orderedmap"
)

// Define describes one axis of a shader's combo space.
type Define struct {
	Name   string `json:"name"`
	MinVal int32  `json:"minVal"`
	MaxVal int32  `json:"maxVal"`
}

// Shader is one shader's descriptor. Files[0] is the primary source;
// dynamic defines precede static ones on the combo axes.
type Shader struct {
	Version  string   `json:"version"`
	Centroid int32    `json:"centroid"`
	Files    []string `json:"files"`
	Static   []Define `json:"static"`
	Dynamic  []Define `json:"dynamic"`
	Skip     string   `json:"skip"`
}

// Document is the full configuration file: shader name to descriptor.
type Document map[string]Shader

// Entry is one named shader descriptor in file order.
type Entry struct {
	Name string
	Shader
}

// Load reads and parses a configuration file.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

// Parse parses a configuration document, preserving shader order.
func Parse(data []byte) ([]Entry, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	// encoding/json loses object key order, so take the order from a
	// second pass through an ordered map.
	om := orderedmap.New()
	if err := json.Unmarshal(data, om); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(doc))
	for _, name := range om.Keys() {
		shader, ok := doc[name]
		if !ok {
			continue
		}
		if len(shader.Files) == 0 {
			return nil, fmt.Errorf("shader %q has no source files", name)
		}
		entries = append(entries, Entry{Name: name, Shader: shader})
	}
	return entries, nil
}
