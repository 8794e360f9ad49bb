// Package shadercompile enumerates shader compilation combos.
//
// A configuration file lists shaders, each with named integer-valued
// defines ("axes") and a boolean skip expression. The Cartesian product
// of every shader's axes, filtered by its skip expression, is laid out on
// a single linear command axis; each surviving point is one compilation
// command for the downstream compiler.
//
// Example usage:
//
//	cat, err := shadercompile.ReadConfiguration("shaders.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var cur *catalog.Cursor
//	for cmd := uint64(0); ; {
//	    cur, cmd = cat.Next(cmd, cur, cat.Total())
//	    if cur == nil {
//	        break
//	    }
//	    payload := cur.AppendCommand(nil)
//	    dispatch(payload)
//	    // continue after the combo just returned
//	}
//
// Callers typically partition [0, Total()) into stripes and drive one
// stripe per worker; the catalog is immutable after load and safe for
// concurrent queries on disjoint cursors.
package shadercompile

import (
	"fmt"

	"github.com/misyltoad/ShaderCompile2/catalog"
	"github.com/misyltoad/ShaderCompile2/config"
)

// ReadConfiguration loads a configuration file and builds the catalog:
// entries sorted by descending combo count, command ranges assigned, and
// the bookmark table populated.
func ReadConfiguration(path string) (*catalog.Catalog, error) {
	shaders, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return buildCatalog(shaders)
}

// ParseConfiguration builds a catalog from an in-memory configuration
// document.
func ParseConfiguration(data []byte) (*catalog.Catalog, error) {
	shaders, err := config.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	return buildCatalog(shaders)
}

func buildCatalog(shaders []config.Entry) (*catalog.Catalog, error) {
	cat, err := catalog.Build(shaders)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	return cat, nil
}

// DescribeConfiguration returns the catalog snapshot in catalog order
// plus the terminator entry.
func DescribeConfiguration(c *catalog.Catalog) []catalog.Info {
	return c.Describe()
}
