// Package catalog lays shader combo spaces onto a single linear command
// axis and provides random access and filtered iteration over it.
//
// Each configured shader contributes one Entry whose combos occupy a
// contiguous [CommandStart, CommandEnd) range. Entries are ordered by
// descending combo count. A sparse bookmark table of pre-positioned
// cursors bounds the cost of seeking to an arbitrary command index.
package catalog

import (
	"github.com/misyltoad/ShaderCompile2/combo"
	"github.com/misyltoad/ShaderCompile2/expr"
)

// Info is the read-only per-shader snapshot exposed to callers.
type Info struct {
	Name             string
	ShaderFileName   string
	ShaderVersion    string
	CentroidMask     int32
	NumCombos        uint64
	NumStaticCombos  uint64
	NumDynamicCombos uint64
	CommandStart     uint64
	CommandEnd       uint64
}

// Entry bundles one shader's combo space: its generator, its parsed skip
// expression, and the derived counts and command range.
type Entry struct {
	Name      string
	ShaderSrc string
	Gen       *combo.Generator
	Skip      *expr.Expr
	Info      Info
}

// terminator reports whether the entry is the axis-closing sentinel.
func (e *Entry) terminator() bool {
	return e.Info.CommandStart == e.Info.CommandEnd
}
