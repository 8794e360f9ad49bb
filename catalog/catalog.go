package catalog

import (
	"fmt"
	"sort"

	"github.com/misyltoad/ShaderCompile2/combo"
	"github.com/misyltoad/ShaderCompile2/config"
	"github.com/misyltoad/ShaderCompile2/expr"
)

// Bookmark spacing within an entry: one bookmark at the entry start, then
// one every max(bookmarkMinStep, numCombos/bookmarkParts) commands.
const (
	bookmarkMinStep = 1000
	bookmarkParts   = 500
)

// Catalog is the immutable result of loading a configuration: all entries
// laid out on the command axis, plus the bookmark table. After Build
// returns, any number of goroutines may query it concurrently as long as
// each mutates only its own cursors.
type Catalog struct {
	entries []*Entry
	term    *Entry
	marks   bookmarkTable
	total   uint64
}

// Build constructs a catalog from configuration descriptors. Entries are
// ordered by descending combo count, ties broken by configuration order,
// and assigned contiguous command ranges starting at 0.
func Build(shaders []config.Entry) (*Catalog, error) {
	entries := make([]*Entry, 0, len(shaders))

	for _, s := range shaders {
		e, err := buildEntry(s)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Info.NumCombos > entries[j].Info.NumCombos
	})

	c := &Catalog{entries: entries}

	for _, e := range entries {
		e.Info.CommandStart = c.total
		e.Info.CommandEnd = c.total + e.Info.NumCombos
		c.addBookmarks(e)
		c.total = e.Info.CommandEnd
	}

	// Terminator sentinel closing the axis.
	c.term = &Entry{
		Gen:  combo.NewGenerator(),
		Skip: expr.Parse("", nil),
		Info: Info{
			NumCombos:        1,
			NumStaticCombos:  1,
			NumDynamicCombos: 1,
			CommandStart:     c.total,
			CommandEnd:       c.total,
		},
	}
	c.marks.add(c.total, &Cursor{totalCommand: c.total, entry: c.term})

	return c, nil
}

func buildEntry(s config.Entry) (*Entry, error) {
	gen := combo.NewGenerator()

	// Dynamic defines first: axis order is the radix order.
	for _, d := range s.Dynamic {
		if err := gen.AddDefine(combo.Define{Name: d.Name, Min: d.MinVal, Max: d.MaxVal}); err != nil {
			return nil, fmt.Errorf("shader %q: %w", s.Name, err)
		}
	}
	for _, d := range s.Static {
		if err := gen.AddDefine(combo.Define{Name: d.Name, Min: d.MinVal, Max: d.MaxVal, Static: true}); err != nil {
			return nil, fmt.Errorf("shader %q: %w", s.Name, err)
		}
	}

	return &Entry{
		Name:      s.Name,
		ShaderSrc: s.Files[0],
		Gen:       gen,
		Skip:      expr.Parse(s.Skip, gen),
		Info: Info{
			Name:             s.Name,
			ShaderFileName:   s.Files[0],
			ShaderVersion:    s.Version,
			CentroidMask:     s.Centroid,
			NumCombos:        gen.NumCombos(),
			NumStaticCombos:  gen.NumCombosFor(true),
			NumDynamicCombos: gen.NumCombosFor(false),
		},
	}, nil
}

// addBookmarks records one bookmark at the entry start and one every
// stride until the entry end, each a cursor already advanced there.
func (c *Catalog) addBookmarks(e *Entry) {
	cur := newCursor(e.Info.CommandStart, e)
	c.marks.add(e.Info.CommandStart, cur)

	step := e.Info.NumCombos / bookmarkParts
	if step < bookmarkMinStep {
		step = bookmarkMinStep
	}
	for record := e.Info.CommandStart + step; record < e.Info.CommandEnd; record += step {
		delta := step
		cur.Advance(&delta)
		c.marks.add(record, cur)
	}
}

// Total returns the number of commands on the axis.
func (c *Catalog) Total() uint64 {
	return c.total
}

// Entries returns the entries in catalog order. Callers must not modify
// the returned slice.
func (c *Catalog) Entries() []*Entry {
	return c.entries
}

// Describe returns a snapshot of the catalog in catalog order, closed by
// a terminator Info whose command range is [total, total).
func (c *Catalog) Describe() []Info {
	infos := make([]Info, 0, len(c.entries)+1)
	for _, e := range c.entries {
		infos = append(infos, e.Info)
	}
	infos = append(infos, Info{CommandStart: c.total, CommandEnd: c.total})
	return infos
}

// GetCombo returns a fresh cursor positioned exactly at the given command
// index, or nil if the index lies outside the axis. The cost is one
// bookmark lookup, one clone, and at most one stride of advance
// arithmetic.
func (c *Catalog) GetCombo(command uint64) *Cursor {
	if command >= c.total {
		return nil
	}

	bm := c.marks.lessOrEq(command)
	if bm == nil {
		return nil
	}

	cur := bm.cursor.Clone()
	delta := command - bm.command
	if !cur.Advance(&delta) {
		return nil
	}
	return cur
}

// Next returns the next surviving combo at or after command, strictly
// before commandEnd. cur, if non-nil, is a cursor from a previous Next or
// GetCombo call to continue from; pass nil to start at command.
//
// On success it returns the cursor and the combo's command index. When
// the window is exhausted it returns (nil, commandEnd); when cur is nil
// and command already lies past the end of the axis, it returns
// (nil, command). A skipped run
// that crosses an entry boundary is traversed by stepping one command
// past the exhausted entry and re-entering through the bookmark table.
func (c *Catalog) Next(command uint64, cur *Cursor, commandEnd uint64) (*Cursor, uint64) {
	if cur == nil || cur.entry == nil {
		cur = c.GetCombo(command)
		if cur == nil || cur.entry.terminator() {
			return nil, command
		}
		if !cur.Skipped() {
			return cur, command
		}
	}

	for {
		if cur.NextNotSkipped(commandEnd) {
			return cur, cur.totalCommand
		}

		if cur.totalCommand+1 >= commandEnd {
			return nil, commandEnd
		}

		// The entry ran out of combos inside the window; re-enter at the
		// next entry's first command.
		command = cur.totalCommand + 1
		cur = c.GetCombo(command)
		if cur == nil || cur.entry.terminator() {
			return nil, commandEnd
		}
		if !cur.Skipped() {
			return cur, command
		}
	}
}
