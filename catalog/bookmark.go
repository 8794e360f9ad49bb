package catalog

import "sort"

// bookmark is a cursor snapshot pre-positioned at a command index.
type bookmark struct {
	command uint64
	cursor  Cursor
}

// bookmarkTable holds bookmarks in strictly increasing command order; the
// build appends them in that order, so lookup is a plain binary search.
type bookmarkTable struct {
	marks []bookmark
}

// add snapshots the cursor at the given command index.
func (t *bookmarkTable) add(command uint64, c *Cursor) {
	t.marks = append(t.marks, bookmark{command: command, cursor: *c.Clone()})
}

// lessOrEq returns the bookmark with the greatest command index <= k, or
// nil if k precedes the first bookmark.
func (t *bookmarkTable) lessOrEq(k uint64) *bookmark {
	i := sort.Search(len(t.marks), func(i int) bool {
		return t.marks[i].command > k
	})
	if i == 0 {
		return nil
	}
	return &t.marks[i-1]
}
