package catalog

// Cursor is the iteration state over one entry's combos. It tracks both
// the global command index and the per-entry combo index, plus the
// current axis-value vector, which is always the mixed-radix decoding of
// the combo index (first-added axis least significant, counting down
// from max).
//
// Cursors are cheap to clone and are not safe for concurrent mutation;
// disjoint cursors may be advanced from different goroutines freely.
type Cursor struct {
	totalCommand uint64
	comboNumber  uint64
	numCombos    uint64
	entry        *Entry
	values       []int32
}

// newCursor positions a cursor at the first command of an entry: every
// axis at its max, combo index numCombos-1.
func newCursor(globalStart uint64, e *Entry) *Cursor {
	c := &Cursor{
		totalCommand: globalStart,
		numCombos:    e.Gen.NumCombos(),
		entry:        e,
		values:       make([]int32, e.Gen.Len()),
	}
	for i, d := range e.Gen.Defines() {
		c.values[i] = d.Max
	}
	c.comboNumber = c.numCombos - 1
	return c
}

// NewCursor allocates a cursor. A nil source yields a zero cursor; a
// non-nil source yields an independent clone.
func NewCursor(src *Cursor) *Cursor {
	if src != nil {
		return src.Clone()
	}
	return &Cursor{}
}

// Clone returns an independent copy of the cursor.
func (c *Cursor) Clone() *Cursor {
	dup := *c
	dup.values = append([]int32(nil), c.values...)
	return &dup
}

// Assign overwrites the cursor with a copy of src's state.
func (c *Cursor) Assign(src *Cursor) {
	values := c.values[:0]
	*c = *src
	c.values = append(values, src.values...)
}

// Advance seeks the cursor forward by *delta commands within its entry.
//
// If the entry has fewer than *delta commands left, the cursor is not
// moved, *delta is reduced by the remaining command count, and Advance
// returns false so the caller can continue in the next entry. Otherwise
// the command and combo indices move by *delta, the value vector absorbs
// the delta as a mixed-radix subtraction, *delta is left at zero, and
// Advance returns true.
func (c *Cursor) Advance(delta *uint64) bool {
	if *delta == 0 {
		return true
	}

	if c.comboNumber < *delta {
		*delta -= c.comboNumber
		return false
	}

	c.totalCommand += *delta
	c.comboNumber -= *delta

	rem := *delta
	*delta = 0
	for i := 0; i < len(c.values) && rem > 0; i++ {
		d := c.entry.Gen.DefineAt(i)
		rem += uint64(int64(d.Max) - int64(c.values[i]))
		c.values[i] = d.Max

		card := d.Cardinality()
		c.values[i] -= int32(rem % card)
		rem /= card
	}

	return true
}

// NextNotSkipped steps the cursor to the next combo whose skip expression
// evaluates false, stopping strictly before commandEnd. It returns false
// once the window or the entry is exhausted; the cursor then rests on the
// last combo examined.
func (c *Cursor) NextNotSkipped(commandEnd uint64) bool {
	for {
		if c.totalCommand+1 >= commandEnd || c.comboNumber == 0 {
			return false
		}

		c.comboNumber--
		c.totalCommand++

		// Ripple-decrement: the first axis counts down from max; an
		// underflow past min resets it and carries into the next axis.
		stepped := false
		for i := range c.values {
			d := c.entry.Gen.DefineAt(i)
			c.values[i]--
			if c.values[i] >= d.Min {
				stepped = true
				break
			}
			c.values[i] = d.Max
		}
		if !stepped {
			return false
		}

		if c.entry.Skip.Eval(c.values) == 0 {
			return true
		}
	}
}

// Skipped reports whether the current combo fails the skip predicate.
func (c *Cursor) Skipped() bool {
	return c.entry.Skip.Eval(c.values) != 0
}

// CommandNum returns the cursor's global command index, or ^uint64(0) for
// a nil cursor.
func (c *Cursor) CommandNum() uint64 {
	if c == nil {
		return ^uint64(0)
	}
	return c.totalCommand
}

// ComboNum returns the cursor's per-entry combo index, or ^uint64(0) for
// a nil cursor.
func (c *Cursor) ComboNum() uint64 {
	if c == nil {
		return ^uint64(0)
	}
	return c.comboNumber
}

// EntryInfo returns the cursor's entry snapshot, or nil if the cursor is
// not positioned on an entry.
func (c *Cursor) EntryInfo() *Info {
	if c == nil || c.entry == nil {
		return nil
	}
	return &c.entry.Info
}

// Values returns the current axis-value vector in slot order. Callers
// must not modify it.
func (c *Cursor) Values() []int32 {
	return c.values
}
