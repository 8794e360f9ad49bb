package expr

import (
	"testing"
)

// testResolver resolves a fixed name list to slots; slot values are the
// parse-time values used for folding "defined".
type testResolver struct {
	names  []string
	values []int32
}

func (r *testResolver) SlotOf(name string) int {
	for i, n := range r.names {
		if n == name {
			return i
		}
	}
	return -1
}

func (r *testResolver) ValueAt(slot int) int32 {
	return r.values[slot]
}

func TestParseConstants(t *testing.T) {
	tests := []struct {
		input    string
		expected int32
	}{
		{"0", 0},
		{"1", 1},
		{"42", 42},
		{"!0", 1},
		{"!5", 0},
		{"!!7", 1},
		{"(3)", 3},
		{"((1))", 1},
	}

	for _, tt := range tests {
		e := Parse(tt.input, nil)
		if got := e.Eval(nil); got != tt.expected {
			t.Errorf("Parse(%q).Eval() = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func TestParseVariables(t *testing.T) {
	res := &testResolver{names: []string{"A", "B"}, values: []int32{1, 1}}

	tests := []struct {
		input    string
		values   []int32
		expected int32
	}{
		{"$A", []int32{7, 0}, 7},
		{"$B", []int32{7, 3}, 3},
		{"$UNKNOWN", []int32{7, 3}, 0},
		{"$A == $B", []int32{2, 2}, 1},
		{"$A == $B", []int32{2, 3}, 0},
		{"!$A", []int32{0, 0}, 1},
	}

	for _, tt := range tests {
		e := Parse(tt.input, res)
		if got := e.Eval(tt.values); got != tt.expected {
			t.Errorf("Parse(%q).Eval(%v) = %d, expected %d", tt.input, tt.values, got, tt.expected)
		}
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input    string
		expected int32
	}{
		// || binds loosest.
		{"1 || 0 && 0", 1},
		{"0 && 0 || 1", 1},
		{"0 && 1 || 0", 0},
		// Comparisons bind tighter than &&.
		{"0 && 0 == 0", 0},
		{"1 == 1 && 2 == 2", 1},
		{"1 == 1 || 0 && 0", 1},
		// Parentheses override.
		{"(1 || 0) && 0", 0},
		{"!(1 && 0)", 1},
		// Same-priority operators nest rightward: 1 < (2 == 1).
		{"1 < 2 == 1", 0},
		{"2 > 1 == 1", 1},
		// Comparison grid.
		{"1 < 2", 1},
		{"2 < 2", 0},
		{"2 <= 2", 1},
		{"3 > 2", 1},
		{"2 >= 3", 0},
		{"5 != 5", 0},
		{"5 != 4", 1},
	}

	for _, tt := range tests {
		e := Parse(tt.input, nil)
		if got := e.Eval(nil); got != tt.expected {
			t.Errorf("Parse(%q).Eval() = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func TestParseSkipExpression(t *testing.T) {
	// The S3 predicate over axes A in [0,1], B in [0,2].
	res := &testResolver{names: []string{"A", "B"}, values: []int32{1, 1}}
	e := Parse("$A == 1 && $B == 2 || $A == 0 && $B == 0", res)

	skipped := 0
	for a := int32(0); a <= 1; a++ {
		for b := int32(0); b <= 2; b++ {
			if e.Eval([]int32{a, b}) != 0 {
				skipped++
				if !(a == 1 && b == 2) && !(a == 0 && b == 0) {
					t.Errorf("(A=%d, B=%d) unexpectedly skipped", a, b)
				}
			}
		}
	}
	if skipped != 2 {
		t.Errorf("Expected 2 skipped combos, got %d", skipped)
	}
}

func TestParseAborts(t *testing.T) {
	// Malformed input silently yields the constant-false expression.
	res := &testResolver{names: []string{"A"}, values: []int32{1}}

	tests := []string{
		"",
		"   ",
		"abc",
		"-1",
		"1 +",
		"1 + 2",
		"$A &",
		"$A & $A",
		"$A ==",
		"(1",
		"1)",
		"(1))",
		"((1)",
		"1 2",
		"(1) garbage",
		"= 1",
		"! ",
		"defined",
	}

	for _, input := range tests {
		e := Parse(input, res)
		if got := e.Eval([]int32{5}); got != 0 {
			t.Errorf("Parse(%q) should abort to constant false, Eval = %d", input, got)
		}
	}
}

func TestParseDefinedFolding(t *testing.T) {
	// "defined X" folds at parse time against the resolver's current
	// values, which hold the sentinel 1 for every added define.
	res := &testResolver{names: []string{"FOO"}, values: []int32{1}}

	tests := []struct {
		input    string
		expected int32
	}{
		{"defined $FOO", 1},
		{"defined $MISSING", 0},
		{"defined 5", 5},
		{"defined (defined $FOO)", 1},
		{"!defined $FOO", 0},
	}

	for _, tt := range tests {
		e := Parse(tt.input, res)
		// Runtime values differ from parse-time values; the folded
		// constant must not track them.
		if got := e.Eval([]int32{0}); got != tt.expected {
			t.Errorf("Parse(%q).Eval() = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func TestExprString(t *testing.T) {
	res := &testResolver{names: []string{"A", "B"}, values: []int32{1, 1}}

	tests := []struct {
		input    string
		expected string
	}{
		{"1", "1"},
		{"$A", "A"},
		{"$NOPE", "$**@**"},
		{"!$A", "!A"},
		{"$A && 1", "( A && 1 )"},
		{"$A == 1 || $B", "( ( A == 1 ) || B )"},
		{"bogus(", "0"},
	}

	for _, tt := range tests {
		e := Parse(tt.input, res)
		if got := e.String(); got != tt.expected {
			t.Errorf("Parse(%q).String() = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestZeroExpr(t *testing.T) {
	var e Expr
	if got := e.Eval([]int32{1, 2}); got != 0 {
		t.Errorf("Zero Expr should evaluate to 0, got %d", got)
	}
	if got := e.String(); got != "0" {
		t.Errorf("Zero Expr String() = %q, expected \"0\"", got)
	}
}
