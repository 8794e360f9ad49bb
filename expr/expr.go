package expr

import (
	"strconv"
	"strings"
)

// NodeRef indexes a node within an expression's arena.
type NodeRef int32

// Op represents a binary operator.
type Op uint8

const (
	OpAnd Op = iota // &&
	OpOr            // ||
	OpEq            // ==
	OpNe            // !=
	OpLt            // <
	OpLe            // <=
	OpGt            // >
	OpGe            // >=
)

// priority returns the operator priority used during parsing. A numerically
// greater priority binds looser: comparisons attach before &&, && before ||.
func (op Op) priority() int {
	switch op {
	case OpOr:
		return 2
	case OpAnd:
		return 1
	default:
		return 0
	}
}

// String returns the operator's source spelling.
func (op Op) String() string {
	switch op {
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	default:
		return "Unknown"
	}
}

// NodeKind represents the different kinds of expression nodes.
type NodeKind uint8

const (
	NodeConst NodeKind = iota
	NodeVar
	NodeNot
	NodeBinary
)

// Node is one expression node. Nodes live in the owning Expr's arena and
// reference children by index, so a parsed expression is a single
// contiguous allocation with no per-node boxing.
type Node struct {
	Kind NodeKind
	Op   Op      // NodeBinary
	Val  int32   // NodeConst
	Slot int32   // NodeVar; -1 when the name did not resolve
	Name string  // NodeVar; kept for printing
	X    NodeRef // NodeNot, NodeBinary
	Y    NodeRef // NodeBinary
}

// Expr is a parsed skip expression. The zero value evaluates to 0.
type Expr struct {
	nodes []Node
	root  NodeRef
}

// Eval evaluates the expression against the given variable values, indexed
// by slot. The result is an integer where 0 is false; logical and
// comparison operators yield 0 or 1. Evaluation is pure and strict.
func (e *Expr) Eval(values []int32) int32 {
	if len(e.nodes) == 0 {
		return 0
	}
	return e.eval(e.root, func(slot int32) int32 {
		if int(slot) < len(values) {
			return values[slot]
		}
		return 0
	})
}

func (e *Expr) eval(ref NodeRef, value func(slot int32) int32) int32 {
	n := &e.nodes[ref]
	switch n.Kind {
	case NodeConst:
		return n.Val

	case NodeVar:
		if n.Slot >= 0 {
			return value(n.Slot)
		}
		return 0

	case NodeNot:
		if e.eval(n.X, value) != 0 {
			return 0
		}
		return 1

	case NodeBinary:
		x := e.eval(n.X, value)
		y := e.eval(n.Y, value)
		var r bool
		switch n.Op {
		case OpAnd:
			r = x != 0 && y != 0
		case OpOr:
			r = x != 0 || y != 0
		case OpEq:
			r = x == y
		case OpNe:
			r = x != y
		case OpLt:
			r = x < y
		case OpLe:
			r = x <= y
		case OpGt:
			r = x > y
		case OpGe:
			r = x >= y
		}
		if r {
			return 1
		}
		return 0
	}

	return 0
}

// String renders the expression tree in parenthesized form, e.g.
// "( ( FOO == 1 ) && !BAR )". Unresolved variables render as $**@**.
func (e *Expr) String() string {
	if len(e.nodes) == 0 {
		return "0"
	}
	var sb strings.Builder
	e.print(&sb, e.root)
	return sb.String()
}

func (e *Expr) print(sb *strings.Builder, ref NodeRef) {
	n := &e.nodes[ref]
	switch n.Kind {
	case NodeConst:
		sb.WriteString(strconv.FormatInt(int64(n.Val), 10))
	case NodeVar:
		if n.Slot >= 0 {
			sb.WriteString(n.Name)
		} else {
			sb.WriteString("$**@**")
		}
	case NodeNot:
		sb.WriteByte('!')
		e.print(sb, n.X)
	case NodeBinary:
		sb.WriteString("( ")
		e.print(sb, n.X)
		sb.WriteByte(' ')
		sb.WriteString(n.Op.String())
		sb.WriteByte(' ')
		e.print(sb, n.Y)
		sb.WriteString(" )")
	}
}

func (e *Expr) newNode(n Node) NodeRef {
	ref := NodeRef(len(e.nodes))
	e.nodes = append(e.nodes, n)
	return ref
}
