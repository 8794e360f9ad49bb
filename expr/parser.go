package expr

import "strconv"

// Resolver maps variable names to value slots and supplies the parse-time
// slot values used to fold "defined" atoms.
type Resolver interface {
	// SlotOf returns the slot for a variable name, or -1 if unknown.
	SlotOf(name string) int
	// ValueAt returns the current value of a slot.
	ValueAt(slot int) int32
}

// Parser parses skip-expression tokens into an arena-backed Expr.
type Parser struct {
	tokens  []Token
	current int
	res     Resolver
	e       *Expr
	aborted bool
}

// Parse parses a skip expression against the given resolver.
//
// Parse never fails: any unexpected token, unterminated construct, or
// trailing input aborts the parse and the result is the constant-false
// expression, so every combo survives. An empty input also yields
// constant false.
func Parse(source string, res Resolver) *Expr {
	lexer := NewLexer(source)
	p := &Parser{
		tokens: lexer.Tokenize(),
		res:    res,
		e:      &Expr{nodes: make([]Node, 0, 16)},
	}

	// Node 0 is the shared constant-false fallback and the default root.
	p.e.newNode(Node{Kind: NodeConst, Val: 0})

	root := p.topLevel()
	if !p.aborted && p.check(TokenEOF) {
		p.e.root = root
	}
	return p.e
}

// topLevel parses a run of atoms separated by binary operators and shapes
// them by priority with a push-down stack: an incoming operator pops
// every stack entry that binds tighter, then either steals the right
// operand of the new stack top or takes the whole popped chain as its
// left operand.
func (p *Parser) topLevel() NodeRef {
	var stack []NodeRef
	first := p.atom()
	if p.aborted {
		return first
	}

	for {
		tok := p.peek()
		if tok.Kind == TokenEOF || tok.Kind == TokenRightParen {
			break
		}

		var op Op
		switch tok.Kind {
		case TokenAmpAmp:
			op = OpAnd
		case TokenPipePipe:
			op = OpOr
		case TokenEqualEqual:
			op = OpEq
		case TokenBangEqual:
			op = OpNe
		case TokenLess:
			op = OpLt
		case TokenLessEqual:
			op = OpLe
		case TokenGreater:
			op = OpGt
		case TokenGreaterEqual:
			op = OpGe
		default:
			return p.abort()
		}
		p.advance()

		bin := p.e.newNode(Node{Kind: NodeBinary, Op: op})
		y := p.atom()
		if p.aborted {
			return y
		}
		p.e.nodes[bin].Y = y

		prio := op.priority()
		last := first
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			last = top
			if prio > p.e.nodes[top].Op.priority() {
				stack = stack[:len(stack)-1]
			} else {
				break
			}
		}

		if len(stack) > 0 {
			top := stack[len(stack)-1]
			p.e.nodes[bin].X = p.e.nodes[top].Y
			p.e.nodes[top].Y = bin
		} else {
			p.e.nodes[bin].X = last
		}
		stack = append(stack, bin)
	}

	if len(stack) > 0 {
		return stack[0]
	}
	return first
}

func (p *Parser) atom() NodeRef {
	if p.aborted {
		return 0
	}

	tok := p.peek()
	switch tok.Kind {
	case TokenInt:
		p.advance()
		// ParseInt clamps on overflow, like strtol.
		v, _ := strconv.ParseInt(tok.Lexeme, 10, 32)
		return p.e.newNode(Node{Kind: NodeConst, Val: int32(v)})

	case TokenDefined:
		// "defined X" folds at parse time: the inner atom is evaluated
		// against the resolver's current slot values and stored as a
		// constant. This is not a runtime macro-presence test.
		p.advance()
		inner := p.atom()
		if p.aborted {
			return inner
		}
		folded := p.e.eval(inner, p.parseTimeValue)
		return p.e.newNode(Node{Kind: NodeConst, Val: folded})

	case TokenLeftParen:
		p.advance()
		inner := p.topLevel()
		if p.aborted {
			return inner
		}
		if !p.check(TokenRightParen) {
			return p.abort()
		}
		p.advance()
		return inner

	case TokenVariable:
		p.advance()
		slot := -1
		if p.res != nil {
			slot = p.res.SlotOf(tok.Lexeme)
		}
		return p.e.newNode(Node{Kind: NodeVar, Slot: int32(slot), Name: tok.Lexeme})

	case TokenBang:
		p.advance()
		inner := p.atom()
		if p.aborted {
			return inner
		}
		return p.e.newNode(Node{Kind: NodeNot, X: inner})
	}

	return p.abort()
}

func (p *Parser) parseTimeValue(slot int32) int32 {
	if p.res != nil {
		return p.res.ValueAt(int(slot))
	}
	return 0
}

// abort marks the parse failed and returns the constant-false node.
func (p *Parser) abort() NodeRef {
	p.aborted = true
	return 0
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) check(kind TokenKind) bool {
	return p.tokens[p.current].Kind == kind
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.current]
	if tok.Kind != TokenEOF {
		p.current++
	}
	return tok
}
