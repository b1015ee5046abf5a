package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// A dice term is lexed as one token so that "4d 6" or "4d6 h3" cannot parse.
var diceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Label", Pattern: `[A-Za-z][A-Za-z \t]*:`},
	{Name: "Term", Pattern: `[0-9]+(?:d[0-9]+)?(?:[hHlL][0-9]+)?`},
	{Name: "Op", Pattern: `[-+*/]`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

type listNode struct {
	Exprs []*namedNode `@@ ( "," @@ )*`
}

type namedNode struct {
	Label string        `@Label?`
	Expr  *additiveNode `@@`
}

type additiveNode struct {
	Left *multiplicativeNode `@@`
	Tail *additiveTail       `@@?`
}

type additiveTail struct {
	Op    string        `@( "+" | "-" )`
	Right *additiveNode `@@`
}

type multiplicativeNode struct {
	Left *operandNode        `@@`
	Tail *multiplicativeTail `@@?`
}

type multiplicativeTail struct {
	Op    string              `@( "*" | "/" )`
	Right *multiplicativeNode `@@`
}

type operandNode struct {
	Term  *termNode     `  @@`
	Group *additiveNode `| "(" @@ ")"`
}

type termNode struct {
	Pos lexer.Position
	Raw string `@Term`
}

var grammar = participle.MustBuild[listNode](
	participle.Lexer(diceLexer),
	participle.Elide("Whitespace"),
)

// Parse turns dice text into a parse tree.
//
// The whole input must match the grammar; there is no partial result. On
// failure the returned error is a *SyntaxError and errors.Is(err,
// ErrInvalidSyntax) holds.
//
// At each precedence level the right-hand side recurses into the same level,
// so "10 - 3 - 2" parses as 10 - (3 - 2).
func Parse(text string) (*NamedList, error) {
	tree, err := grammar.ParseString("", text)
	if err != nil {
		return nil, syntaxErrorFrom(text, err)
	}
	p := lowering{input: text}
	list := &NamedList{Expressions: make([]*NamedExpr, 0, len(tree.Exprs))}
	for _, node := range tree.Exprs {
		expr, err := p.named(node)
		if err != nil {
			return nil, err
		}
		list.Expressions = append(list.Expressions, expr)
	}
	return list, nil
}

// ParseExpr parses a single unlabeled expression.
func ParseExpr(text string) (*AdditiveExpr, error) {
	list, err := Parse(text)
	if err != nil {
		return nil, err
	}
	if len(list.Expressions) != 1 || list.Expressions[0].HasLabel {
		return nil, &SyntaxError{Input: text, Offset: -1, Reason: "expected a single unlabeled expression"}
	}
	return list.Expressions[0].Expr, nil
}

func syntaxErrorFrom(text string, err error) *SyntaxError {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &SyntaxError{Input: text, Offset: perr.Position().Offset, Reason: perr.Message()}
	}
	return &SyntaxError{Input: text, Offset: -1, Reason: err.Error()}
}

// lowering converts grammar nodes into the exported parse tree and decodes
// term tokens.
type lowering struct {
	input string
}

func (p lowering) named(node *namedNode) (*NamedExpr, error) {
	expr, err := p.additive(node.Expr)
	if err != nil {
		return nil, err
	}
	named := &NamedExpr{Expr: expr}
	if node.Label != "" {
		named.HasLabel = true
		named.Label = strings.TrimSpace(strings.TrimSuffix(node.Label, ":"))
	}
	return named, nil
}

func (p lowering) additive(node *additiveNode) (*AdditiveExpr, error) {
	left, err := p.multiplicative(node.Left)
	if err != nil {
		return nil, err
	}
	expr := &AdditiveExpr{Left: left}
	if node.Tail == nil {
		return expr, nil
	}
	switch node.Tail.Op {
	case "+":
		expr.Op = OpAdd
	case "-":
		expr.Op = OpSub
	default:
		return nil, &SyntaxError{Input: p.input, Offset: -1, Reason: fmt.Sprintf("unexpected operator %q", node.Tail.Op)}
	}
	if expr.Right, err = p.additive(node.Tail.Right); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p lowering) multiplicative(node *multiplicativeNode) (*MultiplicativeExpr, error) {
	left, err := p.operand(node.Left)
	if err != nil {
		return nil, err
	}
	expr := &MultiplicativeExpr{Left: left}
	if node.Tail == nil {
		return expr, nil
	}
	switch node.Tail.Op {
	case "*":
		expr.Op = OpMul
	case "/":
		expr.Op = OpDiv
	default:
		return nil, &SyntaxError{Input: p.input, Offset: -1, Reason: fmt.Sprintf("unexpected operator %q", node.Tail.Op)}
	}
	if expr.Right, err = p.multiplicative(node.Tail.Right); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p lowering) operand(node *operandNode) (Operand, error) {
	switch {
	case node.Term != nil:
		return p.term(node.Term)
	case node.Group != nil:
		inner, err := p.additive(node.Group)
		if err != nil {
			return nil, err
		}
		return &ParenExpr{Expr: inner}, nil
	default:
		return nil, &SyntaxError{Input: p.input, Offset: -1, Reason: "operand has neither term nor group"}
	}
}

// term decodes a token such as "4d6h3" into its count, die and filter.
func (p lowering) term(node *termNode) (*FilteredDiceTerm, error) {
	raw := node.Raw
	offset := node.Pos.Offset
	term := &FilteredDiceTerm{}

	if idx := strings.IndexAny(raw, "hHlL"); idx >= 0 {
		keep, err := p.number(raw[idx+1:], offset+idx+1)
		if err != nil {
			return nil, err
		}
		direction := Highest
		if raw[idx] == 'l' || raw[idx] == 'L' {
			direction = Lowest
		}
		term.Filter = &Filter{Keep: keep, Direction: direction}
		raw = raw[:idx]
	}

	countText, dieText, hasDie := strings.Cut(raw, "d")
	count, err := p.number(countText, offset)
	if err != nil {
		return nil, err
	}
	term.Dice.Count = count
	if hasDie {
		dieOffset := offset + len(countText) + 1
		die, err := p.number(dieText, dieOffset)
		if err != nil {
			return nil, err
		}
		if die < 1 {
			return nil, &SyntaxError{Input: p.input, Offset: dieOffset, Reason: "die size must be at least 1"}
		}
		term.Dice.Die = die
		term.Dice.HasDie = true
	}
	return term, nil
}

func (p lowering) number(text string, offset int) (int64, error) {
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, &SyntaxError{Input: p.input, Offset: offset, Reason: fmt.Sprintf("number %q is out of range", text)}
	}
	return value, nil
}
