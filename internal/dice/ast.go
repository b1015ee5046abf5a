package dice

import (
	"strconv"
	"strings"
)

// Op is a binary arithmetic operator.
type Op int

const (
	OpUnspecified Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// Direction selects which end of a sorted roll a filter keeps.
type Direction int

const (
	DirectionUnspecified Direction = iota
	Highest
	Lowest
)

func (d Direction) String() string {
	switch d {
	case Highest:
		return "h"
	case Lowest:
		return "l"
	default:
		return "?"
	}
}

// NamedList is one request: comma-separated expressions in input order.
type NamedList struct {
	Expressions []*NamedExpr
}

// NamedExpr is one expression with its optional label.
type NamedExpr struct {
	Label    string
	HasLabel bool
	Expr     *AdditiveExpr
}

// AdditiveExpr is a `+`/`-` node. Right is nil when no operator follows.
type AdditiveExpr struct {
	Left  *MultiplicativeExpr
	Op    Op
	Right *AdditiveExpr
}

// MultiplicativeExpr is a `*`/`/` node. Right is nil when no operator follows.
type MultiplicativeExpr struct {
	Left  Operand
	Op    Op
	Right *MultiplicativeExpr
}

// Operand is the tightest-binding grammar level: a filtered dice term or a
// parenthesised expression. The set of implementations is closed.
type Operand interface {
	String() string
	operand()
}

// DiceTerm is a count and an optional die size. Without a die it is a plain
// integer literal.
type DiceTerm struct {
	Count  int64
	Die    int64
	HasDie bool
}

// Filter keeps Keep dice from one end of a roll. Keep is not validated
// against the dice count; keeping more than were rolled keeps everything.
type Filter struct {
	Keep      int64
	Direction Direction
}

// FilteredDiceTerm is a dice term with an optional take-highest/lowest filter.
type FilteredDiceTerm struct {
	Dice   DiceTerm
	Filter *Filter
}

// ParenExpr groups an expression to override precedence.
type ParenExpr struct {
	Expr *AdditiveExpr
}

func (*FilteredDiceTerm) operand() {}
func (*ParenExpr) operand()        {}

// String re-prints the request in canonical form.
func (l *NamedList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, 0, len(l.Expressions))
	for _, expr := range l.Expressions {
		parts = append(parts, expr.String())
	}
	return strings.Join(parts, ", ")
}

func (n *NamedExpr) String() string {
	if n == nil {
		return ""
	}
	if n.HasLabel {
		return n.Label + ": " + n.Expr.String()
	}
	return n.Expr.String()
}

func (a *AdditiveExpr) String() string {
	if a == nil {
		return ""
	}
	if a.Right == nil {
		return a.Left.String()
	}
	return a.Left.String() + " " + a.Op.String() + " " + a.Right.String()
}

func (m *MultiplicativeExpr) String() string {
	if m == nil {
		return ""
	}
	if m.Right == nil {
		return m.Left.String()
	}
	return m.Left.String() + " " + m.Op.String() + " " + m.Right.String()
}

func (d DiceTerm) String() string {
	if !d.HasDie {
		return strconv.FormatInt(d.Count, 10)
	}
	return strconv.FormatInt(d.Count, 10) + "d" + strconv.FormatInt(d.Die, 10)
}

func (t *FilteredDiceTerm) String() string {
	if t.Filter == nil {
		return t.Dice.String()
	}
	return t.Dice.String() + t.Filter.Direction.String() + strconv.FormatInt(t.Filter.Keep, 10)
}

func (p *ParenExpr) String() string {
	return "(" + p.Expr.String() + ")"
}
