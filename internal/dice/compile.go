package dice

import (
	"cmp"
	"fmt"
	"slices"
)

// DefaultMaxDice bounds the number of dice a single expression may roll.
const DefaultMaxDice = 1000

// Roller samples one face of a die with the given number of sides. The result
// must lie in [1, sides].
type Roller interface {
	Roll(sides int64) int64
}

// RollerFunc adapts a function to the Roller interface.
type RollerFunc func(sides int64) int64

// Roll calls f(sides).
func (f RollerFunc) Roll(sides int64) int64 {
	return f(sides)
}

// Compiler replaces every dice term in a parse tree with concrete faces.
type Compiler struct {
	Roller  Roller
	MaxDice int64 // Zero means DefaultMaxDice; negative disables the limit.
}

// Compile rolls the dice in expr and returns the resolved tree.
//
// The dice count is checked before any sampling so an oversized request
// consumes no entropy.
func (c Compiler) Compile(expr *AdditiveExpr) (Resolved, error) {
	if expr == nil {
		return nil, fmt.Errorf("compile: nil expression")
	}
	if c.Roller == nil {
		return nil, fmt.Errorf("compile: roller is required")
	}
	limit := c.MaxDice
	if limit == 0 {
		limit = DefaultMaxDice
	}
	if limit > 0 {
		if count := countDice(expr, limit); count > limit {
			return nil, fmt.Errorf("%w: limit is %d", ErrTooManyDice, limit)
		}
	}
	return c.additive(expr), nil
}

func (c Compiler) additive(expr *AdditiveExpr) Resolved {
	left := c.multiplicative(expr.Left)
	if expr.Right == nil {
		return left
	}
	return &ResolvedNode{Left: left, Op: expr.Op, Right: c.additive(expr.Right)}
}

func (c Compiler) multiplicative(expr *MultiplicativeExpr) Resolved {
	left := c.operand(expr.Left)
	if expr.Right == nil {
		return left
	}
	return &ResolvedNode{Left: left, Op: expr.Op, Right: c.multiplicative(expr.Right)}
}

func (c Compiler) operand(op Operand) Resolved {
	switch op := op.(type) {
	case *FilteredDiceTerm:
		return c.term(op)
	case *ParenExpr:
		inner := c.additive(op.Expr)
		if node, ok := inner.(*ResolvedNode); ok {
			node.Grouped = true
			return node
		}
		return inner
	default:
		panic(fmt.Sprintf("dice: unhandled operand %T", op))
	}
}

func (c Compiler) term(term *FilteredDiceTerm) *ResolvedRoll {
	roll := &ResolvedRoll{Die: term.Dice.Die, HasDie: term.Dice.HasDie}
	if !term.Dice.HasDie {
		roll.Values = []int64{term.Dice.Count}
	} else {
		roll.Values = make([]int64, term.Dice.Count)
		for i := range roll.Values {
			roll.Values[i] = c.Roller.Roll(term.Dice.Die)
		}
	}
	if term.Filter == nil {
		return roll
	}
	switch term.Filter.Direction {
	case Highest:
		slices.SortFunc(roll.Values, func(a, b int64) int { return cmp.Compare(b, a) })
	case Lowest:
		slices.Sort(roll.Values)
	}
	keep := term.Filter.Keep
	roll.Keep = &keep
	return roll
}

// countDice sums the dice counts in expr, stopping once the total passes limit.
func countDice(expr *AdditiveExpr, limit int64) int64 {
	var total int64
	var walkAdd func(*AdditiveExpr) bool
	var walkMul func(*MultiplicativeExpr) bool
	walkOperand := func(op Operand) bool {
		switch op := op.(type) {
		case *FilteredDiceTerm:
			if op.Dice.HasDie {
				if op.Dice.Count > limit-total {
					total = limit + 1
					return false
				}
				total += op.Dice.Count
			}
			return true
		case *ParenExpr:
			return walkAdd(op.Expr)
		default:
			return true
		}
	}
	walkMul = func(m *MultiplicativeExpr) bool {
		for ; m != nil; m = m.Right {
			if !walkOperand(m.Left) {
				return false
			}
		}
		return true
	}
	walkAdd = func(a *AdditiveExpr) bool {
		for ; a != nil; a = a.Right {
			if !walkMul(a.Left) {
				return false
			}
		}
		return true
	}
	walkAdd(expr)
	return total
}
