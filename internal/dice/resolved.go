package dice

import (
	"fmt"
	"math"
)

// Resolved is a node of the tree produced by Compile. Every random choice has
// already been made, so evaluating or rendering the same tree twice yields the
// same output. The set of implementations is closed.
type Resolved interface {
	// Eval reduces the subtree to a total.
	Eval() (int64, error)
	// String renders the subtree for display.
	String() string
	resolved()
}

// ResolvedRoll is the faces produced by one dice term. A constant is a roll
// with a single value and no die.
type ResolvedRoll struct {
	Values []int64
	Keep   *int64 // Number of leading Values that count; nil keeps all.
	Die    int64
	HasDie bool
}

// ResolvedNode applies Op to two resolved subtrees.
type ResolvedNode struct {
	Left    Resolved
	Op      Op
	Right   Resolved
	Grouped bool // Parenthesised in the source text.
}

func (*ResolvedRoll) resolved() {}
func (*ResolvedNode) resolved() {}

// Kept returns the values that contribute to the total.
func (r *ResolvedRoll) Kept() []int64 {
	if r.Keep == nil {
		return r.Values
	}
	keep := *r.Keep
	if keep < 0 {
		keep = 0
	}
	if keep > int64(len(r.Values)) {
		keep = int64(len(r.Values))
	}
	return r.Values[:keep]
}

// Eval sums the kept values.
func (r *ResolvedRoll) Eval() (int64, error) {
	var total int64
	for _, v := range r.Kept() {
		next, err := checkedAdd(total, v)
		if err != nil {
			return 0, err
		}
		total = next
	}
	return total, nil
}

// Eval evaluates the left subtree, then the right, then applies the operator.
func (n *ResolvedNode) Eval() (int64, error) {
	left, err := n.Left.Eval()
	if err != nil {
		return 0, err
	}
	if n.Right == nil {
		return left, nil
	}
	right, err := n.Right.Eval()
	if err != nil {
		return 0, err
	}
	return apply(n.Op, left, right)
}

func apply(op Op, a, b int64) (int64, error) {
	switch op {
	case OpAdd:
		return checkedAdd(a, b)
	case OpSub:
		return checkedSub(a, b)
	case OpMul:
		return checkedMul(a, b)
	case OpDiv:
		return checkedDiv(a, b)
	default:
		return 0, fmt.Errorf("dice: unknown operator %d", op)
	}
}

func checkedAdd(a, b int64) (int64, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return sum, nil
}

func checkedSub(a, b int64) (int64, error) {
	diff := a - b
	if (b > 0 && diff > a) || (b < 0 && diff < a) {
		return 0, fmt.Errorf("%w: %d - %d", ErrOverflow, a, b)
	}
	return diff, nil
}

func checkedMul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	product := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || product/b != a {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
	}
	return product, nil
}

// checkedDiv truncates toward zero.
func checkedDiv(a, b int64) (int64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == math.MinInt64 && b == -1 {
		return 0, fmt.Errorf("%w: %d / %d", ErrOverflow, a, b)
	}
	return a / b, nil
}
