// Package filter turns AIP-160 clock filters into SQLite WHERE fragments.
package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Condition is a WHERE fragment and its positional arguments. The zero
// Condition matches everything.
type Condition struct {
	SQL  string
	Args []any
}

// column is a filterable clock field.
type column struct {
	sql string
	typ *expr.Type
}

var columns = map[string]column{
	"name":       {sql: "name", typ: filtering.TypeString},
	"color":      {sql: "color", typ: filtering.TypeString},
	"segments":   {sql: "segments", typ: filtering.TypeInt},
	"filled":     {sql: "filled", typ: filtering.TypeInt},
	"ephemeral":  {sql: "ephemeral", typ: filtering.TypeBool},
	"created_at": {sql: "created_at", typ: filtering.TypeTimestamp},
}

// Function names in checked filter expressions.
const (
	fnAnd       = "AND"
	fnOr        = "OR"
	fnFuzzyAnd  = "FUZZY"
	fnNot       = "NOT"
	fnTimestamp = "timestamp"
)

// comparisons maps filter comparators to SQL; both spell them the same.
var comparisons = map[string]string{
	"=":  "=",
	"!=": "!=",
	"<":  "<",
	"<=": "<=",
	">":  ">",
	">=": ">=",
}

func declarations() (*filtering.Declarations, error) {
	opts := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	for name, col := range columns {
		opts = append(opts, filtering.DeclareIdent(name, col.typ))
	}
	return filtering.NewDeclarations(opts...)
}

// Parse checks text against the clock fields and translates it. Blank text
// yields the zero Condition.
func Parse(text string) (Condition, error) {
	if strings.TrimSpace(text) == "" {
		return Condition{}, nil
	}
	decls, err := declarations()
	if err != nil {
		return Condition{}, fmt.Errorf("declare clock fields: %w", err)
	}
	parsed, err := filtering.ParseFilterString(text, decls)
	if err != nil {
		return Condition{}, err
	}
	var c Condition
	if err := c.write(parsed.CheckedExpr.GetExpr()); err != nil {
		return Condition{}, err
	}
	return c, nil
}

func (c *Condition) write(e *expr.Expr) error {
	switch kind := e.GetExprKind().(type) {
	case *expr.Expr_IdentExpr:
		// A bare boolean field, as in "ephemeral".
		col, err := lookup(kind.IdentExpr.GetName())
		if err != nil {
			return err
		}
		if col.typ != filtering.TypeBool {
			return fmt.Errorf("%s is not a boolean field", kind.IdentExpr.GetName())
		}
		c.SQL += col.sql + " = 1"
		return nil
	case *expr.Expr_CallExpr:
		return c.writeCall(kind.CallExpr)
	default:
		return fmt.Errorf("unsupported expression %T", kind)
	}
}

func (c *Condition) writeCall(call *expr.Expr_Call) error {
	args := call.GetArgs()
	switch fn := call.GetFunction(); fn {
	case fnAnd, fnOr, fnFuzzyAnd:
		if len(args) != 2 {
			return fmt.Errorf("%s takes two operands", fn)
		}
		op := " AND "
		if fn == fnOr {
			op = " OR "
		}
		c.SQL += "("
		if err := c.write(args[0]); err != nil {
			return err
		}
		c.SQL += op
		if err := c.write(args[1]); err != nil {
			return err
		}
		c.SQL += ")"
		return nil
	case fnNot:
		if len(args) != 1 {
			return errors.New("NOT takes one operand")
		}
		c.SQL += "(NOT "
		if err := c.write(args[0]); err != nil {
			return err
		}
		c.SQL += ")"
		return nil
	}

	op, ok := comparisons[call.GetFunction()]
	if !ok {
		return fmt.Errorf("unsupported function %s", call.GetFunction())
	}
	if len(args) != 2 {
		return fmt.Errorf("%s takes two operands", op)
	}
	ident := args[0].GetIdentExpr()
	if ident == nil {
		return errors.New("left side of a comparison must be a field")
	}
	col, err := lookup(ident.GetName())
	if err != nil {
		return err
	}
	value, err := literal(args[1])
	if err != nil {
		return err
	}
	c.SQL += col.sql + " " + op + " ?"
	c.Args = append(c.Args, value)
	return nil
}

func lookup(name string) (column, error) {
	col, ok := columns[name]
	if !ok {
		return column{}, fmt.Errorf("unknown field %s", name)
	}
	return col, nil
}

// literal returns the SQL argument for a constant or a timestamp("...")
// call. Timestamps become Unix milliseconds, the created_at storage unit.
func literal(e *expr.Expr) (any, error) {
	if call := e.GetCallExpr(); call != nil {
		if call.GetFunction() != fnTimestamp || len(call.GetArgs()) != 1 {
			return nil, fmt.Errorf("unsupported value %s(...)", call.GetFunction())
		}
		raw := call.GetArgs()[0].GetConstExpr().GetStringValue()
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q", raw)
		}
		return ts.UTC().UnixMilli(), nil
	}

	switch v := e.GetConstExpr().GetConstantKind().(type) {
	case *expr.Constant_StringValue:
		return v.StringValue, nil
	case *expr.Constant_Int64Value:
		return v.Int64Value, nil
	case *expr.Constant_Uint64Value:
		return v.Uint64Value, nil
	case *expr.Constant_BoolValue:
		return v.BoolValue, nil
	default:
		return nil, fmt.Errorf("unsupported value %T", v)
	}
}
