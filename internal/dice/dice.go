package dice

import (
	"context"
	"fmt"
	"strconv"
)

// DefaultMaxInputLength bounds the byte length of a dice string.
const DefaultMaxInputLength = 4096

// Result is one evaluated sub-expression.
type Result struct {
	Name  string
	Value string // "<trace> => <total>"
	Total int64
}

// Request is one dice string and the roller that resolves it.
type Request struct {
	Text   string
	Roller Roller
}

// Response holds the results in input order and the canonical form of the
// parsed input.
type Response struct {
	Results    []Result
	Normalized string
}

// Engine runs parse, compile, evaluate and render for a request. The zero
// value uses the default limits.
type Engine struct {
	MaxDice        int64 // Across the whole request. Zero means DefaultMaxDice.
	MaxInputLength int   // Zero means DefaultMaxInputLength.
}

// Roll evaluates every sub-expression in req.Text. Any failure fails the whole
// request and no partial results are returned.
func (e Engine) Roll(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if req.Roller == nil {
		return Response{}, fmt.Errorf("roll: roller is required")
	}
	maxLen := e.MaxInputLength
	if maxLen <= 0 {
		maxLen = DefaultMaxInputLength
	}
	if len(req.Text) > maxLen {
		return Response{}, &SyntaxError{Input: req.Text, Offset: maxLen, Reason: fmt.Sprintf("input longer than %d bytes", maxLen)}
	}

	list, err := Parse(req.Text)
	if err != nil {
		return Response{}, err
	}

	maxDice := e.MaxDice
	if maxDice == 0 {
		maxDice = DefaultMaxDice
	}
	if maxDice > 0 {
		var total int64
		for _, named := range list.Expressions {
			total += countDice(named.Expr, maxDice-total)
			if total > maxDice {
				return Response{}, fmt.Errorf("%w: limit is %d", ErrTooManyDice, maxDice)
			}
		}
	}

	compiler := Compiler{Roller: req.Roller, MaxDice: -1}
	results := make([]Result, 0, len(list.Expressions))
	for idx, named := range list.Expressions {
		name := named.Label
		if !named.HasLabel {
			name = "Roll " + strconv.Itoa(idx+1)
		}
		resolved, err := compiler.Compile(named.Expr)
		if err != nil {
			return Response{}, &EvalError{Label: name, Err: err}
		}
		value, total, err := Render(resolved)
		if err != nil {
			return Response{}, &EvalError{Label: name, Err: err}
		}
		results = append(results, Result{Name: name, Value: value, Total: total})
	}
	return Response{Results: results, Normalized: list.String()}, nil
}

// Roll evaluates text with the default engine limits.
func Roll(text string, roller Roller) ([]Result, error) {
	resp, err := Engine{}.Roll(context.Background(), Request{Text: text, Roller: roller})
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}
