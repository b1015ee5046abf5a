package dice

import (
	"strconv"
	"strings"
)

// String renders the faces of a roll. Faces equal to 1 or to the die size are
// emphasised. With a filter, the kept faces come first and a " | " separates
// them from the discarded ones. A single face is bare; zero dice render "[]".
func (r *ResolvedRoll) String() string {
	var b strings.Builder
	r.render(&b)
	return b.String()
}

func (r *ResolvedRoll) render(b *strings.Builder) {
	limit := int64(len(r.Values))
	if r.Keep != nil && *r.Keep < limit {
		limit = max(*r.Keep, 0)
	}
	grouped := len(r.Values) != 1
	if grouped {
		b.WriteByte('[')
	}
	for i, v := range r.Values {
		switch {
		case int64(i) == limit:
			b.WriteString(" | ")
		case i > 0:
			b.WriteString(", ")
		}
		if r.HasDie && (v == 1 || v == r.Die) {
			b.WriteString("**")
			b.WriteString(strconv.FormatInt(v, 10))
			b.WriteString("**")
			continue
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	if grouped {
		b.WriteByte(']')
	}
}

// String renders "<left> <op> <right>", parenthesised when the node was a
// group in the source text.
func (n *ResolvedNode) String() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *ResolvedNode) render(b *strings.Builder) {
	if n.Grouped {
		b.WriteByte('(')
	}
	renderTo(b, n.Left)
	if n.Right != nil {
		b.WriteByte(' ')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		renderTo(b, n.Right)
	}
	if n.Grouped {
		b.WriteByte(')')
	}
}

func renderTo(b *strings.Builder, r Resolved) {
	switch r := r.(type) {
	case *ResolvedRoll:
		r.render(b)
	case *ResolvedNode:
		r.render(b)
	default:
		b.WriteString(r.String())
	}
}

// Render formats a resolved tree as "<trace> => <total>".
func Render(r Resolved) (string, int64, error) {
	total, err := r.Eval()
	if err != nil {
		return "", 0, err
	}
	return r.String() + " => " + strconv.FormatInt(total, 10), total, nil
}
