package sql

import (
	"fmt"
	"strconv"
	"strings"
)

// LiteralKind identifies the variant held by a Literal.
type LiteralKind uint8

// Literal kinds.
const (
	KindRaw LiteralKind = iota
	KindSentinel
	KindText
	KindNumber
	KindBool
)

// Sentinel names rendered unquoted regardless of the string rules.
const (
	NULL    = "NULL"
	DEFAULT = "DEFAULT"
)

// Literal is a scalar value in its SQL textual form. The zero value is the
// empty raw literal.
type Literal struct {
	kind LiteralKind
	text string
}

// Kind returns the variant of the literal.
func (l Literal) Kind() LiteralKind { return l.kind }

// String returns the SQL text of the literal.
//
// Text literals are wrapped in single quotes without any escaping. Values
// coming from untrusted input must be passed through Escape or bound as
// driver arguments instead.
func (l Literal) String() string {
	if l.kind == KindText {
		return "'" + l.text + "'"
	}
	return l.text
}

// Null returns the NULL sentinel.
func Null() Literal { return Literal{kind: KindSentinel, text: NULL} }

// Default returns the DEFAULT sentinel.
func Default() Literal { return Literal{kind: KindSentinel, text: DEFAULT} }

// Text returns a quoted text literal, or the matching sentinel when s spells
// NULL or DEFAULT in any case.
func Text(s string) Literal {
	if up := strings.ToUpper(s); up == NULL || up == DEFAULT {
		return Literal{kind: KindSentinel, text: up}
	}
	return Literal{kind: KindText, text: s}
}

// Escape returns a quoted text literal with single quotes doubled and
// backslashes escaped. Sentinel names are not recognized.
func Escape(s string) Literal {
	return Literal{kind: KindText, text: escapeStringValue(s)}
}

// Raw returns a literal rendered verbatim, such as a function call or a
// column reference.
func Raw(expr string) Literal { return Literal{kind: KindRaw, text: expr} }

// Int returns a numeric literal.
func Int(n int64) Literal { return Literal{kind: KindNumber, text: strconv.FormatInt(n, 10)} }

// Uint returns a numeric literal.
func Uint(n uint64) Literal { return Literal{kind: KindNumber, text: strconv.FormatUint(n, 10)} }

// Float returns a numeric literal in its shortest exact decimal form.
func Float(f float64) Literal {
	return Literal{kind: KindNumber, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Bool returns a boolean literal.
func Bool(b bool) Literal { return Literal{kind: KindBool, text: strconv.FormatBool(b)} }

// Lit converts a Go value to a Literal.
//
//	nil                 NULL
//	string              Text
//	integers, floats    number
//	bool                true/false
//	Literal             itself
//	Statement           parenthesized rendering, NULL when nil
//	fmt.Stringer        raw String()
//	anything else       raw fmt.Sprint
func Lit(v any) Literal {
	switch v := v.(type) {
	case nil:
		return Null()
	case Literal:
		return v
	case string:
		return Text(v)
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint:
		return Uint(uint64(v))
	case uint8:
		return Uint(uint64(v))
	case uint16:
		return Uint(uint64(v))
	case uint32:
		return Uint(uint64(v))
	case uint64:
		return Uint(v)
	case float32:
		return Literal{kind: KindNumber, text: strconv.FormatFloat(float64(v), 'f', -1, 32)}
	case float64:
		return Float(v)
	case bool:
		return Bool(v)
	case *Selector:
		if v == nil {
			return Null()
		}
		return Raw("(" + v.String() + ")")
	case *UnionBuilder:
		if v == nil {
			return Null()
		}
		return Raw("(" + v.String() + ")")
	case fmt.Stringer:
		return Raw(v.String())
	default:
		return Raw(fmt.Sprint(v))
	}
}

// Format returns the SQL text of v. It is total over its input.
func Format(v any) string {
	return Lit(v).String()
}

// lits converts a list of Go values to literals.
func lits(vs []any) []Literal {
	out := make([]Literal, len(vs))
	for i, v := range vs {
		out[i] = Lit(v)
	}
	return out
}

// joinLits renders literals separated by ", ".
func joinLits(ls []Literal) string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = l.String()
	}
	return strings.Join(parts, ", ")
}

// escapeStringValue escapes a string value for safe use in SQL.
// It escapes both single quotes (by doubling) and backslashes (for MySQL compatibility).
func escapeStringValue(s string) string {
	if !strings.ContainsAny(s, `'\`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", "''")
	return s
}
