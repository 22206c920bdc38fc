package sql

import "strings"

// cte is a named sub-select of a WITH clause.
type cte struct {
	name    string
	columns []string
	sel     *Selector
}

// WithBuilder is the builder for the WITH prefix of a select.
type WithBuilder struct {
	recursive bool
	ctes      []cte
}

// With returns a new WITH clause builder.
//
//	w := sql.With().SubSelect(sql.Select("1"), "t", "n")
//	sql.Select("n").From("t").With(w)
//	// WITH t (n) AS (SELECT 1) SELECT n FROM t
func With() *WithBuilder {
	return &WithBuilder{}
}

// SubSelect appends a named sub-select, with optional column names.
func (w *WithBuilder) SubSelect(s *Selector, name string, columns ...string) *WithBuilder {
	w.ctes = append(w.ctes, cte{name: name, columns: append([]string(nil), columns...), sel: s})
	return w
}

// Recursive marks the clause as WITH RECURSIVE.
func (w *WithBuilder) Recursive() *WithBuilder {
	w.recursive = true
	return w
}

// String renders the WITH prefix.
func (w *WithBuilder) String() string {
	b := &Builder{}
	b.WriteString("WITH")
	if w.recursive {
		b.Keyword("RECURSIVE")
	}
	parts := make([]string, len(w.ctes))
	for i, c := range w.ctes {
		var sb strings.Builder
		sb.WriteString(c.name)
		if len(c.columns) > 0 {
			sb.WriteString(" (")
			sb.WriteString(strings.Join(c.columns, ", "))
			sb.WriteByte(')')
		}
		sb.WriteString(" AS (")
		if c.sel != nil {
			sb.WriteString(c.sel.String())
		}
		sb.WriteByte(')')
		parts[i] = sb.String()
	}
	if len(parts) > 0 {
		b.Pad().JoinComma(parts...)
	}
	return b.String()
}
