package sql

// valueSource is where the rows of an INSERT or REPLACE come from: literal
// tuples, raw ROW tuples or a select. Exactly one is active at a time.
type valueSource interface {
	render(*Builder, []string)
}

// literalTuples renders as "VALUES (1, 'a'), (2, 'b')".
type literalTuples [][]Literal

func (t literalTuples) render(b *Builder, _ []string) {
	b.Keyword("VALUES")
	for i, row := range t {
		if i > 0 {
			b.Byte(',')
		}
		b.WriteString(" (").WriteString(joinLits(row)).Byte(')')
	}
}

// rowTuples renders as "VALUES ROW(1, 2), ROW(3, 4) ORDER BY ...".
type rowTuples [][]string

func (t rowTuples) render(b *Builder, order []string) {
	b.Keyword("VALUES")
	for i, row := range t {
		if i > 0 {
			b.Byte(',')
		}
		b.WriteString(" ROW(").JoinComma(row...).Byte(')')
	}
	if len(order) > 0 {
		b.Keyword("ORDER BY ").JoinComma(order...)
	}
}

// selectSource renders the select in parentheses.
type selectSource struct{ sel *Selector }

func (s selectSource) render(b *Builder, _ []string) {
	if s.sel != nil {
		b.Pad().Nested(s.sel)
	}
}

// insertBase holds the state shared by INSERT and REPLACE.
type insertBase struct {
	execer
	diagnostics
	table   string
	columns []string
	source  valueSource
	order   []string
}

func (i *insertBase) setColumns(columns []string) {
	i.columns = append([]string(nil), columns...)
}

// addValues appends a literal tuple, dropping it on arity mismatch.
func (i *insertBase) addValues(values []any) {
	if len(values) != len(i.columns) {
		i.report(&ArityError{Op: "Values", Columns: len(i.columns), Got: len(values)})
		return
	}
	t, _ := i.source.(literalTuples)
	i.source = append(t, lits(values))
}

// addRow appends a raw ROW tuple, dropping it on arity mismatch.
func (i *insertBase) addRow(exprs []string) {
	if len(exprs) != len(i.columns) {
		i.report(&ArityError{Op: "Rows", Columns: len(i.columns), Got: len(exprs)})
		return
	}
	t, _ := i.source.(rowTuples)
	i.source = append(t, append([]string(nil), exprs...))
}

// render writes "INTO table (cols) <source>" to b.
func (i *insertBase) render(b *Builder) {
	b.Keyword("INTO ").WriteString(i.table)
	b.WriteString(" (").JoinComma(i.columns...).Byte(')')
	if i.source == nil {
		b.Keyword("VALUES")
		return
	}
	i.source.render(b, i.order)
}

// priority is the optional LOW_PRIORITY / HIGH_PRIORITY modifier.
type priority uint8

const (
	priorityNone priority = iota
	priorityLow
	priorityHigh
)

// InsertBuilder is a builder for the INSERT statement.
type InsertBuilder struct {
	insertBase
	priority priority
	ignore   bool
	odku     []string
}

// Insert returns a builder for the INSERT statement. The column list fixes
// the arity of every value tuple.
//
//	sql.Insert("name", "age").Into("users").Values("a8m", 10).Values("nati", 20)
//	// INSERT INTO users (name, age) VALUES ('a8m', 10), ('nati', 20)
func Insert(columns ...string) *InsertBuilder {
	i := &InsertBuilder{}
	i.bind(nil, i)
	i.setColumns(columns)
	return i
}

// Into sets the target table.
func (i *InsertBuilder) Into(table string) *InsertBuilder {
	i.table = table
	return i
}

// LowPriority adds the LOW_PRIORITY modifier, replacing HIGH_PRIORITY.
func (i *InsertBuilder) LowPriority() *InsertBuilder {
	i.priority = priorityLow
	return i
}

// HighPriority adds the HIGH_PRIORITY modifier, replacing LOW_PRIORITY.
func (i *InsertBuilder) HighPriority() *InsertBuilder {
	i.priority = priorityHigh
	return i
}

// Ignore adds the IGNORE modifier.
func (i *InsertBuilder) Ignore() *InsertBuilder {
	i.ignore = true
	return i
}

// Values appends a tuple of literal values. A tuple whose length differs
// from the column count is dropped. Rows and ValuesSelect are cleared.
func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.addValues(values)
	return i
}

// Rows appends a tuple of raw expressions rendered as ROW(...). A tuple
// whose length differs from the column count is dropped. Values and
// ValuesSelect are cleared.
func (i *InsertBuilder) Rows(exprs ...string) *InsertBuilder {
	i.addRow(exprs)
	return i
}

// ValuesSelect sets a select as the source of the rows. Values and Rows are
// cleared. The select follows the column list directly, without the VALUES
// keyword:
//
//	sql.Insert("a").Into("t").ValuesSelect(sql.Select("a").From("s"))
//	// INSERT INTO t (a) (SELECT a FROM s)
func (i *InsertBuilder) ValuesSelect(s *Selector) *InsertBuilder {
	i.source = selectSource{sel: s}
	return i
}

// OrderBy appends terms to the ORDER BY list. It is rendered with the Rows form only.
func (i *InsertBuilder) OrderBy(terms ...string) *InsertBuilder {
	i.order = append(i.order, terms...)
	return i
}

// Orders replaces the ORDER BY list.
func (i *InsertBuilder) Orders(terms ...string) *InsertBuilder {
	i.order = append([]string(nil), terms...)
	return i
}

// OnDuplicateKeyUpdate sets the assignments of the ON DUPLICATE KEY UPDATE clause.
//
//	sql.Insert("id", "n").Into("t").Values(1, 1).OnDuplicateKeyUpdate("n = n + 1")
func (i *InsertBuilder) OnDuplicateKeyUpdate(assignments ...string) *InsertBuilder {
	i.odku = append([]string(nil), assignments...)
	return i
}

// String renders the INSERT statement.
func (i *InsertBuilder) String() string {
	b := &Builder{}
	b.WriteString("INSERT")
	switch i.priority {
	case priorityLow:
		b.Keyword("LOW_PRIORITY")
	case priorityHigh:
		b.Keyword("HIGH_PRIORITY")
	}
	if i.ignore {
		b.Keyword("IGNORE")
	}
	i.render(b)
	if len(i.odku) > 0 {
		b.Keyword("ON DUPLICATE KEY UPDATE ").JoinComma(i.odku...)
	}
	return b.String()
}

// ReplaceBuilder is a builder for the REPLACE statement.
type ReplaceBuilder struct {
	insertBase
	lowPriority bool
}

// Replace returns a builder for the REPLACE statement.
func Replace(columns ...string) *ReplaceBuilder {
	r := &ReplaceBuilder{}
	r.bind(nil, r)
	r.setColumns(columns)
	return r
}

// Into sets the target table.
func (r *ReplaceBuilder) Into(table string) *ReplaceBuilder {
	r.table = table
	return r
}

// LowPriority adds the LOW_PRIORITY modifier.
func (r *ReplaceBuilder) LowPriority() *ReplaceBuilder {
	r.lowPriority = true
	return r
}

// Values appends a tuple of literal values. See InsertBuilder.Values.
func (r *ReplaceBuilder) Values(values ...any) *ReplaceBuilder {
	r.addValues(values)
	return r
}

// Rows appends a tuple of raw expressions. See InsertBuilder.Rows.
func (r *ReplaceBuilder) Rows(exprs ...string) *ReplaceBuilder {
	r.addRow(exprs)
	return r
}

// ValuesSelect sets a select as the source of the rows, rendered without the
// VALUES keyword. See InsertBuilder.ValuesSelect.
func (r *ReplaceBuilder) ValuesSelect(s *Selector) *ReplaceBuilder {
	r.source = selectSource{sel: s}
	return r
}

// OrderBy appends terms to the ORDER BY list. It is rendered with the Rows form only.
func (r *ReplaceBuilder) OrderBy(terms ...string) *ReplaceBuilder {
	r.order = append(r.order, terms...)
	return r
}

// Orders replaces the ORDER BY list.
func (r *ReplaceBuilder) Orders(terms ...string) *ReplaceBuilder {
	r.order = append([]string(nil), terms...)
	return r
}

// String renders the REPLACE statement.
func (r *ReplaceBuilder) String() string {
	b := &Builder{}
	b.WriteString("REPLACE")
	if r.lowPriority {
		b.Keyword("LOW_PRIORITY")
	}
	r.render(b)
	return b.String()
}
