package sql

// DeleteBuilder is a builder for the DELETE statement.
type DeleteBuilder struct {
	execer
	diagnostics
	table       string
	alias       string
	lowPriority bool
	quick       bool
	ignore      bool
	where       predicate
	order       []string
	limit       limit
}

// Delete returns a builder for the DELETE statement.
//
//	sql.Delete("users").Where("age>18").OrderBy("id").Limit(10)
//	// DELETE FROM users WHERE age>18 ORDER BY id LIMIT 10
func Delete(table string) *DeleteBuilder {
	d := &DeleteBuilder{table: table}
	d.bind(nil, d)
	return d
}

// As sets the alias of the target table.
func (d *DeleteBuilder) As(alias string) *DeleteBuilder {
	d.alias = alias
	return d
}

// LowPriority adds the LOW_PRIORITY modifier.
func (d *DeleteBuilder) LowPriority() *DeleteBuilder {
	d.lowPriority = true
	return d
}

// Quick adds the QUICK modifier.
func (d *DeleteBuilder) Quick() *DeleteBuilder {
	d.quick = true
	return d
}

// Ignore adds the IGNORE modifier.
func (d *DeleteBuilder) Ignore() *DeleteBuilder {
	d.ignore = true
	return d
}

// Where appends a clause to the WHERE predicate. A connective given with
// the first clause is dropped and reported through Diagnostics.
func (d *DeleteBuilder) Where(clause string, conn ...Connective) *DeleteBuilder {
	d.leading("Where", d.where.add(clause, conn))
	return d
}

// Wheres replaces the WHERE predicate with the given clauses.
func (d *DeleteBuilder) Wheres(clauses ...string) *DeleteBuilder {
	d.where.set(clauses)
	return d
}

// OrderBy appends terms to the ORDER BY list.
func (d *DeleteBuilder) OrderBy(terms ...string) *DeleteBuilder {
	d.order = append(d.order, terms...)
	return d
}

// Orders replaces the ORDER BY list.
func (d *DeleteBuilder) Orders(terms ...string) *DeleteBuilder {
	d.order = append([]string(nil), terms...)
	return d
}

// Limit sets the LIMIT of the delete.
func (d *DeleteBuilder) Limit(n int) *DeleteBuilder {
	d.limit.set(n)
	return d
}

// String renders the DELETE statement.
func (d *DeleteBuilder) String() string {
	b := &Builder{}
	b.WriteString("DELETE")
	if d.lowPriority {
		b.Keyword("LOW_PRIORITY")
	}
	if d.quick {
		b.Keyword("QUICK")
	}
	if d.ignore {
		b.Keyword("IGNORE")
	}
	b.Keyword("FROM ").WriteString(d.table)
	if d.alias != "" {
		b.Keyword("AS ").WriteString(d.alias)
	}
	b.Clause("WHERE", d.where.String())
	if len(d.order) > 0 {
		b.Keyword("ORDER BY ").JoinComma(d.order...)
	}
	if d.limit.valid {
		b.Keyword("LIMIT ").Int(d.limit.n)
	}
	return b.String()
}
