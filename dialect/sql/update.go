package sql

// Assignment is a single "column = value" pair of an UPDATE.
type Assignment struct {
	Column string
	Value  any
}

// Set returns an Assignment of v to column.
func Set(column string, v any) Assignment {
	return Assignment{Column: column, Value: v}
}

type assignment struct {
	column string
	value  Literal
}

// UpdateBuilder is a builder for the UPDATE statement.
type UpdateBuilder struct {
	execer
	diagnostics
	table       string
	lowPriority bool
	ignore      bool
	sets        []assignment
	where       predicate
	order       []string
	limit       limit
}

// Update returns a builder for the UPDATE statement.
//
//	sql.Update("users").Set("name", "foo").Set("age", 10).Where("id=1")
//	// UPDATE users SET name = 'foo', age = 10 WHERE id=1
func Update(table string) *UpdateBuilder {
	u := &UpdateBuilder{table: table}
	u.bind(nil, u)
	return u
}

// LowPriority adds the LOW_PRIORITY modifier.
func (u *UpdateBuilder) LowPriority() *UpdateBuilder {
	u.lowPriority = true
	return u
}

// Ignore adds the IGNORE modifier.
func (u *UpdateBuilder) Ignore() *UpdateBuilder {
	u.ignore = true
	return u
}

// Set appends an assignment of v to column.
func (u *UpdateBuilder) Set(column string, v any) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column: column, value: Lit(v)})
	return u
}

// Sets replaces all assignments.
func (u *UpdateBuilder) Sets(assignments ...Assignment) *UpdateBuilder {
	u.sets = make([]assignment, len(assignments))
	for i, a := range assignments {
		u.sets[i] = assignment{column: a.Column, value: Lit(a.Value)}
	}
	return u
}

// Where appends a clause to the WHERE predicate. A connective given with
// the first clause is dropped and reported through Diagnostics.
func (u *UpdateBuilder) Where(clause string, conn ...Connective) *UpdateBuilder {
	u.leading("Where", u.where.add(clause, conn))
	return u
}

// Wheres replaces the WHERE predicate with the given clauses.
func (u *UpdateBuilder) Wheres(clauses ...string) *UpdateBuilder {
	u.where.set(clauses)
	return u
}

// OrderBy appends terms to the ORDER BY list.
func (u *UpdateBuilder) OrderBy(terms ...string) *UpdateBuilder {
	u.order = append(u.order, terms...)
	return u
}

// Orders replaces the ORDER BY list.
func (u *UpdateBuilder) Orders(terms ...string) *UpdateBuilder {
	u.order = append([]string(nil), terms...)
	return u
}

// Limit sets the LIMIT of the update.
func (u *UpdateBuilder) Limit(n int) *UpdateBuilder {
	u.limit.set(n)
	return u
}

// String renders the UPDATE statement.
func (u *UpdateBuilder) String() string {
	b := &Builder{}
	b.WriteString("UPDATE")
	if u.lowPriority {
		b.Keyword("LOW_PRIORITY")
	}
	if u.ignore {
		b.Keyword("IGNORE")
	}
	b.Keyword(u.table).Keyword("SET")
	if len(u.sets) > 0 {
		sets := make([]string, len(u.sets))
		for i, s := range u.sets {
			sets[i] = s.column + " = " + s.value.String()
		}
		b.Pad().JoinComma(sets...)
	}
	b.Clause("WHERE", u.where.String())
	if len(u.order) > 0 {
		b.Keyword("ORDER BY ").JoinComma(u.order...)
	}
	if u.limit.valid {
		b.Keyword("LIMIT ").Int(u.limit.n)
	}
	return b.String()
}
