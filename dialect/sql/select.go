package sql

// section is a clause kind of a select, used to route context sensitive calls.
type section uint8

const (
	sectionNone section = iota
	sectionFrom
	sectionJoin
	sectionWhere
	sectionGroup
	sectionHaving
	sectionOrder
)

// focus records the section touched last and, for joins, which one.
type focus struct {
	section section
	join    int
}

// distinctMode is the optional DISTINCT / DISTINCTROW modifier.
type distinctMode uint8

const (
	distinctNone distinctMode = iota
	distinctAll
	distinctRow
)

// Column is a projection item, rendered as "expr" or "expr AS alias".
type Column struct {
	Expr  string
	Alias string
}

// String renders the column.
func (c Column) String() string {
	if c.Alias == "" {
		return c.Expr
	}
	return c.Expr + " AS " + c.Alias
}

// As returns a Column for expr under the given alias.
func As(expr, alias string) Column {
	return Column{Expr: expr, Alias: alias}
}

// joinEntry is a join fragment stored under its table key.
type joinEntry struct {
	key  string
	join *JoinBuilder
}

// Selector is a builder for the SELECT statement.
type Selector struct {
	execer
	diagnostics
	with         *WithBuilder
	distinct     distinctMode
	highPriority bool
	straightJoin bool
	columns      []Column
	from         tableSource
	fromAlias    string
	joins        []joinEntry
	where        predicate
	group        []string
	groupRollup  bool
	having       predicate
	order        []string
	orderRollup  bool
	limit        limit
	offset       limit
	focus        focus
}

// Select returns a builder for the SELECT statement.
//
//	sql.Select("id", "name").From("users").Where("age>18").OrderBy("name").Limit(10)
func Select(columns ...string) *Selector {
	s := &Selector{}
	s.bind(nil, s)
	return s.Columns(columns...)
}

// Columns replaces the projection list with bare columns.
func (s *Selector) Columns(columns ...string) *Selector {
	s.columns = make([]Column, len(columns))
	for i, c := range columns {
		s.columns[i] = Column{Expr: c}
	}
	return s
}

// AppendColumns appends the given projection items.
func (s *Selector) AppendColumns(columns ...Column) *Selector {
	s.columns = append(s.columns, columns...)
	return s
}

// ColumnAs appends "expr AS alias" to the projection list.
func (s *Selector) ColumnAs(expr, alias string) *Selector {
	return s.AppendColumns(As(expr, alias))
}

// With sets the WITH prefix of the select.
func (s *Selector) With(w *WithBuilder) *Selector {
	s.with = w
	return s
}

// Distinct adds the DISTINCT modifier, replacing DISTINCTROW.
func (s *Selector) Distinct() *Selector {
	s.distinct = distinctAll
	return s
}

// DistinctRow adds the DISTINCTROW modifier, replacing DISTINCT.
func (s *Selector) DistinctRow() *Selector {
	s.distinct = distinctRow
	return s
}

// HighPriority adds the HIGH_PRIORITY modifier.
func (s *Selector) HighPriority() *Selector {
	s.highPriority = true
	return s
}

// StraightJoin adds the STRAIGHT_JOIN modifier.
func (s *Selector) StraightJoin() *Selector {
	s.straightJoin = true
	return s
}

// From sets the source table.
func (s *Selector) From(table string) *Selector {
	s.from, s.fromAlias = tableSource{name: table}, ""
	s.focus = focus{section: sectionFrom}
	return s
}

// FromSelect sets a subquery as the source.
func (s *Selector) FromSelect(sel *Selector) *Selector {
	s.from, s.fromAlias = tableSource{sel: sel}, ""
	s.focus = focus{section: sectionFrom}
	return s
}

// As sets the alias of the source or of the current join, whichever was
// touched last. It is a no-op otherwise.
func (s *Selector) As(alias string) *Selector {
	switch s.focus.section {
	case sectionFrom:
		s.fromAlias = alias
	case sectionJoin:
		s.joins[s.focus.join].join.As(alias)
	default:
		s.report(&ContextError{Op: "As", Err: ErrNoAliasTarget})
	}
	return s
}

// Join adds a plain JOIN of table.
func (s *Selector) Join(table string) *Selector {
	return s.join(table, Join(PlainJoin).Table(table))
}

// InnerJoin adds an INNER JOIN of table.
func (s *Selector) InnerJoin(table string) *Selector {
	return s.join(table, Join(InnerJoin).Table(table))
}

// LeftJoin adds a LEFT JOIN of table.
func (s *Selector) LeftJoin(table string) *Selector {
	return s.join(table, Join(LeftJoin).Table(table))
}

// RightJoin adds a RIGHT JOIN of table.
func (s *Selector) RightJoin(table string) *Selector {
	return s.join(table, Join(RightJoin).Table(table))
}

// FullJoin adds a FULL JOIN of table.
func (s *Selector) FullJoin(table string) *Selector {
	return s.join(table, Join(FullJoin).Table(table))
}

// JoinSelect adds a plain JOIN of a subquery, stored under key.
func (s *Selector) JoinSelect(key string, sel *Selector) *Selector {
	return s.join(key, Join(PlainJoin).TableSelect(sel))
}

// InnerJoinSelect adds an INNER JOIN of a subquery, stored under key.
func (s *Selector) InnerJoinSelect(key string, sel *Selector) *Selector {
	return s.join(key, Join(InnerJoin).TableSelect(sel))
}

// LeftJoinSelect adds a LEFT JOIN of a subquery, stored under key.
func (s *Selector) LeftJoinSelect(key string, sel *Selector) *Selector {
	return s.join(key, Join(LeftJoin).TableSelect(sel))
}

// RightJoinSelect adds a RIGHT JOIN of a subquery, stored under key.
func (s *Selector) RightJoinSelect(key string, sel *Selector) *Selector {
	return s.join(key, Join(RightJoin).TableSelect(sel))
}

// FullJoinSelect adds a FULL JOIN of a subquery, stored under key.
func (s *Selector) FullJoinSelect(key string, sel *Selector) *Selector {
	return s.join(key, Join(FullJoin).TableSelect(sel))
}

// join stores j under key. A join with the same key is replaced in place,
// keeping its original position.
func (s *Selector) join(key string, j *JoinBuilder) *Selector {
	idx := -1
	for i := range s.joins {
		if s.joins[i].key == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = len(s.joins)
		s.joins = append(s.joins, joinEntry{key: key})
	}
	s.joins[idx].join = j
	s.focus = focus{section: sectionJoin, join: idx}
	return s
}

// currentJoin returns the join the last call declared, or nil.
func (s *Selector) currentJoin(op string) *JoinBuilder {
	if s.focus.section != sectionJoin {
		s.report(&ContextError{Op: op, Err: ErrNoJoinTarget})
		return nil
	}
	return s.joins[s.focus.join].join
}

// Using sets the USING columns of the current join.
func (s *Selector) Using(columns ...string) *Selector {
	if j := s.currentJoin("Using"); j != nil {
		j.Using(columns...)
	}
	return s
}

// On appends a clause to the ON predicate of the current join.
//
//	sql.Select("*").From("a").Join("b").On("a.id=b.a_id").On("b.active=1", sql.AND)
func (s *Selector) On(clause string, conn ...Connective) *Selector {
	if j := s.currentJoin("On"); j != nil {
		s.leading("On", j.on(clause, conn))
	}
	return s
}

// Ons replaces the ON predicate of the current join.
func (s *Selector) Ons(clauses ...string) *Selector {
	if j := s.currentJoin("Ons"); j != nil {
		j.Ons(clauses...)
	}
	return s
}

// Where appends a clause to the WHERE predicate. The optional connective
// links it to the clauses already added. A connective given with the first
// clause is dropped and reported through Diagnostics.
//
//	s.Where("a=1").Where("b=2", sql.AND) // WHERE a=1 AND b=2
func (s *Selector) Where(clause string, conn ...Connective) *Selector {
	s.leading("Where", s.where.add(clause, conn))
	s.focus = focus{section: sectionWhere}
	return s
}

// Wheres replaces the WHERE predicate with the given clauses.
func (s *Selector) Wheres(clauses ...string) *Selector {
	s.where.set(clauses)
	s.focus = focus{section: sectionWhere}
	return s
}

// GroupBy appends columns to the GROUP BY list.
func (s *Selector) GroupBy(columns ...string) *Selector {
	s.group = append(s.group, columns...)
	s.focus = focus{section: sectionGroup}
	return s
}

// Groups replaces the GROUP BY list.
func (s *Selector) Groups(columns ...string) *Selector {
	s.group = append([]string(nil), columns...)
	s.focus = focus{section: sectionGroup}
	return s
}

// Having appends a clause to the HAVING predicate, linked like Where.
func (s *Selector) Having(clause string, conn ...Connective) *Selector {
	s.leading("Having", s.having.add(clause, conn))
	s.focus = focus{section: sectionHaving}
	return s
}

// Havings replaces the HAVING predicate with the given clauses.
func (s *Selector) Havings(clauses ...string) *Selector {
	s.having.set(clauses)
	s.focus = focus{section: sectionHaving}
	return s
}

// OrderBy appends terms to the ORDER BY list.
func (s *Selector) OrderBy(terms ...string) *Selector {
	s.order = append(s.order, terms...)
	s.focus = focus{section: sectionOrder}
	return s
}

// Orders replaces the ORDER BY list.
func (s *Selector) Orders(terms ...string) *Selector {
	s.order = append([]string(nil), terms...)
	s.focus = focus{section: sectionOrder}
	return s
}

// WithRollup adds WITH ROLLUP to the GROUP BY or ORDER BY list that was
// touched last. The flag sticks for the statement.
func (s *Selector) WithRollup() *Selector {
	switch s.focus.section {
	case sectionOrder:
		s.orderRollup = true
	case sectionGroup:
		s.groupRollup = true
	default:
		s.report(&ContextError{Op: "WithRollup", Err: ErrNoRollupTarget})
	}
	return s
}

// Limit sets the LIMIT of the select.
func (s *Selector) Limit(n int) *Selector {
	s.limit.set(n)
	return s
}

// Offset sets the OFFSET of the select.
func (s *Selector) Offset(n int) *Selector {
	s.offset.set(n)
	return s
}

// String renders the SELECT statement.
func (s *Selector) String() string {
	b := &Builder{}
	if s.with != nil {
		b.WriteString(s.with.String())
	}
	b.Keyword("SELECT")
	switch s.distinct {
	case distinctAll:
		b.Keyword("DISTINCT")
	case distinctRow:
		b.Keyword("DISTINCTROW")
	}
	if s.highPriority {
		b.Keyword("HIGH_PRIORITY")
	}
	if s.straightJoin {
		b.Keyword("STRAIGHT_JOIN")
	}
	if len(s.columns) > 0 {
		cols := make([]string, len(s.columns))
		for i, c := range s.columns {
			cols[i] = c.String()
		}
		b.Pad().JoinComma(cols...)
	}
	if !s.from.empty() {
		b.Keyword("FROM")
		s.from.render(b)
		if s.fromAlias != "" {
			b.Keyword("AS ").WriteString(s.fromAlias)
		}
	}
	for _, j := range s.joins {
		b.Keyword(j.join.String())
	}
	b.Clause("WHERE", s.where.String())
	if len(s.group) > 0 {
		b.Keyword("GROUP BY ").JoinComma(s.group...)
		if s.groupRollup {
			b.Keyword("WITH ROLLUP")
		}
	}
	b.Clause("HAVING", s.having.String())
	if len(s.order) > 0 {
		b.Keyword("ORDER BY ").JoinComma(s.order...)
		if s.orderRollup {
			b.Keyword("WITH ROLLUP")
		}
	}
	if s.limit.valid {
		b.Keyword("LIMIT ").Int(s.limit.n)
	}
	if s.offset.valid {
		b.Keyword("OFFSET ").Int(s.offset.n)
	}
	return b.String()
}
