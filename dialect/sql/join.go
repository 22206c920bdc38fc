package sql

import "strings"

// JoinKind is the kind of a join fragment.
type JoinKind uint8

// Join kinds.
const (
	PlainJoin JoinKind = iota
	InnerJoin
	LeftJoin
	RightJoin
	FullJoin
)

// String returns the join keyword of the kind.
func (k JoinKind) String() string {
	switch k {
	case InnerJoin:
		return "INNER JOIN"
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case FullJoin:
		return "FULL JOIN"
	default:
		return "JOIN"
	}
}

// joinCond holds either a USING column list or an ON predicate sequence.
type joinCond interface {
	render(*Builder)
}

type usingCond []string

func (u usingCond) render(b *Builder) {
	b.Keyword("USING (").JoinComma(u...).Byte(')')
}

type onCond struct{ predicate }

func (o onCond) render(b *Builder) {
	b.Clause("ON", o.predicate.String())
}

// JoinBuilder is a single joined table or subquery.
type JoinBuilder struct {
	kind   JoinKind
	source tableSource
	alias  string
	cond   joinCond
}

// Join returns a new join fragment of the given kind.
func Join(kind JoinKind) *JoinBuilder {
	return &JoinBuilder{kind: kind}
}

// Kind returns the join kind.
func (j *JoinBuilder) Kind() JoinKind { return j.kind }

// Table sets the joined table.
func (j *JoinBuilder) Table(name string) *JoinBuilder {
	j.source = tableSource{name: name}
	return j
}

// TableSelect sets a subquery as the joined source.
func (j *JoinBuilder) TableSelect(s *Selector) *JoinBuilder {
	j.source = tableSource{sel: s}
	return j
}

// As sets the alias of the joined source.
func (j *JoinBuilder) As(alias string) *JoinBuilder {
	j.alias = alias
	return j
}

// Using sets the USING column list and drops any ON predicate.
func (j *JoinBuilder) Using(columns ...string) *JoinBuilder {
	j.cond = usingCond(append([]string(nil), columns...))
	return j
}

// On appends a clause to the ON predicate, dropping any USING list.
func (j *JoinBuilder) On(clause string, conn ...Connective) *JoinBuilder {
	j.on(clause, conn)
	return j
}

func (j *JoinBuilder) on(clause string, conn []Connective) Connective {
	on, _ := j.cond.(onCond)
	dropped := on.add(clause, conn)
	j.cond = on
	return dropped
}

// Ons replaces the ON predicate with the given clauses, dropping any USING list.
func (j *JoinBuilder) Ons(clauses ...string) *JoinBuilder {
	var on onCond
	on.set(clauses)
	j.cond = on
	return j
}

// String renders the join fragment.
func (j *JoinBuilder) String() string {
	b := &Builder{}
	b.WriteString(j.kind.String())
	j.source.render(b)
	if j.alias != "" {
		b.Keyword("AS ").WriteString(j.alias)
	}
	if j.cond != nil {
		j.cond.render(b)
	}
	return strings.TrimSpace(b.String())
}

// tableSource is a table name or a nested select.
type tableSource struct {
	name string
	sel  *Selector
}

func (t tableSource) empty() bool {
	return t.name == "" && t.sel == nil
}

func (t tableSource) render(b *Builder) {
	switch {
	case t.sel != nil:
		b.Pad().Nested(t.sel)
	case t.name != "":
		b.Keyword(t.name)
	}
}
