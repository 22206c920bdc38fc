package sql

import "strings"

// unionMode selects the UNION combinator.
type unionMode uint8

const (
	unionPlain unionMode = iota
	unionAll
	unionDistinct
)

// UnionBuilder combines selects with UNION, UNION ALL or UNION DISTINCT.
type UnionBuilder struct {
	execer
	selects []*Selector
	mode    unionMode
}

// Union returns a builder combining the given selects.
//
//	sql.Union(sql.Select("a").From("t1"), sql.Select("a").From("t2")).All()
//	// SELECT a FROM t1 UNION ALL SELECT a FROM t2
func Union(selects ...*Selector) *UnionBuilder {
	u := &UnionBuilder{selects: append([]*Selector(nil), selects...)}
	u.bind(nil, u)
	return u
}

// All uses UNION ALL, replacing UNION DISTINCT.
func (u *UnionBuilder) All() *UnionBuilder {
	u.mode = unionAll
	return u
}

// Distinct uses UNION DISTINCT, replacing UNION ALL.
func (u *UnionBuilder) Distinct() *UnionBuilder {
	u.mode = unionDistinct
	return u
}

// Add appends a select.
func (u *UnionBuilder) Add(s *Selector) *UnionBuilder {
	u.selects = append(u.selects, s)
	return u
}

// Remove removes the select at index and reports whether it existed.
func (u *UnionBuilder) Remove(index int) bool {
	if index < 0 || index >= len(u.selects) {
		return false
	}
	u.selects = append(u.selects[:index], u.selects[index+1:]...)
	return true
}

// Len returns the number of selects.
func (u *UnionBuilder) Len() int {
	return len(u.selects)
}

// String renders the combined selects.
func (u *UnionBuilder) String() string {
	sep := " UNION "
	switch u.mode {
	case unionAll:
		sep = " UNION ALL "
	case unionDistinct:
		sep = " UNION DISTINCT "
	}
	parts := make([]string, len(u.selects))
	for i, s := range u.selects {
		parts[i] = s.String()
	}
	return strings.Join(parts, sep)
}
