package sql

import "strings"

// The functions below build clause text for Where, Having and On. Values
// are formatted with Format, so the same quoting rules apply.
//
//	sql.Select("*").From("users").
//	    Where(sql.EQ("status", "active")).
//	    Where(sql.In("role", "admin", "owner"), sql.AND)
//	// SELECT * FROM users WHERE status = 'active' AND role IN ('admin', 'owner')

// EQ returns the clause "column = v", or "column IS NULL" when v formats
// as NULL.
func EQ(column string, v any) string {
	if isNull(v) {
		return IsNull(column)
	}
	return column + " = " + Format(v)
}

// NEQ returns the clause "column <> v", or "column IS NOT NULL" when v
// formats as NULL.
func NEQ(column string, v any) string {
	if isNull(v) {
		return NotNull(column)
	}
	return column + " <> " + Format(v)
}

func isNull(v any) bool {
	l := Lit(v)
	return l.Kind() == KindSentinel && l.String() == NULL
}

// GT returns the clause "column > v".
func GT(column string, v any) string { return column + " > " + Format(v) }

// GTE returns the clause "column >= v".
func GTE(column string, v any) string { return column + " >= " + Format(v) }

// LT returns the clause "column < v".
func LT(column string, v any) string { return column + " < " + Format(v) }

// LTE returns the clause "column <= v".
func LTE(column string, v any) string { return column + " <= " + Format(v) }

// In returns the clause "column IN (v1, v2, ...)".
func In(column string, vs ...any) string {
	return column + " IN (" + joinLits(lits(vs)) + ")"
}

// NotIn returns the clause "column NOT IN (v1, v2, ...)".
func NotIn(column string, vs ...any) string {
	return column + " NOT IN (" + joinLits(lits(vs)) + ")"
}

// IsNull returns the clause "column IS NULL".
func IsNull(column string) string { return column + " IS NULL" }

// NotNull returns the clause "column IS NOT NULL".
func NotNull(column string) string { return column + " IS NOT NULL" }

// Like returns the clause "column LIKE pattern".
func Like(column, pattern string) string { return column + " LIKE " + Text(pattern).String() }

// Contains returns the clause "column LIKE '%sub%'".
func Contains(column, sub string) string { return Like(column, "%"+sub+"%") }

// HasPrefix returns the clause "column LIKE 'prefix%'".
func HasPrefix(column, prefix string) string { return Like(column, prefix+"%") }

// HasSuffix returns the clause "column LIKE '%suffix'".
func HasSuffix(column, suffix string) string { return Like(column, "%"+suffix) }

// And joins the clauses with AND inside parentheses.
func And(clauses ...string) string { return group(AND, clauses) }

// Or joins the clauses with OR inside parentheses.
func Or(clauses ...string) string { return group(OR, clauses) }

// Not negates the clause.
func Not(clause string) string { return "NOT (" + clause + ")" }

func group(conn Connective, clauses []string) string {
	if len(clauses) == 1 {
		return clauses[0]
	}
	return "(" + strings.Join(clauses, " "+string(conn)+" ") + ")"
}

// Field is a typed column name providing predicate methods for values of type T.
//
//	var Age = sql.Field[int]("age")
//	sql.Select("*").From("users").Where(Age.GTE(18))
type Field[T any] string

// Name returns the column name.
func (f Field[T]) Name() string { return string(f) }

// EQ returns a clause checking the column equals v.
func (f Field[T]) EQ(v T) string { return EQ(string(f), v) }

// NEQ returns a clause checking the column does not equal v.
func (f Field[T]) NEQ(v T) string { return NEQ(string(f), v) }

// GT returns a clause checking the column is greater than v.
func (f Field[T]) GT(v T) string { return GT(string(f), v) }

// GTE returns a clause checking the column is greater than or equal to v.
func (f Field[T]) GTE(v T) string { return GTE(string(f), v) }

// LT returns a clause checking the column is less than v.
func (f Field[T]) LT(v T) string { return LT(string(f), v) }

// LTE returns a clause checking the column is less than or equal to v.
func (f Field[T]) LTE(v T) string { return LTE(string(f), v) }

// In returns a clause checking the column is one of vs.
func (f Field[T]) In(vs ...T) string { return In(string(f), anys(vs)...) }

// NotIn returns a clause checking the column is none of vs.
func (f Field[T]) NotIn(vs ...T) string { return NotIn(string(f), anys(vs)...) }

// IsNull returns a clause checking the column is NULL.
func (f Field[T]) IsNull() string { return IsNull(string(f)) }

// NotNull returns a clause checking the column is not NULL.
func (f Field[T]) NotNull() string { return NotNull(string(f)) }

// Set returns an assignment of v to the column, for UpdateBuilder.Sets.
func (f Field[T]) Set(v T) Assignment { return Set(string(f), v) }

func anys[T any](vs []T) []any {
	v := make([]any, len(vs))
	for i := range vs {
		v[i] = vs[i]
	}
	return v
}
