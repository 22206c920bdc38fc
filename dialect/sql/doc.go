// Package sql provides builders for MySQL statements and a thin driver layer
// for executing them.
//
// Every builder accumulates clauses through chained calls and renders them
// with String. Rendering never mutates the builder, so a statement can be
// rendered any number of times.
//
// # Builder Types
//
//   - Selector: SELECT with joins, WITH prefix, grouping and ROLLUP
//   - InsertBuilder, ReplaceBuilder: INSERT and REPLACE with VALUES, ROW tuples or a select
//   - UpdateBuilder: UPDATE with SET, WHERE, ORDER BY and LIMIT
//   - DeleteBuilder: DELETE with WHERE, ORDER BY and LIMIT
//   - CallBuilder, DoBuilder: CALL and DO
//   - UnionBuilder: selects combined with UNION, UNION ALL or UNION DISTINCT
//   - BatchBuilder: independent statements joined into one multi-statement text
//
// # Literals
//
// Values passed to Values, Set, Params and the predicate helpers are turned
// into SQL text by Lit:
//
//	sql.Format("a8m")    // 'a8m'
//	sql.Format("null")   // NULL
//	sql.Format(nil)      // NULL
//	sql.Format(1.5)      // 1.5
//	sql.Format(true)     // true
//
// Strings are quoted but not escaped. Use Escape for values from untrusted
// input.
//
// # Predicates
//
// Where, Having and On take clause text and an optional connective linking
// it to the clauses already added:
//
//	sql.Select("*").From("users").
//	    Where(sql.GT("age", 18)).
//	    Where(sql.Contains("name", "a8m"), sql.AND)
//	// SELECT * FROM users WHERE age > 18 AND name LIKE '%a8m%'
//
// # Joins
//
// On, Ons, Using and As apply to the join declared last:
//
//	sql.Select("u.id", "p.title").From("users").As("u").
//	    LeftJoin("posts").As("p").On("u.id=p.user_id")
//
// Calls that have nothing to apply to are skipped and recorded in
// Diagnostics.
//
// # Execution
//
// Statements created through WithDriver can be executed directly:
//
//	drv, err := sql.Open(dialect.MySQL, dsn)
//	if err != nil {
//	    return err
//	}
//	n, err := sql.WithDriver(drv).Update("users").Set("active", 0).Where("id=1").Exec(ctx)
package sql
