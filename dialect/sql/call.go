package sql

import "strings"

// CallBuilder is a builder for the CALL statement.
type CallBuilder struct {
	execer
	procedure string
	params    []Literal
}

// Call returns a builder for calling a stored procedure.
//
//	sql.Call("add_user").Params("a8m", 30)
//	// CALL add_user('a8m', 30)
func Call(procedure string) *CallBuilder {
	c := &CallBuilder{procedure: procedure}
	c.bind(nil, c)
	return c
}

// Params replaces the parameter list.
func (c *CallBuilder) Params(params ...any) *CallBuilder {
	c.params = lits(params)
	return c
}

// String renders the CALL statement.
func (c *CallBuilder) String() string {
	return "CALL " + c.procedure + "(" + joinLits(c.params) + ")"
}

// DoBuilder is a builder for the DO statement, which evaluates expressions
// without returning a result.
type DoBuilder struct {
	execer
	exprs []string
}

// Do returns a builder for the DO statement.
//
//	sql.Do("SLEEP(1)", "RELEASE_LOCK('l')")
//	// DO SLEEP(1), RELEASE_LOCK('l')
func Do(exprs ...string) *DoBuilder {
	d := &DoBuilder{exprs: append([]string(nil), exprs...)}
	d.bind(nil, d)
	return d
}

// String renders the DO statement.
func (d *DoBuilder) String() string {
	return "DO " + strings.Join(d.exprs, ", ")
}
