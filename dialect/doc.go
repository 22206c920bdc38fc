// Package dialect defines the database abstraction the query builder
// executes through.
//
// The builders in dialect/sql only render SQL text. Running that text is
// delegated to a Driver, which hides the connection, transaction and
// result-fetching details from the statement-assembly code.
//
// # Dialect Constants
//
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite3"
//	dialect.Postgres = "postgres"
//
// Rendering always targets the MySQL grammar. The other names exist so a
// Driver wrapping a foreign connection can still report what it is.
//
// # Driver Interface
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// # Transaction Interface
//
//	type Tx interface {
//	    ExecQuerier
//	    Commit() error
//	    Rollback() error
//	}
//
// # Usage
//
//	drv, err := sql.Open(dialect.MySQL, "user:pass@tcp(localhost:3306)/app")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
//	n, err := sql.WithDriver(drv).
//	    Update("users").
//	    Set("status", "active").
//	    Where("id=1").
//	    Exec(ctx)
package dialect
