// Package querybuilder is a fluent builder for MySQL statements.
//
// The statement builders live in dialect/sql and can be used on their own to
// render SQL text. This package adds a Client that binds them to a MySQL
// connection opened from a Config:
//
//	cfg, err := querybuilder.LoadConfig("db.yaml")
//	if err != nil {
//	    return err
//	}
//	client, err := querybuilder.Open(cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	n, err := client.Update("users").
//	    Set("active", false).
//	    Where(sql.LT("last_seen", "2024-01-01")).
//	    Exec(ctx)
package querybuilder
