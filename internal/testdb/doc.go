// Package testdb provides utilities for database integration tests.
//
// Tests obtain a connection with GetTestDBWithT, which skips the test when
// no database URL is configured and applies the embedded goose migrations
// once per process. Each test then runs inside WithTx, whose transaction is
// always rolled back, so tests can run in parallel without cleanup.
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        projects := postgres.NewPostgresProjectStore(tx, nil)
//	        // ...
//	    })
//	}
//
// The database URL is read from DATABASE_URL, then TASKTRACK_TEST_DB_URL,
// then TASKTRACK_DATABASE_URL.
package testdb
