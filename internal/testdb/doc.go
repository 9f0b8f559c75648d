// Package testdb provides utilities for tests that run against a real
// PostgreSQL database.
//
// Tests locate the database through DATABASE_URL (or TAREFA_TEST_DB_URL /
// TAREFA_DATABASE_URL) and skip when none is set. The schema is migrated once
// per test binary, and each test should run inside WithTx so its changes are
// rolled back:
//
//	func TestSomething(t *testing.T) {
//		db := testdb.GetTestDBWithT(t)
//		testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
//			store := postgres.NewPostgresTaskStore(tx, nil)
//			// ...
//		})
//	}
package testdb
