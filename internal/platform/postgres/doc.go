// Package postgres provides PostgreSQL implementations of the store
// interfaces. Each store accepts a store.DBTX so it can run against either a
// database connection or a transaction, and maps driver errors onto the
// store package's sentinel errors.
package postgres
