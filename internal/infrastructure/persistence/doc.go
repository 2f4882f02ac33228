// Package persistence provides the GORM repository implementations of the
// domain repositories, backed by PostgreSQL in production and SQLite in tests
// and single node deployments.
package persistence
