// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces (repositories) defined in the internal/store package.
// It handles the details of query execution and data mapping between domain
// entities and database records. Slice-valued aggregate fields (expertise,
// match lists, sessions) are stored as JSONB columns.
package postgres
