// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the mentorship engine's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
package store
