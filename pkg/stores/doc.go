// Package stores provides the persistence layer for azrid. It includes
// SQLite-based storage with WAL mode, connection pooling, and CRUD
// operations for lint runs and their findings.
package stores
