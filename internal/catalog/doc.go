// Package catalog is the relational store behind the photo index. It
// persists libraries, photos, tags, and albums in a single SQLite file
// and exposes typed query and mutation methods over them.
//
// The underlying database handle is serialized: one connection, one
// mutex. SQLite is fast enough for a per-user catalog that contending
// writers are not worth the complexity of a connection pool.
package catalog
