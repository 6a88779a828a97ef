// Package migrations contains all schema migration files. Each file calls
// migration.Register from init(), so importing this package for side
// effects (as cmd and internal/server do) registers everything.
package migrations
