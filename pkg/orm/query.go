// Package orm provides a thin fluent layer over the shared *gorm.DB with
// optional cache-through reads.
package orm

import (
	"time"

	"gorm.io/gorm"

	"waroengpos/pkg/cache"
	"waroengpos/pkg/database"
)

type Query struct {
	db *gorm.DB
}

// DB starts a query against the shared connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// With starts a query against an explicit connection (transactions, tests).
func With(db *gorm.DB) *Query {
	return &Query{db: db}
}

// Gorm exposes the underlying *gorm.DB for operations the fluent surface
// does not cover.
func (q *Query) Gorm() *gorm.DB { return q.db }

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Preload(assoc string) *Query {
	return &Query{db: q.db.Preload(assoc)}
}

func (q *Query) Order(expr string) *Query {
	return &Query{db: q.db.Order(expr)}
}

func (q *Query) Select(expr string, args ...interface{}) *Query {
	return &Query{db: q.db.Select(expr, args...)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count(n *int64) error {
	return q.db.Count(n).Error
}

func (q *Query) Scan(dest interface{}) error {
	return q.db.Scan(dest).Error
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	return q.db.Save(v).Error
}

func (q *Query) Delete(v interface{}) error {
	return q.db.Delete(v).Error
}

// Updates applies the given column map and returns the number of rows
// touched, enabling conditional (compare-and-swap) transitions.
func (q *Query) Updates(values map[string]interface{}) (int64, error) {
	res := q.db.Updates(values)
	return res.RowsAffected, res.Error
}

// Transaction runs fn inside a database transaction.
func Transaction(fn func(tx *gorm.DB) error) error {
	return database.DB.Transaction(fn)
}

// Cache performs a cache-through Find: on hit dest is filled from Redis,
// on miss the query runs and the result is cached for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	cache.Set(key, dest, ttl) //nolint:errcheck
	return nil
}
