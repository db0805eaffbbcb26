// Package inmemorystore provides a thread-safe, in-memory implementation
// of the factstore.Store interface. A fresh store is created for every
// analysis run.
package inmemorystore
