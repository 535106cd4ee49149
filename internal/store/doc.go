// Package store persists run history in SQLite and guards the storage
// directory with a file lock so concurrent generations do not trample
// each other's chunk and export files.
package store
