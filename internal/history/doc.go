// Package history persists finished downloads in a bbolt database.
package history
