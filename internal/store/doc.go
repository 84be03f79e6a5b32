// Package store persists solve-run history in SQLite.
//
// Each invocation of the solve command may record a run: the puzzle, the
// configuration, the final statistics, and every solution the engine
// reported (reported, not found: the print-interval throttle applies,
// which keeps billion-solution enumerations storable).
//
// The database uses WAL mode with a single writer connection, which is
// enough here: solution inserts arrive serialized through the sink lock.
package store
