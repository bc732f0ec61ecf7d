// Package database owns every connection the application opens.
//
// A Provider hands out short-lived connections: each Acquire opens a fresh
// handle, retrying with a constant delay up to the configured number of
// attempts, and the caller closes it when done. WithConn and WithTx wrap
// that pattern so the handle is released exactly once on every exit path.
//
// Initialize bootstraps the target database and its tables. It is safe to
// run on every start.
package database
