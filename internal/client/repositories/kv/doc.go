// Package kv provides the persistent key/value stores that hold the ViviGo
// session: a local SQLite file (default), a shared Redis instance and an
// in-memory map.
//
// All implementations follow the same contract (see Repository): a missing
// key reads as (nil, nil) and multi-key writes are all-or-nothing, which is
// what keeps the token and the user profile paired.
package kv
