// Package storage defines the repository contracts for captures, insights,
// tags and checkpoints, along with shared errors and serialization helpers.
//
// The badger subpackage provides the BadgerDB implementation; everything
// above storage depends only on the interfaces defined here.
package storage
