// Package storage defines the persistence contract for hunt records: exact
// overwrite puts, gets with a sentinel ErrNotFound, duplicate-suppressed
// insertion-ordered enumeration indices, and an atomic hunt-ID counter. Any
// key-value or relational backend with atomic read-modify-write per key
// satisfies it; see the bbolt, sqlite, and memory subpackages.
package storage
