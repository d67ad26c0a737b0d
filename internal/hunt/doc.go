// Package hunt contains the scavenger-hunt domain entities: hunts, clues,
// player progress, and reward configuration, along with the hunt status
// machine. Entities are plain data with small invariant-preserving methods;
// persistence and operation-level validation live elsewhere.
package hunt
