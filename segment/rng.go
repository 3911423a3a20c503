package segment

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === RunKey ===

// RunKey uniquely identifies a reproducible pipeline run.
// Two runs with the same RunKey and identical input and configuration
// MUST produce identical cluster assignments.
type RunKey int64

// NewRunKey creates a RunKey from a seed value.
func NewRunKey(seed int64) RunKey {
	return RunKey(seed)
}

// === Subsystem Names ===

// SubsystemKMeans returns the subsystem name for K-Means fits at k clusters.
// Model selection and the final fit share this name, which keeps them on
// the same random stream.
func SubsystemKMeans(k int) string {
	return fmt.Sprintf("kmeans_%d", k)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG streams per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Unlike a cached generator, every ForSubsystem call returns a fresh
// *rand.Rand positioned at the start of the subsystem's stream, so a
// consumer that repeats a computation replays the same draws.
//
// Thread-safety: the returned generators are NOT thread-safe.
type PartitionedRNG struct {
	key RunKey
}

// NewPartitionedRNG creates a PartitionedRNG from a RunKey.
func NewPartitionedRNG(key RunKey) *PartitionedRNG {
	return &PartitionedRNG{key: key}
}

// ForSubsystem returns a newly seeded RNG for the named subsystem.
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	return rand.New(rand.NewSource(p.SeedFor(name)))
}

// SeedFor returns the derived seed for the named subsystem.
func (p *PartitionedRNG) SeedFor(name string) int64 {
	return int64(p.key) ^ fnv1a64(name)
}

// Key returns the RunKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() RunKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
