// Package sample draws uniform random subsets of identifier lists.
package sample

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrInsufficientSamples is returned when a caller requests more elements
// than the source list holds. The count is never silently capped.
var ErrInsufficientSamples = errors.New("not enough identifiers to sample")

// Sampler draws without replacement from string lists. A zero seed derives
// one from the clock; any other seed makes every draw reproducible.
type Sampler struct {
	rng *rand.Rand
}

// New returns a Sampler seeded with seed, or with the current time when
// seed is zero.
func New(seed int64) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Pick returns n distinct elements of ids chosen uniformly at random,
// without replacement. The input slice is not modified.
func (s *Sampler) Pick(ids []string, n int) ([]string, error) {
	if n > len(ids) {
		return nil, fmt.Errorf("%w: requested %d of %d", ErrInsufficientSamples, n, len(ids))
	}
	if n <= 0 {
		return nil, nil
	}

	// Partial Fisher-Yates: only the first n positions need shuffling.
	pool := make([]string, len(ids))
	copy(pool, ids)
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n], nil
}
