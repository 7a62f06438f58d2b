package engine

import (
	"math/rand/v2"
	"sync"
)

// RandSource draws pivot indices. *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewSeededRand returns a PCG-backed source fixed by seed.
// Two sources built from the same seed yield the same index stream.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// lockedRand serializes access to a RandSource so one engine instance
// can be shared by goroutines.
type lockedRand struct {
	mu  sync.Mutex
	src RandSource
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// intInRange returns a uniform integer in [low, high].
func intInRange(src RandSource, low, high int) int {
	return low + src.IntN(high-low+1)
}

// Option configures an engine at construction.
type Option func(*options)

type options struct {
	rand  RandSource
	clock Clock
}

// WithSeed fixes the pivot stream of randomized engines.
// Deterministic engines ignore it.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rand = NewSeededRand(seed)
	}
}

// WithRand injects an explicit random source.
func WithRand(src RandSource) Option {
	return func(o *options) {
		o.rand = src
	}
}

// WithClock injects the clock used to time invocations.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

func buildOptions(opts []Option) options {
	o := options{clock: SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rand == nil {
		// Seeded once per engine from the runtime-seeded global generator.
		o.rand = NewSeededRand(rand.Uint64())
	}
	o.rand = &lockedRand{src: o.rand}
	return o
}
