package generator

import "math/rand/v2"

// Selector picks the index of the next library shape from n candidates.
type Selector interface {
	Next(n int) int
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(n int) int

func (f SelectorFunc) Next(n int) int {
	return f(n)
}

// NewRand returns a PCG-backed source; equal seeds give equal sequences.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uniform picks every shape with equal probability.
type Uniform struct {
	rng *rand.Rand
}

func NewUniform(rng *rand.Rand) *Uniform {
	return &Uniform{rng: rng}
}

func (u *Uniform) Next(n int) int {
	return u.rng.IntN(n)
}

// Bag deals every index once, in shuffled order, before refilling.
type Bag struct {
	rng     *rand.Rand
	size    int
	pending []int
}

func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng}
}

func (b *Bag) Next(n int) int {
	if len(b.pending) == 0 || b.size != n {
		b.size = n
		b.pending = b.rng.Perm(n)
	}
	next := b.pending[0]
	b.pending = b.pending[1:]
	return next
}
