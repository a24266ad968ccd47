package services

import "fmt"

// Textbook 32-bit linear congruential generator constants
const (
	DefaultSeed       uint32 = 42
	DefaultMultiplier uint32 = 1664525
	DefaultIncrement  uint32 = 1013904223
	DefaultModulus    uint64 = 1 << 32
)

// RandomStream is an unbounded sequence of uniform values in [0, 1).
// A stream has exactly one consumer and is not safe for concurrent use.
type RandomStream interface {
	Next() float64
}

// LCG is a linear congruential generator: s = (a*s + c) mod m, yielding s/m
type LCG struct {
	state      uint64
	multiplier uint64
	increment  uint64
	modulus    uint64
}

// Verify interface compliance
var _ RandomStream = (*LCG)(nil)

// NewLCG creates a generator seeded with seed.
// The modulus must be a non-zero power of two no larger than 2^32.
func NewLCG(seed, multiplier, increment uint32, modulus uint64) *LCG {
	if modulus == 0 || modulus&(modulus-1) != 0 || modulus > DefaultModulus {
		panic(fmt.Sprintf("lcg: modulus must be a power of two <= 2^32, got %d", modulus))
	}
	return &LCG{
		state:      uint64(seed) % modulus,
		multiplier: uint64(multiplier),
		increment:  uint64(increment),
		modulus:    modulus,
	}
}

// NewDefaultLCG creates a generator with the textbook constants
func NewDefaultLCG(seed uint32) *LCG {
	return NewLCG(seed, DefaultMultiplier, DefaultIncrement, DefaultModulus)
}

// Next advances the generator and returns the new state scaled into [0, 1)
func (g *LCG) Next() float64 {
	// a and s are both below 2^32 so a*s + c fits in uint64
	g.state = (g.multiplier*g.state + g.increment) & (g.modulus - 1)
	return float64(g.state) / float64(g.modulus)
}
