// Package seed resolves user-facing seeds, where -1 means "pick one", into
// concrete 64-bit values without touching any shared generator.
package seed

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"github.com/kbukum/promptkit/errors"
)

// Seed is either the random sentinel (-1) or a fixed value in [0, 2^64-1].
// The zero value is the fixed seed 0.
type Seed struct {
	random bool
	value  uint64
}

// Random returns the -1 sentinel.
func Random() Seed { return Seed{random: true} }

// Fixed returns a seed that resolves to v.
func Fixed(v uint64) Seed { return Seed{value: v} }

// Parse reads "-1" or an unsigned decimal.
func Parse(s string) (Seed, error) {
	s = strings.TrimSpace(s)
	if s == "-1" {
		return Random(), nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Seed{}, errors.InvalidInput("seed", "must be -1 or an integer between 0 and 18446744073709551615").WithCause(err)
	}
	return Fixed(v), nil
}

// IsRandom reports whether s is the -1 sentinel.
func (s Seed) IsRandom() bool { return s.random }

// Value returns the fixed value, or false for the sentinel.
func (s Seed) Value() (uint64, bool) {
	if s.random {
		return 0, false
	}
	return s.value, true
}

func (s Seed) String() string {
	if s.random {
		return "-1"
	}
	return strconv.FormatUint(s.value, 10)
}

// MarshalJSON writes the seed as a JSON number.
func (s Seed) MarshalJSON() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (s *Seed) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		data = []byte(str)
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalText lets flags and config values carry a seed.
func (s *Seed) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Policy draws values for random seeds from its own source. It never
// touches the math/rand global generators.
type Policy struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewPolicy creates a policy drawing from src. A nil src gets a PCG source
// seeded from the runtime's entropy.
func NewPolicy(src rand.Source) *Policy {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Policy{src: rand.New(src)}
}

// Resolve returns the concrete seed s stands for, to be sent to the
// backend and reported back. Fixed seeds are returned unmodified; the
// sentinel draws uniformly over the full uint64 range.
func (p *Policy) Resolve(s Seed) uint64 {
	v, ok := s.Value()
	if !ok {
		p.mu.Lock()
		v = p.src.Uint64()
		p.mu.Unlock()
	}
	return v
}
