package diffcrypt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pair is a differential pair: D1 is added to chunk A, D2 to chunk B.
type Pair struct {
	D1 uint32
	D2 uint32
}

func (pair Pair) String() string {
	return fmt.Sprintf("(0x%x, 0x%x)", pair.D1, pair.D2)
}

// ParsePair parses "D1:D2" or "D1,D2". Each side may be decimal, 0x-prefixed hex or
// any other prefix strconv understands.
func ParsePair(str string) (Pair, error) {
	str = strings.Trim(strings.TrimSpace(str), "()")
	parts := strings.FieldsFunc(str, func(r rune) bool {
		return r == ':' || r == ','
	})
	if len(parts) != 2 {
		return Pair{}, errors.Wrapf(ErrInvalidPair, "ParsePair: %q: want D1:D2", str)
	}
	d1, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 0, 32)
	if err != nil {
		return Pair{}, errors.Wrapf(ErrInvalidPair, "ParsePair: %q: D1: %v", str, err)
	}
	d2, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 0, 32)
	if err != nil {
		return Pair{}, errors.Wrapf(ErrInvalidPair, "ParsePair: %q: D2: %v", str, err)
	}
	return Pair{D1: uint32(d1), D2: uint32(d2)}, nil
}

// PairSet is the confirmed-pair accumulator of a search. It only grows, holds at
// most max pairs, and keeps D1 strictly increasing and non-zero.
type PairSet struct {
	pairs []Pair
	max   uint64
}

func NewPairSet(max uint64) *PairSet {
	return &PairSet{
		pairs: make([]Pair, 0, min(max, DefaultMaxPairs)),
		max:   max,
	}
}

// Add appends pair and reports whether it was accepted. Pairs with D1 == 0, pairs
// that do not increase D1, and pairs beyond the bound are refused.
func (ps *PairSet) Add(pair Pair) bool {
	if pair.D1 == 0 || ps.Full() {
		return false
	}
	if len(ps.pairs) > 0 && pair.D1 <= ps.pairs[len(ps.pairs)-1].D1 {
		return false
	}
	ps.pairs = append(ps.pairs, pair)
	return true
}

func (ps *PairSet) Len() int {
	return len(ps.pairs)
}

func (ps *PairSet) Full() bool {
	return uint64(len(ps.pairs)) >= ps.max
}

// Last returns the most recently added pair.
func (ps *PairSet) Last() (Pair, bool) {
	if len(ps.pairs) == 0 {
		return Pair{}, false
	}
	return ps.pairs[len(ps.pairs)-1], true
}

// Pairs returns a copy of the accumulated pairs.
func (ps *PairSet) Pairs() []Pair {
	result := make([]Pair, len(ps.pairs))
	copy(result, ps.pairs)
	return result
}
