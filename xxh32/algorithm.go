// Package xxh32 implements the 32-bit xxHash algorithm with its internal stages
// exposed, so the short-input mixing path can be analysed one round at a time.
//
// Sum32 is the regular XXH32 digest. SumUnmixed stops before the final avalanche
// and SingleRound runs the accumulator setup plus one 4-byte lane round.
package xxh32

import (
	"encoding/binary"
	"math/bits"
)

const (
	Prime32_1 uint32 = 2654435761
	Prime32_2 uint32 = 2246822519
	Prime32_3 uint32 = 3266489917
	Prime32_4 uint32 = 668265263
	Prime32_5 uint32 = 374761393

	// Multiplicative inverses mod 2^32 of the lane-round multipliers.
	InvPrime32_3 uint32 = 2828982549
	InvPrime32_4 uint32 = 2701016015

	// LaneRotation is the left rotation applied after each 4-byte lane is mixed in.
	LaneRotation = 17

	stripeSize = 16
	laneSize   = 4
)

// Sum32 returns the XXH32 digest of input under seed.
func Sum32(input []byte, seed uint32) uint32 {
	return avalanche(SumUnmixed(input, seed))
}

// SumUnmixed returns the XXH32 accumulator of input right before the final
// avalanche step.
func SumUnmixed(input []byte, seed uint32) uint32 {
	n := len(input)
	var h uint32
	if n >= stripeSize {
		v1 := seed + Prime32_1 + Prime32_2
		v2 := seed + Prime32_2
		v3 := seed
		v4 := seed - Prime32_1

		for len(input) >= stripeSize {
			v1 = stripeRound(v1, binary.LittleEndian.Uint32(input[0:4]))
			v2 = stripeRound(v2, binary.LittleEndian.Uint32(input[4:8]))
			v3 = stripeRound(v3, binary.LittleEndian.Uint32(input[8:12]))
			v4 = stripeRound(v4, binary.LittleEndian.Uint32(input[12:16]))
			input = input[stripeSize:]
		}

		h = bits.RotateLeft32(v1, 1) + bits.RotateLeft32(v2, 7) +
			bits.RotateLeft32(v3, 12) + bits.RotateLeft32(v4, 18)
	} else {
		h = seed + Prime32_5
	}
	h += uint32(n)

	for len(input) >= laneSize {
		h = LaneRound(h, binary.LittleEndian.Uint32(input))
		input = input[laneSize:]
	}
	for _, b := range input {
		h += uint32(b) * Prime32_5
		h = bits.RotateLeft32(h, 11) * Prime32_1
	}

	return h
}

// SingleRound initialises a short-input accumulator for a message of the declared
// length and mixes only the first 4-byte lane of input into it. The declared length
// only feeds the accumulator setup; input must hold at least 4 bytes.
func SingleRound(input []byte, length int, seed uint32) uint32 {
	h := seed + Prime32_5 + uint32(length)
	return LaneRound(h, binary.LittleEndian.Uint32(input[:laneSize]))
}

// LaneRound mixes one 4-byte lane into the short-input accumulator:
// add lane*Prime32_3, rotate left by LaneRotation, multiply by Prime32_4.
func LaneRound(acc, lane uint32) uint32 {
	acc += lane * Prime32_3
	return bits.RotateLeft32(acc, LaneRotation) * Prime32_4
}

func stripeRound(acc, lane uint32) uint32 {
	acc += lane * Prime32_2
	return bits.RotateLeft32(acc, 13) * Prime32_1
}

func avalanche(h uint32) uint32 {
	h ^= h >> 15
	h *= Prime32_2
	h ^= h >> 13
	h *= Prime32_3
	h ^= h >> 16
	return h
}
