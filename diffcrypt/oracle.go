package diffcrypt

import (
	"github.com/pkg/errors"

	"github.com/hashdos/diffcrypt/xxh32"
)

// RoundParams describes the lane round the Solver reverses:
//
//	acc' = rotl(acc + lane*C1, Rotation) * C2
type RoundParams struct {
	C1       uint32
	C2       uint32
	InvC1    uint32
	InvC2    uint32
	Rotation int
}

// NewRoundParams computes the inverses of both multipliers.
func NewRoundParams(c1 uint32, c2 uint32, rotation int) (RoundParams, error) {
	if rotation <= 0 || rotation >= 32 {
		return RoundParams{}, errors.Wrapf(ErrInvalidRoundParams, "NewRoundParams: rotation %d", rotation)
	}
	invC1, err := ModInverse32(c1)
	if err != nil {
		return RoundParams{}, errors.Wrapf(err, "NewRoundParams: C1: ")
	}
	invC2, err := ModInverse32(c2)
	if err != nil {
		return RoundParams{}, errors.Wrapf(err, "NewRoundParams: C2: ")
	}
	return RoundParams{
		C1:       c1,
		C2:       c2,
		InvC1:    invC1,
		InvC2:    invC2,
		Rotation: rotation,
	}, nil
}

// Oracle is the hash under attack.
type Oracle interface {
	// Hash is the full digest, including output finalization.
	Hash(buf []byte, seed uint32) uint32
	// HashUnmixed is the accumulator right before finalization.
	HashUnmixed(buf []byte, seed uint32) uint32
	// HashSingleRound sets up the accumulator for a message of the declared length
	// and mixes only the first 4-byte chunk of buf.
	HashSingleRound(buf []byte, length int, seed uint32) uint32
	RoundParams() RoundParams
}

var xxh32Params = RoundParams{
	C1:       xxh32.Prime32_3,
	C2:       xxh32.Prime32_4,
	InvC1:    xxh32.InvPrime32_3,
	InvC2:    xxh32.InvPrime32_4,
	Rotation: xxh32.LaneRotation,
}

// XXH32Oracle exposes package xxh32 as an Oracle.
type XXH32Oracle struct{}

func (XXH32Oracle) Hash(buf []byte, seed uint32) uint32 {
	return xxh32.Sum32(buf, seed)
}

func (XXH32Oracle) HashUnmixed(buf []byte, seed uint32) uint32 {
	return xxh32.SumUnmixed(buf, seed)
}

func (XXH32Oracle) HashSingleRound(buf []byte, length int, seed uint32) uint32 {
	return xxh32.SingleRound(buf, length, seed)
}

func (XXH32Oracle) RoundParams() RoundParams {
	return xxh32Params
}
