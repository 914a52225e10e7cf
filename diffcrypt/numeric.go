package diffcrypt

import (
	"math/bits"

	"github.com/pkg/errors"
)

// RotateRight32 undoes bits.RotateLeft32(x, k).
func RotateRight32(x uint32, k int) uint32 {
	return bits.RotateLeft32(x, -k)
}

// ModInverse32 returns y such that x*y == 1 mod 2^32. Only odd x are invertible.
func ModInverse32(x uint32) (uint32, error) {
	if x&1 == 0 {
		return 0, errors.Wrapf(ErrInvalidRoundParams, "ModInverse32: %#x is even and has no inverse mod 2^32", x)
	}

	// x*x == 1 mod 8 for every odd x, so x is already correct to 3 bits. Each Newton
	// step doubles the number of correct bits: 3, 6, 12, 24, 48.
	inv := x
	for ii := 0; ii < 4; ii++ {
		inv *= 2 - x*inv
	}
	return inv, nil
}
