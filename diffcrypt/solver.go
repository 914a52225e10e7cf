package diffcrypt

// Solver derives the second differential of a pair by reversing the lane round
// that mixes chunk B.
type Solver struct {
	oracle Oracle
	params RoundParams
	seed   uint32
}

// NewSolver returns a Solver that evaluates the first lane round under seed.
func NewSolver(oracle Oracle, seed uint32) *Solver {
	return &Solver{
		oracle: oracle,
		params: oracle.RoundParams(),
		seed:   seed,
	}
}

// SecondDifferential returns the d2 that brings msg+(d1, d2) back to the unmixed
// accumulator baselineUnmixed of msg.
//
// With M the accumulator after mixing chunk A + d1 and H the target:
//
//	H = rotl(M + b'*C1, R) * C2  =>  b' = (rotr(H * C2^-1, R) - M) * C1^-1
//
// and d2 = b' - b. The result is exact for msg and the Solver's seed.
func (s *Solver) SecondDifferential(msg Message, d1 uint32, baselineUnmixed uint32) uint32 {
	shifted := NewMessage(msg.ChunkA()+d1, msg.ChunkB())
	middle := s.oracle.HashSingleRound(shifted[:], MessageSize, s.seed)

	undoMultiply := baselineUnmixed * s.params.InvC2
	undoRotate := RotateRight32(undoMultiply, s.params.Rotation)
	chunkB := (undoRotate - middle) * s.params.InvC1

	return chunkB - msg.ChunkB()
}

// DeriveSecondDifferential is the one-shot form of Solver.SecondDifferential.
func DeriveSecondDifferential(oracle Oracle, msg Message, d1 uint32, seed uint32, baselineUnmixed uint32) uint32 {
	return NewSolver(oracle, seed).SecondDifferential(msg, d1, baselineUnmixed)
}
