package diffcrypt

// DefaultTrials gives 20 seeds x 20 messages = 400 samples per candidate.
const DefaultTrials = 20

// Verifier tests whether a pair collides independently of message and seed. It is
// not safe for concurrent use; give each goroutine its own Verifier and Rand.
type Verifier struct {
	oracle Oracle
	trials int
	rng    Rand
}

func NewVerifier(oracle Oracle, trials int, rng Rand) *Verifier {
	return &Verifier{
		oracle: oracle,
		trials: trials,
		rng:    rng,
	}
}

func (v *Verifier) Trials() int {
	return v.trials
}

// Verify draws Trials random seeds and, for each, Trials random messages, and
// checks that applying pair leaves the unmixed accumulator unchanged. It stops at
// the first mismatch.
func (v *Verifier) Verify(pair Pair) bool {
	for ii := 0; ii < v.trials; ii++ {
		seed := v.rng.Uint32()

		for jj := 0; jj < v.trials; jj++ {
			msg := RandomMessage(v.rng)
			modified := msg.Apply(pair)

			if v.oracle.HashUnmixed(msg[:], seed) != v.oracle.HashUnmixed(modified[:], seed) {
				return false
			}
		}
	}
	return true
}
