package diffcrypt

// Failure is a pair whose modified message did not reproduce the baseline digest.
type Failure struct {
	Pair Pair
	Hash uint32
}

// ConfirmReport is the outcome of checking pairs against the full digest.
type ConfirmReport struct {
	Seed     uint32
	Expected uint32
	Passed   int
	Failures []Failure
}

func (report *ConfirmReport) Total() int {
	return report.Passed + len(report.Failures)
}

func (report *ConfirmReport) OK() bool {
	return len(report.Failures) == 0
}

// Confirm applies every pair to baseline and compares the finalized digest of the
// result with the baseline's under seed. Mismatches are collected, never fatal.
func Confirm(oracle Oracle, baseline Message, pairs []Pair, seed uint32) *ConfirmReport {
	report := &ConfirmReport{
		Seed:     seed,
		Expected: oracle.Hash(baseline[:], seed),
	}

	for _, pair := range pairs {
		modified := baseline.Apply(pair)
		hash := oracle.Hash(modified[:], seed)
		if hash == report.Expected {
			report.Passed++
			continue
		}
		report.Failures = append(report.Failures, Failure{Pair: pair, Hash: hash})
	}
	return report
}
