// Package diffcrypt finds seed-independent collisions in the short-input path of
// XXH32 by differential cryptanalysis.
//
// An 8-byte message is split into two little-endian lanes, A and B. Adding a
// differential d1 to lane A changes the accumulator after the first lane round.
// Reversing the second lane round from the original accumulator yields the value
// lane B must take to land on the same accumulator again, and therefore the second
// differential d2. For most d1 that d2 only works for the message and seed it was
// derived from; the few that survive random sampling across seeds and messages
// are structural collisions, usable to flood a hash table keyed by XXH32.
//
// # Components
//
//   - Solver derives d2 for a chosen d1 (one reversed lane round).
//   - Verifier samples random seeds and messages to certify a (d1, d2) pair.
//   - Searcher scans d1 over a range, in parallel if asked, and collects certified
//     pairs in increasing d1 order.
//   - Confirm checks certified pairs against the fully finalized digest.
//
// # Basic Usage
//
//	oracle := diffcrypt.XXH32Oracle{}
//	searcher, err := diffcrypt.NewSearcher(oracle, diffcrypt.DefaultSearchConfig(), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := searcher.Search(ctx, baseline, 10)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report := diffcrypt.Confirm(oracle, baseline, result.Pairs, 0)
//
// Verification is statistical. Verifier.Trials controls how many seeds and, per
// seed, how many messages are sampled; passing all Trials² samples does not prove
// a pair universal.
package diffcrypt
