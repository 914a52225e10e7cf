package diffcrypt

import (
	"context"
	"math"
	"math/rand/v2"
	"sync/atomic"

	"github.com/deso-protocol/go-deadlock"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hashdos/diffcrypt/collections"
)

const (
	DefaultMaxPairs         = 100
	DefaultProgressInterval = 10000
	DefaultChunkSize        = 1 << 16

	// MaxPairsLimit is the largest useful bound: there are only 2^32-1 candidates.
	MaxPairsLimit = math.MaxUint32

	cancelCheckMask = 1<<12 - 1
)

// StopReason says why a search ended.
type StopReason string

const (
	StopMaxPairs  StopReason = "max-pairs"
	StopExhausted StopReason = "exhausted"
	StopBudget    StopReason = "budget"
	StopCancelled StopReason = "cancelled"
)

type SearchConfig struct {
	// Seed is the hash seed the second differentials are derived under.
	Seed   uint32
	Trials int

	// Start and End bound the d1 candidates, both inclusive. A Start of 0 is
	// raised to 1 since d1 = 0 is the identity.
	Start uint32
	End   uint32

	// MaxIterations caps the number of candidates scanned. 0 means no cap.
	MaxIterations uint64

	Threads          int
	ChunkSize        uint64
	ProgressInterval uint64

	// RngSeed seeds verification. Chunk i samples from PCG(RngSeed, i), so results
	// do not depend on Threads.
	RngSeed uint64
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Trials:           DefaultTrials,
		Start:            1,
		End:              math.MaxUint32,
		Threads:          1,
		ChunkSize:        DefaultChunkSize,
		ProgressInterval: DefaultProgressInterval,
	}
}

func (config SearchConfig) normalized() (SearchConfig, error) {
	if config.Trials <= 0 {
		return config, errors.Wrapf(ErrInvalidTrials, "SearchConfig: trials %d", config.Trials)
	}
	if config.Start == 0 {
		config.Start = 1
	}
	if config.End < config.Start {
		return config, errors.Wrapf(ErrInvalidRange, "SearchConfig: start %#x is past end %#x", config.Start, config.End)
	}
	if config.Threads <= 0 {
		config.Threads = 1
	}
	if config.ChunkSize == 0 {
		config.ChunkSize = DefaultChunkSize
	}
	if config.ProgressInterval == 0 {
		config.ProgressInterval = DefaultProgressInterval
	}
	return config, nil
}

// SearchResult holds the confirmed pairs of a search, in strictly increasing D1.
type SearchResult struct {
	Baseline        Message
	BaselineUnmixed uint32
	Pairs           []Pair
	// Candidates is how many d1 values, counted from Start, were fully examined
	// before the search stopped.
	Candidates uint64
	StopReason StopReason
}

// Exhausted is true when the search ran out of candidates before reaching its bound.
func (result *SearchResult) Exhausted() bool {
	return result.StopReason == StopExhausted
}

// Searcher enumerates first differentials, solves for the second and keeps the
// pairs the Verifier accepts.
type Searcher struct {
	oracle   Oracle
	solver   *Solver
	config   SearchConfig
	reporter ProgressReporter
}

// NewSearcher validates config. A nil reporter discards progress.
func NewSearcher(oracle Oracle, config SearchConfig, reporter ProgressReporter) (*Searcher, error) {
	config, err := config.normalized()
	if err != nil {
		return nil, errors.Wrapf(err, "NewSearcher: ")
	}
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Searcher{
		oracle:   oracle,
		solver:   NewSolver(oracle, config.Seed),
		config:   config,
		reporter: reporter,
	}, nil
}

func (s *Searcher) Config() SearchConfig {
	return s.config
}

// Search scans the candidate range and returns at most maxPairs confirmed pairs.
// It stops when the bound is reached, the range or iteration budget runs out, or
// ctx is cancelled; only the first case and the exhausted case are complete scans.
// Cancellation is not an error: the pairs of the fully scanned prefix are returned.
func (s *Searcher) Search(ctx context.Context, baseline Message, maxPairs uint32) (*SearchResult, error) {
	if maxPairs == 0 {
		return nil, errors.Wrapf(ErrInvalidMaxPairs, "Searcher.Search: ")
	}

	run := s.newSearchRun(baseline, uint64(maxPairs))
	glog.V(1).Infof("Searcher.Search: Scanning %d candidates from %#x in %d chunks with %d threads",
		run.limit, run.first, run.numChunks, s.config.Threads)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, groupCtx := errgroup.WithContext(runCtx)
	for worker := 0; worker < s.config.Threads; worker++ {
		group.Go(func() error {
			for {
				idx := run.nextChunk.Add(1) - 1
				if idx >= run.numChunks {
					return nil
				}
				pairs, complete := run.scanChunk(groupCtx, idx)
				if !complete {
					glog.V(1).Infof("Searcher.Search: Worker %d abandoned chunk %d", worker, idx)
					return nil
				}
				if run.merge(idx, pairs) {
					cancel()
					return nil
				}
			}
		})
	}
	if err := group.Wait(); err != nil {
		return nil, errors.Wrapf(err, "Searcher.Search: ")
	}

	result := &SearchResult{
		Baseline:        baseline,
		BaselineUnmixed: run.baselineUnmixed,
		Pairs:           run.confirmed.Pairs(),
		Candidates:      run.mergedCandidates,
	}
	switch {
	case run.confirmed.Full():
		result.StopReason = StopMaxPairs
	case run.mergedChunks < run.numChunks:
		result.StopReason = StopCancelled
	case run.limit < run.total:
		result.StopReason = StopBudget
	default:
		result.StopReason = StopExhausted
	}
	glog.V(1).Infof("Searcher.Search: Stopped (%s) after %d candidates with %d pairs",
		result.StopReason, result.Candidates, len(result.Pairs))
	return result, nil
}

// searchRun is the state of one Search call. Chunks are handed out in increasing
// order; finished chunks wait in finished until every lower chunk is merged.
type searchRun struct {
	*Searcher

	baseline        Message
	baselineUnmixed uint32
	maxPairs        uint64

	first     uint64
	total     uint64
	limit     uint64
	numChunks uint64

	nextChunk atomic.Uint64
	scanned   atomic.Uint64
	found     atomic.Int64

	finished *collections.ConcurrentMap[uint64, []Pair]

	mergeMtx         deadlock.Mutex
	mergedChunks     uint64
	mergedCandidates uint64
	confirmed        *PairSet
}

func (s *Searcher) newSearchRun(baseline Message, maxPairs uint64) *searchRun {
	first := uint64(s.config.Start)
	total := uint64(s.config.End) - first + 1
	limit := total
	if s.config.MaxIterations > 0 && s.config.MaxIterations < total {
		limit = s.config.MaxIterations
	}

	return &searchRun{
		Searcher:        s,
		baseline:        baseline,
		baselineUnmixed: s.oracle.HashUnmixed(baseline[:], s.config.Seed),
		maxPairs:        maxPairs,
		first:           first,
		total:           total,
		limit:           limit,
		numChunks:       (limit + s.config.ChunkSize - 1) / s.config.ChunkSize,
		finished:        collections.NewConcurrentMap[uint64, []Pair](),
		confirmed:       NewPairSet(maxPairs),
	}
}

func (run *searchRun) chunkBounds(idx uint64) (lo uint64, hi uint64) {
	lo = run.first + idx*run.config.ChunkSize
	hi = min(lo+run.config.ChunkSize, run.first+run.limit)
	return lo, hi
}

// scanChunk returns the confirmed pairs of one chunk, at most maxPairs of them.
// The second result is false if ctx was cancelled before the chunk was done.
func (run *searchRun) scanChunk(ctx context.Context, idx uint64) ([]Pair, bool) {
	lo, hi := run.chunkBounds(idx)
	verifier := NewVerifier(run.oracle, run.config.Trials, rand.New(rand.NewPCG(run.config.RngSeed, idx)))

	var found []Pair
	var pending uint64
	for candidate := lo; candidate < hi; candidate++ {
		if (candidate-lo)&cancelCheckMask == 0 && ctx.Err() != nil {
			return nil, false
		}

		d1 := uint32(candidate)
		pair := Pair{D1: d1, D2: run.solver.SecondDifferential(run.baseline, d1, run.baselineUnmixed)}
		if verifier.Verify(pair) {
			found = append(found, pair)
			run.found.Add(1)
		}

		pending++
		if pending == run.config.ProgressInterval {
			run.reportProgress(pending)
			pending = 0
		}
		if uint64(len(found)) >= run.maxPairs {
			break
		}
	}
	run.reportProgress(pending)
	return found, true
}

// reportProgress adds scanned candidates and notifies the reporter each time the
// running total crosses a multiple of ProgressInterval.
func (run *searchRun) reportProgress(count uint64) {
	if count == 0 {
		return
	}
	after := run.scanned.Add(count)
	before := after - count
	interval := run.config.ProgressInterval
	if after/interval != before/interval {
		run.reporter.Progress(after, run.limit, int(run.found.Load()))
	}
}

// merge records the pairs of chunk idx and folds every contiguous finished chunk
// into the confirmed set. It returns true once the set is full.
func (run *searchRun) merge(idx uint64, pairs []Pair) bool {
	run.finished.Set(idx, pairs)

	run.mergeMtx.Lock()
	defer run.mergeMtx.Unlock()

	if run.confirmed.Full() {
		return true
	}
	for {
		chunkPairs, ok := run.finished.Pop(run.mergedChunks)
		if !ok {
			glog.V(2).Infof("searchRun.merge: Waiting on chunk %d with %d chunks parked",
				run.mergedChunks, run.finished.Count())
			return false
		}
		_, hi := run.chunkBounds(run.mergedChunks)
		run.mergedChunks++

		for _, pair := range chunkPairs {
			run.confirmed.Add(pair)
			if run.confirmed.Full() {
				last, _ := run.confirmed.Last()
				run.mergedCandidates = uint64(last.D1) - run.first + 1
				glog.V(2).Infof("searchRun.merge: Bound of %d pairs reached at d1 %#x", run.maxPairs, last.D1)
				return true
			}
		}
		run.mergedCandidates = hi - run.first
	}
}
