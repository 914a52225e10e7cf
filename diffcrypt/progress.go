package diffcrypt

import (
	"fmt"
	"io"
	"strings"

	"github.com/deso-protocol/go-deadlock"
)

// ProgressReporter receives periodic search progress. Calls may come from several
// workers at once.
type ProgressReporter interface {
	Progress(scanned uint64, total uint64, found int)
}

// ProgressFunc adapts a function to ProgressReporter.
type ProgressFunc func(scanned uint64, total uint64, found int)

func (fn ProgressFunc) Progress(scanned uint64, total uint64, found int) {
	fn(scanned, total, found)
}

type nopReporter struct{}

func (nopReporter) Progress(uint64, uint64, int) {}

// MultiReporter fans progress out to several reporters.
type MultiReporter []ProgressReporter

func (reporters MultiReporter) Progress(scanned uint64, total uint64, found int) {
	for _, reporter := range reporters {
		reporter.Progress(scanned, total, found)
	}
}

const defaultBarLength = 40

// ProgressBar redraws a single terminal line:
//
//	Progress: [########--------------------------------] 20.00% (found 3)
type ProgressBar struct {
	mtx       deadlock.Mutex
	out       io.Writer
	barLength int
}

func NewProgressBar(out io.Writer) *ProgressBar {
	return &ProgressBar{
		out:       out,
		barLength: defaultBarLength,
	}
}

func (bar *ProgressBar) Progress(scanned uint64, total uint64, found int) {
	if total == 0 {
		return
	}
	progress := float64(scanned) / float64(total)
	if progress > 1 {
		progress = 1
	}
	pos := int(progress * float64(bar.barLength))

	bar.mtx.Lock()
	defer bar.mtx.Unlock()

	fmt.Fprintf(bar.out, "\rProgress: [%s%s] %.2f%% (found %d)",
		strings.Repeat("#", pos), strings.Repeat("-", bar.barLength-pos), progress*100, found)
}
