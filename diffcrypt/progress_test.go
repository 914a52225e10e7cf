package diffcrypt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	var out bytes.Buffer
	bar := NewProgressBar(&out)

	bar.Progress(1, 4, 2)
	require.Equal(t, "\rProgress: [##########------------------------------] 25.00% (found 2)", out.String())

	out.Reset()
	bar.Progress(8, 4, 3)
	require.Equal(t, "\rProgress: [########################################] 100.00% (found 3)", out.String())

	out.Reset()
	bar.Progress(1, 0, 0)
	require.Empty(t, out.String())
}

func TestMultiReporter(t *testing.T) {
	var calls []uint64
	record := ProgressFunc(func(scanned uint64, total uint64, found int) {
		calls = append(calls, scanned)
	})

	MultiReporter{record, record}.Progress(5, 10, 1)
	require.Equal(t, []uint64{5, 5}, calls)
}
