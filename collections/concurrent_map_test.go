package collections

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConcurrentMap(t *testing.T) {
	m := NewConcurrentMap[string, int]()
	control := make(map[string]int)

	// test add
	for ii := 0; ii < 100; ii++ {
		key := fmt.Sprintf("%v", ii)
		m.Set(key, ii)
		control[key] = ii
	}
	require.Equal(t, len(control), m.Count())

	// test overwrite
	m.Set("0", -1)
	require.Equal(t, len(control), m.Count())
	control["0"] = -1

	// test pop
	for ii := 0; ii < 50; ii++ {
		key := fmt.Sprintf("%v", ii)
		val, ok := m.Pop(key)
		require.True(t, ok)
		require.Equal(t, control[key], val)
		delete(control, key)
	}

	// test pop not exists
	_, ok := m.Pop("not exists")
	require.False(t, ok)

	// test size
	if m.Count() != len(control) {
		t.Errorf("Expected %d, got %d", len(control), m.Count())
	}

	for key, val := range control {
		if mVal, ok := m.Pop(key); !ok || mVal != val {
			t.Errorf("Expected %d, got %d", val, mVal)
		}
	}
	require.Equal(t, 0, m.Count())
}

func TestConcurrentMapParallelWriters(t *testing.T) {
	m := NewConcurrentMap[uint64, []uint32]()

	var wg sync.WaitGroup
	for ii := uint64(0); ii < 16; ii++ {
		wg.Add(1)
		go func(idx uint64) {
			defer wg.Done()
			m.Set(idx, []uint32{uint32(idx)})
		}(ii)
	}
	wg.Wait()

	require.Equal(t, 16, m.Count())
	for ii := uint64(0); ii < 16; ii++ {
		val, ok := m.Pop(ii)
		require.True(t, ok)
		require.Equal(t, []uint32{uint32(ii)}, val)
	}
	require.Equal(t, 0, m.Count())
}
