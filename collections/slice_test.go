package collections

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceAll(t *testing.T) {
	// Predicate: all values > 0
	predicate := func(val uint32) bool {
		return val > 0
	}

	// Test happy path where the slice is empty
	{
		require.True(t, All([]uint32{}, predicate))
	}

	// Test sad path where one value is the identity
	{
		slice := []uint32{1, 0, 3}
		require.False(t, All(slice, predicate))
	}

	// Test happy path where all values are > 0
	{
		slice := []uint32{1, 2, 3, 4, 5}
		require.True(t, All(slice, predicate))
	}
}

func TestTransformSlice(t *testing.T) {
	// Format all values as hex
	transform := func(val uint32) string {
		return fmt.Sprintf("0x%x", val)
	}

	slice := []uint32{1, 255, 0x6c8a8000}
	result := TransformSlice(slice, transform)
	require.Equal(t, []string{"0x1", "0xff", "0x6c8a8000"}, result)

	require.Nil(t, TransformSlice([]uint32{}, transform))
}

func TestSortStable(t *testing.T) {
	// Test sorting a slice of integers
	{
		slice := []int{1, 5, 4, 3, 2, 1}
		sorted := SortStable(slice, func(i, j int) bool {
			return i < j
		})
		// Make sure sorted is a new slice and slice is not modified
		require.Equal(t, []int{1, 1, 2, 3, 4, 5}, sorted)
		require.NotEqual(t, slice, sorted)
	}

	// Test sorting a struct by a field
	{
		type testStruct struct {
			Value int
			Key   string
		}
		slice := []testStruct{
			{Value: 1, Key: "a"},
			{Value: 5, Key: "b"},
			{Value: 4, Key: "c"},
			{Value: 3, Key: "d"},
			{Value: 1, Key: "e"},
		}
		sorted := SortStable(slice, func(i, j testStruct) bool {
			return i.Value < j.Value
		})
		// Make sure sorted is a new slice and slice is not modified
		require.Equal(t, []testStruct{
			{Value: 1, Key: "a"},
			{Value: 1, Key: "e"},
			{Value: 3, Key: "d"},
			{Value: 4, Key: "c"},
			{Value: 5, Key: "b"},
		}, sorted)
		require.NotEqual(t, slice, sorted)
	}
}
