package streams_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shivanshkc/repstat/pkg/streams"
)

// TestStream_Collect is the primary integration test for the Stream.
// It uses a table-driven approach to verify the core functionality across
// several key scenarios, including ranges, chaining maps, and empty streams.
func TestStream_Collect(t *testing.T) {
	// testCase defines the structure for our table-driven tests.
	type testCase struct {
		name          string
		setupStream   func() streams.Stream[string]
		expectedItems []string
	}

	// --- Test Cases ---
	testCases := []testCase{
		{
			name: "Simple Range",
			setupStream: func() streams.Stream[string] {
				return streams.Map(streams.Range(1, 4), func(i uint64) string {
					return fmt.Sprintf("item-%d", i)
				})
			},
			expectedItems: []string{"item-1", "item-2", "item-3"},
		},
		{
			name: "Chained Maps",
			setupStream: func() streams.Stream[string] {
				// A more complex pipeline: uint64 -> float64 -> string
				floats := streams.Map(streams.Range(10, 12), func(i uint64) float64 {
					return float64(i) * 1.5
				})
				return streams.Map(floats, func(f float64) string {
					return fmt.Sprintf("%.2f", f)
				})
			},
			expectedItems: []string{"15.00", "16.50"},
		},
		{
			name: "Empty Range",
			setupStream: func() streams.Stream[string] {
				return streams.Map(streams.Range(5, 5), func(i uint64) string { return "should-not-happen" })
			},
			expectedItems: nil,
		},
		{
			name: "Inverted Range",
			setupStream: func() streams.Stream[string] {
				return streams.Map(streams.Range(7, 3), func(i uint64) string { return "should-not-happen" })
			},
			expectedItems: nil,
		},
	}

	// --- Test Runner ---
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stream := tc.setupStream()
			assert.Equal(t, tc.expectedItems, stream.Collect())
		})
	}
}

// TestStream_Generate verifies that a generator is not called after it signals exhaustion.
func TestStream_Generate(t *testing.T) {
	calls := 0
	stream := streams.Generate(func() (int, bool) {
		calls++
		return calls, calls <= 2
	})

	assert.Equal(t, []int{1, 2}, stream.Collect())
	assert.Equal(t, 3, calls)

	// Further pulls must not reach the generator.
	item, ok := stream.Next()
	assert.False(t, ok)
	assert.Zero(t, item)
	assert.Equal(t, 3, calls)
}

// TestStream_AllEarlyBreak verifies that breaking out of a range loop stops pulling.
func TestStream_AllEarlyBreak(t *testing.T) {
	stream := streams.Range(0, 100)

	var seen []uint64
	for i := range stream.All {
		if i == 3 {
			break
		}
		seen = append(seen, i)
	}
	assert.Equal(t, []uint64{0, 1, 2}, seen)

	// The stream resumes where the loop left off.
	item, ok := stream.Next()
	assert.True(t, ok)
	assert.Equal(t, uint64(4), item)
}
