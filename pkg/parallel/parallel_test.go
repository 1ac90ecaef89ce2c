package parallel_test

import (
	"errors"
	"testing"

	"github.com/gnames/pokedb/pkg/parallel"
	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		msg            string
		total, threads int
		out            []parallel.Partition
	}{
		{"even", 10, 2, []parallel.Partition{
			{WorkerID: 0, Offset: 0, MaxItems: 5},
			{WorkerID: 1, Offset: 5, MaxItems: 5},
		}},
		{"tail", 10, 3, []parallel.Partition{
			{WorkerID: 0, Offset: 0, MaxItems: 4},
			{WorkerID: 1, Offset: 4, MaxItems: 4},
			{WorkerID: 2, Offset: 8, MaxItems: 2},
		}},
		{"empty tail worker", 9, 4, []parallel.Partition{
			{WorkerID: 0, Offset: 0, MaxItems: 3},
			{WorkerID: 1, Offset: 3, MaxItems: 3},
			{WorkerID: 2, Offset: 6, MaxItems: 3},
		}},
		{"more threads than items", 2, 5, []parallel.Partition{
			{WorkerID: 0, Offset: 0, MaxItems: 1},
			{WorkerID: 1, Offset: 1, MaxItems: 1},
		}},
		{"one thread", 7, 1, []parallel.Partition{
			{WorkerID: 0, Offset: 0, MaxItems: 7},
		}},
		{"zero threads", 7, 0, []parallel.Partition{
			{WorkerID: 0, Offset: 0, MaxItems: 7},
		}},
		{"nothing", 0, 4, nil},
	}

	for _, v := range tests {
		assert.Equal(t, v.out, parallel.Split(v.total, v.threads), v.msg)
	}
}

func TestSplitCompleteness(t *testing.T) {
	for total := range 120 {
		for threads := 1; threads <= 16; threads++ {
			parts := parallel.Split(total, threads)
			assert.LessOrEqual(t, len(parts), threads)

			next, sum := 0, 0
			for _, p := range parts {
				assert.Equal(t, next, p.Offset, "gap or overlap")
				assert.Positive(t, p.MaxItems)
				next = p.Offset + p.MaxItems
				sum += p.MaxItems
			}
			assert.Equal(t, total, sum)
			assert.Equal(t, total, next)
		}
	}
}

func TestExitStatus(t *testing.T) {
	ok := parallel.ExitStatus{Partition: parallel.Partition{WorkerID: 1}}
	assert.True(t, ok.OK())
	assert.Equal(t, "worker 1: ok", ok.String())

	bad := parallel.ExitStatus{Code: 1, Err: errors.New("boom")}
	assert.False(t, bad.OK())
	assert.Contains(t, bad.String(), "boom")
}
