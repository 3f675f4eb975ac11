package aggregator

import (
	stderrors "errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blobkit/shuttle/errors"
)

func TestCollector_PartsSortedRegardlessOfArrivalOrder(t *testing.T) {
	const chunkCount = 8

	c := New(chunkCount)

	order := rand.Perm(chunkCount)
	for _, i := range order {
		c.Add(Outcome{Index: int32(i), ETag: string(rune('a' + i)), Attempts: 1})
	}

	require.True(t, c.Complete())
	parts := c.Parts()
	require.Len(t, parts, chunkCount)
	for i, p := range parts {
		assert.Equal(t, int32(i+1), p.PartNumber, "part numbers must ascend from 1")
		assert.Equal(t, string(rune('a'+i)), p.ETag)
	}
}

func TestCollector_AssembleRestoresOffsetOrder(t *testing.T) {
	chunks := [][]byte{
		[]byte("the quick "),
		[]byte("brown fox "),
		[]byte("jumps"),
	}

	c := New(len(chunks))
	// Deliberately reversed arrival.
	for i := len(chunks) - 1; i >= 0; i-- {
		c.Add(Outcome{Index: int32(i), Bytes: chunks[i], Attempts: 1})
	}

	require.True(t, c.Complete())
	assert.Equal(t, "the quick brown fox jumps", string(c.Assemble()))
}

func TestCollector_FirstFailureWins(t *testing.T) {
	first := stderrors.New("first failure")
	second := stderrors.New("second failure")

	c := New(4)
	c.Add(Outcome{Index: 0, Attempts: 1})
	c.Add(Outcome{Index: 2, Attempts: 5, Err: first})
	c.Add(Outcome{Index: 3, Attempts: 5, Err: second})
	c.Add(Outcome{Index: 1, Attempts: 1})

	assert.True(t, c.Failed())
	assert.False(t, c.Complete())

	var chunkErr *errors.ChunkError
	require.ErrorAs(t, c.Err(), &chunkErr)
	assert.Equal(t, int32(2), chunkErr.Index)
	assert.Equal(t, 5, chunkErr.Attempts)
	assert.ErrorIs(t, chunkErr, first)
}

func TestCollector_SuccessesAfterFailureAreKeptButTransferFails(t *testing.T) {
	c := New(2)
	c.Add(Outcome{Index: 0, Attempts: 3, Err: stderrors.New("exhausted")})
	c.Add(Outcome{Index: 1, ETag: "late", Attempts: 1})

	assert.True(t, c.Failed())
	assert.False(t, c.Complete(), "a transfer with any failed chunk is never complete")
}

func TestCollector_IgnoresOutOfRangeAndDuplicates(t *testing.T) {
	c := New(2)
	c.Add(Outcome{Index: -1})
	c.Add(Outcome{Index: 2})
	assert.False(t, c.Complete())

	c.Add(Outcome{Index: 0, ETag: "first"})
	c.Add(Outcome{Index: 0, ETag: "duplicate"})
	c.Add(Outcome{Index: 1, ETag: "second"})

	require.True(t, c.Complete())
	assert.Equal(t, "first", c.Parts()[0].ETag)
}

func TestCollector_IncompleteIsNotComplete(t *testing.T) {
	c := New(3)
	c.Add(Outcome{Index: 0})
	c.Add(Outcome{Index: 2})
	assert.False(t, c.Complete())
	assert.False(t, c.Failed())
	assert.NoError(t, c.Err())
}
