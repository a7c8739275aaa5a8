package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkIDs(t *testing.T) {
	ids := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("id-%d", i)
		}
		return out
	}

	t.Run("empty input produces no chunks", func(t *testing.T) {
		assert.Nil(t, chunkIDs(nil, maxBatchSize))
		assert.Nil(t, chunkIDs([]string{}, maxBatchSize))
	})

	t.Run("input below the batch limit stays in one chunk", func(t *testing.T) {
		chunks := chunkIDs(ids(3), maxBatchSize)
		assert.Len(t, chunks, 1)
		assert.Len(t, chunks[0], 3)
	})

	t.Run("input above the batch limit is split with order preserved", func(t *testing.T) {
		chunks := chunkIDs(ids(1201), maxBatchSize)
		assert.Len(t, chunks, 3)
		assert.Len(t, chunks[0], 500)
		assert.Len(t, chunks[1], 500)
		assert.Len(t, chunks[2], 201)
		assert.Equal(t, "id-0", chunks[0][0])
		assert.Equal(t, "id-1200", chunks[2][200])
	})

	t.Run("input exactly at the batch limit is one full chunk", func(t *testing.T) {
		chunks := chunkIDs(ids(500), maxBatchSize)
		assert.Len(t, chunks, 1)
		assert.Len(t, chunks[0], 500)
	})
}
