package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageDoc struct {
	id string
}

func docID(d pageDoc) string { return d.id }

func TestClampPage(t *testing.T) {
	docs := func(n int) []pageDoc {
		out := make([]pageDoc, n)
		for i := range out {
			out[i] = pageDoc{id: fmt.Sprintf("doc-%02d", i)}
		}
		return out
	}

	t.Run("over-fetched window is trimmed and reports continuation", func(t *testing.T) {
		// Adapter fetched limit+1 documents.
		page := clampPage(docs(4), 3, docID)

		assert.Len(t, page.Items, 3)
		assert.True(t, page.HasMore)
		assert.Equal(t, "doc-02", page.NextCursor)
	})

	t.Run("exact page has no continuation", func(t *testing.T) {
		page := clampPage(docs(3), 3, docID)

		assert.Len(t, page.Items, 3)
		assert.False(t, page.HasMore)
		assert.Empty(t, page.NextCursor)
	})

	t.Run("short page has no continuation", func(t *testing.T) {
		page := clampPage(docs(1), 3, docID)

		assert.Len(t, page.Items, 1)
		assert.False(t, page.HasMore)
		assert.Empty(t, page.NextCursor)
	})

	t.Run("zero limit passes the full result through unpaginated", func(t *testing.T) {
		page := clampPage(docs(7), 0, docID)

		assert.Len(t, page.Items, 7)
		assert.False(t, page.HasMore)
		assert.Empty(t, page.NextCursor)
	})
}

// TestClampPage_WalkIsStable simulates a full cursor walk over a fixed
// ordered data set: concatenating successive pages must reproduce the
// data set exactly, with no duplicates or omissions.
func TestClampPage_WalkIsStable(t *testing.T) {
	const total, limit = 10, 3

	all := make([]pageDoc, total)
	index := make(map[string]int, total)
	for i := range all {
		all[i] = pageDoc{id: fmt.Sprintf("doc-%02d", i)}
		index[all[i].id] = i
	}

	// Serve windows the way the adapter queries Firestore: limit+1
	// documents strictly after the cursor position.
	fetch := func(cursor string) []pageDoc {
		start := 0
		if cursor != "" {
			start = index[cursor] + 1
		}
		end := start + limit + 1
		if end > total {
			end = total
		}
		return all[start:end]
	}

	var walked []pageDoc
	cursor := ""
	for {
		page := clampPage(fetch(cursor), limit, docID)
		walked = append(walked, page.Items...)
		if !page.HasMore {
			break
		}
		require.NotEmpty(t, page.NextCursor)
		cursor = page.NextCursor
	}

	assert.Equal(t, all, walked)
}
