package storage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndoPushPopOrder(t *testing.T) {
	openTestDB(t)

	require.NoError(t, PushUndo("/out/a.mp4"))
	require.NoError(t, PushUndo("/out/b.mp4"))
	require.NoError(t, PushUndo("/out/c.mp4"))

	for _, want := range []string{"/out/c.mp4", "/out/b.mp4", "/out/a.mp4"} {
		got, err := PopUndo()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Empty stack is not an error.
	got, err := PopUndo()
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestUndoCapDropsOldest(t *testing.T) {
	openTestDB(t)

	for i := 0; i < UndoCap+2; i++ {
		require.NoError(t, PushUndo(fmt.Sprintf("/out/clip_%02d.mp4", i)))
	}

	depth, err := UndoDepth()
	require.NoError(t, err)
	assert.Equal(t, int64(UndoCap), depth)

	// Newest first; the two oldest entries were silently forgotten.
	for i := UndoCap + 1; i >= 2; i-- {
		got, popErr := PopUndo()
		require.NoError(t, popErr)
		assert.Equal(t, fmt.Sprintf("/out/clip_%02d.mp4", i), got)
	}

	got, err := PopUndo()
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestUndoWithoutDB(t *testing.T) {
	originalDB := DB
	DB = nil
	t.Cleanup(func() { DB = originalDB })

	assert.Error(t, PushUndo("/out/a.mp4"))
	_, err := PopUndo()
	assert.Error(t, err)
}
