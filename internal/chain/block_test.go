package chain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(Genesis, 1, 12.5, 3, 500, 1)
	b := New(Genesis, 1, 12.5, 3, 500, 1)
	require.Equal(t, a.Hash, b.Hash, "equal-content blocks must collide to the same identity")
}

func TestNewDiffersOnAnyField(t *testing.T) {
	base := New(Genesis, 1, 12.5, 3, 500, 1)
	variants := []Block{
		New(Genesis, 2, 12.5, 3, 500, 1),
		New(Genesis, 1, 13.5, 3, 500, 1),
		New(Genesis, 1, 12.5, 4, 500, 1),
		New(Genesis, 1, 12.5, 3, 501, 1),
		New(Genesis, 1, 12.5, 3, 500, 2),
	}
	for _, v := range variants {
		require.NotEqual(t, base.Hash, v.Hash)
	}
}

func TestGenesisIsStable(t *testing.T) {
	require.Equal(t, NewGenesis().Hash, NewGenesis().Hash)
	require.True(t, Genesis.IsGenesis())
}
