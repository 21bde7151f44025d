package id

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomGenerator_NewID(t *testing.T) {
	gen := NewRandomGenerator()

	first, err := gen.NewID()
	require.NoError(t, err)
	require.Len(t, first, 32)

	second, err := gen.NewID()
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
