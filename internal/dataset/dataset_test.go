package dataset

import (
	"testing"

	"shieldex/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalSizeAndStability(t *testing.T) {
	first := Global()
	second := Global()

	require.Len(t, first, config.DefaultDataset().Size)
	// Same underlying records: the pool is built exactly once per process.
	assert.Same(t, first[0], second[0])
}

func TestNewIsDeterministicPerSeed(t *testing.T) {
	a := New(42, 100)
	b := New(42, 100)

	require.Len(t, a, 100)
	require.Len(t, b, 100)
	for i := range a {
		assert.Equal(t, a[i].TxID, b[i].TxID)
		assert.Equal(t, a[i].Height, b[i].Height)
	}
}

func TestDifferentSeedsDifferentPools(t *testing.T) {
	a := New(1, 50)
	b := New(2, 50)

	assert.NotEqual(t, a[0].TxID, b[0].TxID)
}
