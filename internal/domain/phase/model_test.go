package phase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlternate(t *testing.T) {
	require.Equal(t, Standing, Sitting.Alternate())
	require.Equal(t, Sitting, Standing.Alternate())
	require.Equal(t, Sitting, Inactive.Alternate())
	require.Equal(t, Sitting, Paused.Alternate())
}

func TestParse(t *testing.T) {
	p, err := Parse(" Standing ")
	require.NoError(t, err)
	require.Equal(t, Standing, p)

	_, err = Parse("paused")
	require.ErrorIs(t, err, ErrInvalidPhase)
	_, err = Parse("")
	require.ErrorIs(t, err, ErrInvalidPhase)
}

func TestIsWorking(t *testing.T) {
	require.True(t, Sitting.IsWorking())
	require.True(t, Standing.IsWorking())
	require.False(t, Paused.IsWorking())
	require.False(t, Inactive.IsWorking())
}
