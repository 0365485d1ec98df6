package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	s, err := ByName("")
	require.NoError(t, err)
	require.IsType(t, &Derangement{}, s)

	s, err = ByName(" Matching ")
	require.NoError(t, err)
	require.IsType(t, &Matching{}, s)

	_, err = ByName("round-robin")
	require.ErrorContains(t, err, "round-robin")
}
