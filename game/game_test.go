package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuessOutcomeForEverySecret(t *testing.T) {
	for s := 1; s <= 20; s++ {
		for g := 1; g <= 20; g++ {
			game := New(s)
			got, err := game.Guess(g)
			require.NoError(t, err)

			switch {
			case g > s:
				assert.Equal(t, TooHigh, got, "secret=%d guess=%d", s, g)
				assert.Equal(t, Guessing, game.State())
			case g < s:
				assert.Equal(t, TooLow, got, "secret=%d guess=%d", s, g)
				assert.Equal(t, Guessing, game.State())
			default:
				assert.Equal(t, Correct, got)
				assert.Equal(t, Won, game.State())
			}
		}
	}
}

func TestGuessAfterWinFails(t *testing.T) {
	g := New(4)
	_, err := g.Guess(4)
	require.NoError(t, err)

	_, err = g.Guess(4)
	require.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 1, g.Attempts())
}

func TestAttemptsCountsEveryGuess(t *testing.T) {
	g := New(10)
	for _, n := range []int{5, 15, 10} {
		_, err := g.Guess(n)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, g.Attempts())
	assert.Equal(t, 10, g.Secret())
}

func TestGuessOutsideRangeStillCompares(t *testing.T) {
	g := New(1)
	got, err := g.Guess(-3)
	require.NoError(t, err)
	assert.Equal(t, TooLow, got)

	got, err = g.Guess(99)
	require.NoError(t, err)
	assert.Equal(t, TooHigh, got)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "guessing", Guessing.String())
	assert.Equal(t, "won", Won.String())
	assert.Equal(t, "too_high", TooHigh.String())
	assert.Equal(t, "too_low", TooLow.String())
	assert.Equal(t, "correct", Correct.String())
}
