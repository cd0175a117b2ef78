package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetSetClear(t *testing.T) {
	var c Cache[string, int]

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestCacheGetOrLoadDoesNotCacheErrors(t *testing.T) {
	var c Cache[string, int]
	boom := errors.New("boom")

	_, err := c.GetOrLoad("k", func() (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	v, err := c.GetOrLoad("k", func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = c.GetOrLoad("k", func() (int, error) { return 0, boom })
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestCacheGetOrLoadLoadsOnceUnderContention(t *testing.T) {
	var c Cache[int, string]
	var calls atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrLoad(1, func() (string, error) {
				calls.Add(1)
				return "one", nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "one", v)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}
