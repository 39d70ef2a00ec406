package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetic-alphabet/pictograph/internal/classify"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

func pictograph() core.Pictograph {
	return core.Pictograph{
		Blue:      core.Motion{MotionType: core.Pro, PropRotDir: core.CW, StartLoc: core.North, EndLoc: core.East, StartOri: core.In, EndOri: core.In},
		Red:       core.Motion{MotionType: core.Anti, PropRotDir: core.CCW, StartLoc: core.South, EndLoc: core.West, StartOri: core.In, EndOri: core.In},
		Direction: core.Same,
	}
}

func TestKey_IgnoresLetterAndBeat(t *testing.T) {
	ctx := classify.DefaultContext()
	a := pictograph()
	b := pictograph()
	b.Letter = "A"
	b.BeatNumber = 7

	ka, err := Key(a, ctx)
	require.NoError(t, err)
	kb, err := Key(b, ctx)
	require.NoError(t, err)
	assert.Equal(t, ka, kb)
}

func TestKey_EmptyDirectionIsSame(t *testing.T) {
	ctx := classify.DefaultContext()
	a := pictograph()
	b := pictograph()
	b.Direction = ""

	ka, _ := Key(a, ctx)
	kb, _ := Key(b, ctx)
	assert.Equal(t, ka, kb)
}

func TestKey_DependsOnContextAndMotion(t *testing.T) {
	ctx := classify.DefaultContext()
	base, _ := Key(pictograph(), ctx)

	swapped := ctx
	swapped.SwapPropRotDir = true
	k, _ := Key(pictograph(), swapped)
	assert.NotEqual(t, base, k)

	p := pictograph()
	p.Blue = p.Blue.WithPropRotDir(core.CCW)
	k, _ = Key(p, ctx)
	assert.NotEqual(t, base, k)
}

func TestResultCache_GetSet(t *testing.T) {
	c := NewResultCache()
	key, err := Key(pictograph(), classify.DefaultContext())
	require.NoError(t, err)

	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Set(key, classify.Success("A", 1, classify.StrategyFallback, pictograph()))

	got, ok := c.Get(key)
	require.True(t, ok)
	letter, _ := got.Letter()
	assert.Equal(t, core.Letter("A"), letter)
	assert.Equal(t, 1, c.Len())

	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestResultCache_Reset(t *testing.T) {
	c := NewResultCache()
	c.Set("k", classify.Failure(classify.ReasonNoMatches, classify.StrategyFallback, pictograph()))
	c.Get("k")

	c.Reset()

	assert.Zero(t, c.Len())
	hits, misses := c.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestResultCache_Concurrent(t *testing.T) {
	c := NewResultCache()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Set("k", classify.Success("B", 1, "x", pictograph()))
		}()
		go func() {
			defer wg.Done()
			c.Get("k")
		}()
	}
	wg.Wait()

	hits, misses := c.Stats()
	assert.Equal(t, 50, hits+misses)
	assert.Equal(t, 1, c.Len())
}

func TestSafeCounter(t *testing.T) {
	var c SafeCounter
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, c.Value())

	c.Set(3)
	assert.Equal(t, 3, c.Value())
}
