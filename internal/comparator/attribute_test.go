package comparator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetic-alphabet/pictograph/internal/classify"
	"github.com/kinetic-alphabet/pictograph/internal/dataset"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

func m(t core.MotionType, r core.RotDir, start, end core.Location) core.Motion {
	return core.Motion{MotionType: t, PropRotDir: r, StartLoc: start, EndLoc: end, StartOri: core.In, EndOri: core.Out}
}

func example() core.Pictograph {
	return core.Pictograph{
		Blue:      m(core.Pro, core.CW, core.North, core.East),
		Red:       m(core.Anti, core.CCW, core.South, core.West),
		Direction: core.Same,
	}
}

func TestAttribute_Compare(t *testing.T) {
	cmp := Attribute{}
	ctx := classify.DefaultContext()
	ctx.ToleranceThreshold = 0

	tests := []struct {
		name  string
		query func() core.Pictograph
		want  float64
	}{
		{"identical", example, 1},
		{"one rotation differs", func() core.Pictograph {
			p := example()
			p.Blue = p.Blue.WithPropRotDir(core.CCW)
			return p
		}, 7.0 / 8},
		{"red channel differs entirely", func() core.Pictograph {
			p := example()
			p.Red = m(core.Pro, core.CW, core.East, core.North)
			return p
		}, 0.5},
		{"opposite direction inverts rotations", func() core.Pictograph {
			p := example()
			p.Direction = core.Opp
			p.Blue = p.Blue.WithPropRotDir(core.CCW)
			p.Red = p.Red.WithPropRotDir(core.CW)
			return p
		}, 1},
		{"float compared through prefloat", func() core.Pictograph {
			p := example()
			p.Blue = m(core.Float, core.NoRot, core.North, core.East).WithPrefloat(core.Pro, core.CW)
			return p
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cmp.Compare(tt.query(), example(), ctx), 1e-9)
		})
	}
}

func TestAttribute_CompareContextFlags(t *testing.T) {
	cmp := Attribute{}

	t.Run("strict orientation counts orientations", func(t *testing.T) {
		q := example()
		q.Blue = q.Blue.WithOrientations(core.Clock, core.Counter)

		ctx := classify.DefaultContext()
		ctx.ToleranceThreshold = 0
		assert.Equal(t, 1.0, cmp.Compare(q, example(), ctx))

		ctx.StrictOrientationMatching = true
		assert.InDelta(t, 10.0/12, cmp.Compare(q, example(), ctx), 1e-9)
	})

	t.Run("tolerance floors low scores", func(t *testing.T) {
		q := example()
		q.Blue = q.Blue.WithPropRotDir(core.CCW)

		ctx := classify.DefaultContext()
		assert.Zero(t, cmp.Compare(q, example(), ctx))
	})

	t.Run("prefloat ignored when disabled", func(t *testing.T) {
		q := example()
		q.Blue = m(core.Float, core.NoRot, core.North, core.East).WithPrefloat(core.Pro, core.CW)

		ctx := classify.DefaultContext()
		ctx.ToleranceThreshold = 0
		ctx.PrefloatMatchingEnabled = false
		assert.InDelta(t, 6.0/8, cmp.Compare(q, example(), ctx), 1e-9)
	})
}

func TestAttribute_Sync(t *testing.T) {
	p := example()
	pt, pr := core.Pro, core.CW
	p.Red.PrefloatMotionType = &pt
	p.Red.PrefloatPropRotDir = &pr
	p.Direction = ""

	synced := Attribute{}.Sync(p)

	require.NoError(t, synced.Validate())
	assert.Equal(t, core.Same, synced.Direction)
	assert.NotNil(t, p.Red.PrefloatMotionType, "input must not be mutated")
}

func TestAttribute_ReverseRotation(t *testing.T) {
	assert.Equal(t, core.CCW, Attribute{}.ReverseRotation(core.CW))
	assert.Equal(t, core.NoRot, Attribute{}.ReverseRotation(core.NoRot))
}

func TestEngine_FallbackWithAttributeComparator(t *testing.T) {
	engine, err := classify.NewEngine(nil)
	require.NoError(t, err)
	ds := dataset.New(map[core.Letter][]core.Pictograph{"A": {example()}})

	res := engine.Determine(example(), ds, Attribute{}, classify.DefaultContext())

	letter, ok := res.Letter()
	require.True(t, ok)
	assert.Equal(t, core.Letter("A"), letter)
	assert.Equal(t, 1.0, res.Confidence())
	assert.Equal(t, classify.StrategyFallback, res.Strategy())
}
