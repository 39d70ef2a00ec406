package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kinetic-alphabet/pictograph/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func motion(t core.MotionType, r core.RotDir, start, end core.Location) core.Motion {
	return core.Motion{MotionType: t, PropRotDir: r, StartLoc: start, EndLoc: end, StartOri: core.In, EndOri: core.In}
}

func examplePictograph() core.Pictograph {
	return core.Pictograph{
		Blue:      motion(core.Pro, core.CW, core.North, core.East),
		Red:       motion(core.Anti, core.CCW, core.South, core.West),
		Direction: core.Same,
	}
}

func TestNew_OrdersLettersCanonically(t *testing.T) {
	ex := examplePictograph()
	ds := New(map[core.Letter][]core.Pictograph{
		"B": {ex},
		"W": {ex},
		"A": {ex, ex},
		"C": {},
	})

	assert.Equal(t, []core.Letter{"A", "B", "W"}, ds.Letters())
	assert.Equal(t, 4, ds.Len())
	assert.False(t, ds.Empty())
	assert.Equal(t, core.Letter("A"), ds.Examples("A")[0].Letter)
}

func TestDataset_NilAndEmpty(t *testing.T) {
	var ds *Dataset
	assert.True(t, ds.Empty())
	assert.Equal(t, 0, ds.Len())
	assert.Nil(t, ds.Letters())
	assert.ErrorIs(t, ds.Validate(), ErrEmptyDataset)

	assert.True(t, New(nil).Empty())
}

func TestDataset_ExamplesAreCopies(t *testing.T) {
	ds := New(map[core.Letter][]core.Pictograph{"A": {examplePictograph()}})

	got := ds.Examples("A")
	got[0].Blue.MotionType = core.Static

	assert.Equal(t, core.Pro, ds.Examples("A")[0].Blue.MotionType)

	letters := ds.Letters()
	letters[0] = "Z"
	assert.Equal(t, core.Letter("A"), ds.Letters()[0])
}

func TestDataset_EachOrderAndStop(t *testing.T) {
	first := examplePictograph()
	second := examplePictograph()
	second.BeatNumber = 2

	b := NewBuilder()
	b.Add("B", first)
	b.Add("A", first, second)
	ds := b.Build()

	var visited []string
	ds.Each(func(l core.Letter, ex core.Pictograph) bool {
		visited = append(visited, string(l)+":"+string(rune('0'+ex.BeatNumber)))
		return true
	})
	assert.Equal(t, []string{"A:0", "A:2", "B:0"}, visited)

	count := 0
	ds.Each(func(core.Letter, core.Pictograph) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestDataset_Validate(t *testing.T) {
	ok := New(map[core.Letter][]core.Pictograph{"A": {examplePictograph()}})
	assert.NoError(t, ok.Validate())

	unknown := New(map[core.Letter][]core.Pictograph{"ZZ": {examplePictograph()}})
	assert.ErrorIs(t, unknown.Validate(), ErrUnknownLetter)

	bad := examplePictograph()
	bad.Red.MotionType = "spin"
	invalid := New(map[core.Letter][]core.Pictograph{"A": {bad}})
	assert.ErrorIs(t, invalid.Validate(), ErrInvalidExample)
}

func TestStaticProvider(t *testing.T) {
	ds := New(map[core.Letter][]core.Pictograph{"A": {examplePictograph()}})
	p := NewStaticProvider(ds, nil)

	assert.Same(t, ds, p.PictographDataset())
	assert.True(t, p.ValidateDataset())
	assert.False(t, NewStaticProvider(New(nil), nil).ValidateDataset())
}

const sampleCSV = `letter,start_pos,end_pos,direction,blue_motion_type,blue_prop_rot_dir,blue_start_loc,blue_end_loc,red_motion_type,red_prop_rot_dir,red_start_loc,red_end_loc,blue_turns
A,alpha1,alpha3,same,pro,cw,n,e,anti,ccw,s,w,1
A,alpha3,alpha5,same,pro,cw,e,s,anti,ccw,w,n,0
B,alpha1,alpha3,opp,anti,ccw,n,e,pro,cw,s,w,
`

func TestLoadCSV(t *testing.T) {
	ds, err := LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []core.Letter{"A", "B"}, ds.Letters())
	a := ds.Examples("A")
	require.Len(t, a, 2)
	assert.Equal(t, core.Pro, a[0].Blue.MotionType)
	assert.Equal(t, core.East, a[0].Blue.EndLoc)
	assert.Equal(t, "1", a[0].Blue.Turns.String())
	assert.Equal(t, core.In, a[0].Red.StartOri)
	assert.Equal(t, core.East, a[1].Blue.StartLoc)

	b := ds.Examples("B")
	require.Len(t, b, 1)
	assert.Equal(t, core.Opp, b[0].Direction)
	assert.Equal(t, "0", b[0].Blue.Turns.String())
}

func TestLoadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty input", "", ErrEmptyDataset},
		{"header only", "letter,blue_motion_type,blue_prop_rot_dir,blue_start_loc,blue_end_loc,red_motion_type,red_prop_rot_dir,red_start_loc,red_end_loc\n", ErrEmptyDataset},
		{"missing column", "letter,blue_motion_type\nA,pro\n", ErrMissingColumn},
		{"bad motion", "letter,blue_motion_type,blue_prop_rot_dir,blue_start_loc,blue_end_loc,red_motion_type,red_prop_rot_dir,red_start_loc,red_end_loc\nA,spin,cw,n,e,pro,cw,s,w\n", core.ErrUnknownValue},
		{"empty letter", "letter,blue_motion_type,blue_prop_rot_dir,blue_start_loc,blue_end_loc,red_motion_type,red_prop_rot_dir,red_start_loc,red_end_loc\n,pro,cw,n,e,pro,cw,s,w\n", ErrInvalidExample},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadCSVFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	ds, err := LoadCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	_, err = LoadCSVFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error opening dataset file")
}
