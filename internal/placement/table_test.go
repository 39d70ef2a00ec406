package placement

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// writeDefaults writes an empty default table for every grid mode and motion
// type, then overrides the given ones.
func writeDefaults(t *testing.T, root string, overrides map[string]string) {
	t.Helper()
	for _, g := range core.GridModes {
		for _, mt := range core.MotionTypes {
			path := DefaultPath(root, g, mt)
			content, ok := overrides[string(g)+"/"+string(mt)]
			if !ok {
				content = "{}"
			}
			writeFile(t, path, content)
		}
	}
}

func TestLoadTables_Default(t *testing.T) {
	root := t.TempDir()
	writeDefaults(t, root, map[string]string{
		"diamond/pro": `{"pro": {"0": [10, 20], "1": [1, 1]}, "pro_to_layer2": {"1": [5, 6]}}`,
	})

	tables, err := LoadTables(root, Options{Strict: true})
	require.NoError(t, err)

	adj, ok := tables.Default(core.Diamond, core.Pro, "pro_to_layer1", "1")
	require.True(t, ok, "falls back to the bare motion type key")
	assert.Equal(t, Adjustment{DX: 1, DY: 1}, adj)

	adj, ok = tables.Default(core.Diamond, core.Pro, "pro_to_layer2", "1")
	require.True(t, ok)
	assert.Equal(t, Adjustment{DX: 5, DY: 6}, adj)

	_, ok = tables.Default(core.Diamond, core.Pro, "pro_to_layer1", "2.5")
	assert.False(t, ok)
	_, ok = tables.Default(core.Box, core.Pro, "pro_to_layer1", "1")
	assert.False(t, ok)

	s := tables.Summary()
	assert.Equal(t, 1, s.DefaultTables)
	assert.Equal(t, 3, s.DefaultEntries)
}

func TestLoadTables_Special(t *testing.T) {
	root := t.TempDir()
	writeDefaults(t, root, nil)
	writeFile(t, filepath.Join(SpecialDir(root, core.Diamond), "from_layer1", "S_placements.json"),
		`{"(1, 0)": {"blue_leading": [7, -7]}}`)
	writeFile(t, filepath.Join(SpecialDir(root, core.Diamond), "from_layer1", "notes.txt"), "ignored")

	tables, err := LoadTables(root, Options{Strict: true})
	require.NoError(t, err)

	adj, ok := tables.Special(core.Diamond, "from_layer1", "S", "(1, 0)", "blue_leading")
	require.True(t, ok)
	assert.Equal(t, Adjustment{DX: 7, DY: -7}, adj)

	_, ok = tables.Special(core.Diamond, "from_layer2", "S", "(1, 0)", "blue_leading")
	assert.False(t, ok)
	assert.Equal(t, 1, tables.Summary().SpecialTables)
}

func TestLoadTables_MissingFiles(t *testing.T) {
	root := t.TempDir()

	t.Run("lenient load yields empty tables", func(t *testing.T) {
		tables, err := LoadTables(root, Options{})
		require.NoError(t, err)
		_, ok := tables.Default(core.Diamond, core.Pro, "pro", "1")
		assert.False(t, ok)
		assert.Zero(t, tables.Summary().DefaultTables)
	})

	t.Run("strict load names every missing table", func(t *testing.T) {
		_, err := LoadTables(root, Options{Strict: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingTable)
		assert.Contains(t, err.Error(), "default_box_static_placements.json")
		assert.Contains(t, err.Error(), "default_diamond_pro_placements.json")
	})
}

func TestLoadTables_Malformed(t *testing.T) {
	root := t.TempDir()
	writeDefaults(t, root, map[string]string{
		"box/dash": `{"dash": {"0": "not a pair"}}`,
	})

	_, err := LoadTables(root, Options{Strict: true})
	assert.ErrorIs(t, err, ErrMalformedTable)

	tables, err := LoadTables(root, Options{})
	require.NoError(t, err)
	_, ok := tables.Default(core.Box, core.Dash, "dash", "0")
	assert.False(t, ok)
}

func TestLoadTables_BadPairs(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"short pair", `{"pro": {"1": [5]}}`},
		{"long pair", `{"pro": {"1": [1, 2, 3]}}`},
		{"empty pair", `{"pro": {"1": []}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeDefaults(t, root, map[string]string{"diamond/pro": tt.content})

			_, err := LoadTables(root, Options{Strict: true})
			assert.ErrorIs(t, err, ErrMalformedTable)

			tables, err := LoadTables(root, Options{})
			require.NoError(t, err)
			_, ok := tables.Default(core.Diamond, core.Pro, "pro", "1")
			assert.False(t, ok)
		})
	}
}

func TestLoadTables_UnreadableSpecialDir(t *testing.T) {
	root := t.TempDir()
	writeDefaults(t, root, map[string]string{
		"diamond/pro": `{"pro": {"1": [1, 1]}}`,
	})
	// a regular file where the special directory should be
	writeFile(t, SpecialDir(root, core.Diamond), "not a directory")

	tables, err := LoadTables(root, Options{})
	require.NoError(t, err)
	require.NotNil(t, tables)
	assert.Zero(t, tables.Summary().SpecialTables)

	adj, ok := tables.Default(core.Diamond, core.Pro, "pro", "1")
	require.True(t, ok, "default tables still load")
	assert.Equal(t, Adjustment{DX: 1, DY: 1}, adj)

	_, err = LoadTables(root, Options{Strict: true})
	assert.Error(t, err)
}

func TestTables_NilIsEmpty(t *testing.T) {
	var tables *Tables
	_, ok := tables.Default(core.Diamond, core.Pro, "pro", "1")
	assert.False(t, ok)
	_, ok = tables.Special(core.Diamond, "from_layer1", "A", "(0, 0)", "blue")
	assert.False(t, ok)
	assert.Equal(t, Summary{}, tables.Summary())
}
