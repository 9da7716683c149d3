package expressivo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(content), 0o644))
	return fn
}

func TestLoadEnv(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"vars.yaml", "PI: 3.142\nradius: 12\n"},
		{"vars.yml", "PI: 3.142\nradius: 12.0\n"},
		{"vars.json", `{"PI": 3.142, "radius": 12}`},
		{"vars.toml", "PI = 3.142\nradius = 12\n"},
	}
	for _, test := range tests {
		env, err := LoadEnv(writeFile(t, test.name, test.content), nil)
		require.NoError(t, err, test.name)
		assert.Equal(t, []string{"PI", "radius"}, env.Names(), test.name)

		node, err := Simplify(mustParse(t, "PI*(radius + radius)"), env)
		require.NoError(t, err)
		assert.Equal(t, "75.408", node.String(), test.name)
	}
}

func TestLoadEnvParent(t *testing.T) {
	parent := NewEnv(nil)
	require.NoError(t, parent.Set("x", 1))
	require.NoError(t, parent.Set("PI", 3))

	env, err := LoadEnv(writeFile(t, "vars.yaml", "PI: 3.142\n"), parent)
	require.NoError(t, err)

	v, ok := env.Lookup("PI")
	assert.True(t, ok)
	assert.Equal(t, 3.142, v)
	v, ok = env.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, []string{"PI", "x"}, env.Names())
}

func TestLoadEnvErrors(t *testing.T) {
	_, err := LoadEnv(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	_, err = LoadEnv(writeFile(t, "vars.ini", "PI=3"), nil)
	assert.ErrorContains(t, err, "unsupported")

	_, err = LoadEnv(writeFile(t, "vars.yaml", "PI: [3"), nil)
	assert.ErrorContains(t, err, "parsing environment")

	_, err = LoadEnv(writeFile(t, "vars.yaml", "PI: pie\n2x: 1\nr: -1\nok: 2\n"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidNumber)
	assert.ErrorIs(t, err, ErrInvalidVariable)
	assert.ErrorContains(t, err, "3 errors occurred")
}

func TestEnvFromMap(t *testing.T) {
	env, err := EnvFromMap(map[string]float64{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, env.Names())

	_, err = EnvFromMap(map[string]float64{"": 1, "neg": -2, "fine": 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidVariable)
	assert.ErrorIs(t, err, ErrInvalidNumber)

	var nilEnv *Env
	_, ok := nilEnv.Lookup("a")
	assert.False(t, ok)
	assert.Empty(t, nilEnv.Names())
}

func TestEnvShadow(t *testing.T) {
	outer := NewEnv(nil)
	require.NoError(t, outer.Set("x", 1))
	inner := NewEnv(outer)
	require.NoError(t, inner.Set("x", 2))

	got, err := Simplify(mustParse(t, "x + 1"), inner)
	require.NoError(t, err)
	assert.Equal(t, "3", got.String())

	got, err = Simplify(mustParse(t, "x + 1"), outer)
	require.NoError(t, err)
	assert.Equal(t, "2", got.String())
}
