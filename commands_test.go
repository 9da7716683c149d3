package expressivo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifferentiateString(t *testing.T) {
	tests := []struct {
		input    string
		variable string
		want     string
	}{
		{"x + y + x", "x", "1 + 0 + 1"},
		{"x + y + x", "foo", "0 + 0 + 0"},
		{"x*y + x", "x", "x*0 + 1*y + 1"},
		{"x*(y + x)", "foo", "x*(0 + 0) + 0*(y + x)"},
		{"x*(y + x)", "x", "x*(0 + 1) + 1*(y + x)"},
	}
	for _, test := range tests {
		got, err := DifferentiateString(test.input, test.variable)
		require.NoError(t, err)
		assert.Equal(t, test.want, got, "d/d%s %s", test.variable, test.input)

		want := Differentiate(mustParse(t, test.input), test.variable)
		assert.True(t, Equal(want, mustParse(t, got)))
	}

	_, err := DifferentiateString("x +", "x")
	assert.ErrorIs(t, err, ErrInvalidExpression)
	_, err = DifferentiateString("x", "")
	assert.ErrorIs(t, err, ErrInvalidVariable)
}

func TestSimplifyString(t *testing.T) {
	env := map[string]float64{"PI": 3.142, "radius": 12.0}
	tests := []struct {
		input string
		want  string
	}{
		{"m*x + c", "m*x + c"},
		{"PI*diameter", "3.142*diameter"},
		{"PI*(radius+radius)", "75.408"},
		{"PI * (radius + radius)", "75.408"},
	}
	for _, test := range tests {
		got, err := SimplifyString(test.input, env)
		require.NoError(t, err)
		assert.Equal(t, test.want, got, test.input)
	}

	got, err := SimplifyString("m*x + c", nil)
	require.NoError(t, err)
	assert.Equal(t, "m*x + c", got)

	_, err = SimplifyString("(x", env)
	assert.ErrorIs(t, err, ErrInvalidExpression)
	_, err = SimplifyString("x", map[string]float64{"x": -1})
	assert.ErrorIs(t, err, ErrInvalidNumber)
}
