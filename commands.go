package expressivo

import (
	"github.com/pkg/errors"
)

// DifferentiateString parses expression and returns the canonical form of
// its derivative with respect to variable.
func DifferentiateString(expression, variable string) (string, error) {
	node, err := Parse(expression)
	if err != nil {
		return "", err
	}
	if !validVariable(variable) {
		return "", errors.Wrapf(ErrInvalidVariable, "%q", variable)
	}
	return Differentiate(node, variable).String(), nil
}

// SimplifyString parses expression and returns the canonical form of its
// simplification under env.
func SimplifyString(expression string, env map[string]float64) (string, error) {
	node, err := Parse(expression)
	if err != nil {
		return "", err
	}
	e, err := EnvFromMap(env)
	if err != nil {
		return "", errors.Wrap(err, "environment")
	}
	ret, err := Simplify(node, e)
	if err != nil {
		return "", err
	}
	return ret.String(), nil
}
