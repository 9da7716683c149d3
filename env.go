package expressivo

import (
	"math"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Env binds variable names to values for Simplify. Lookups fall back to
// the parent environment, so a scope can shadow bindings without copying.
type Env struct {
	vars map[string]float64
	env  *Env
}

func NewEnv(env *Env) *Env {
	return &Env{
		vars: make(map[string]float64),
		env:  env,
	}
}

// EnvFromMap builds an environment from m, reporting every invalid entry.
func EnvFromMap(m map[string]float64) (*Env, error) {
	env := NewEnv(nil)
	var result *multierror.Error
	for _, name := range sortedKeys(m) {
		if err := env.Set(name, m[name]); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return env, nil
}

func (e *Env) Set(name string, value float64) error {
	if !validVariable(name) {
		return errors.Wrapf(ErrInvalidVariable, "%q", name)
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return errors.Wrapf(ErrInvalidNumber, "%s = %v", name, value)
	}
	e.vars[name] = value
	return nil
}

func (e *Env) Lookup(name string) (float64, bool) {
	for e != nil {
		v, ok := e.vars[name]
		if ok {
			return v, true
		}
		e = e.env
	}
	return 0, false
}

// Names returns every bound name, including those of parents, sorted.
func (e *Env) Names() []string {
	seen := make(map[string]float64)
	for ; e != nil; e = e.env {
		for name, v := range e.vars {
			if _, ok := seen[name]; !ok {
				seen[name] = v
			}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
