package expressivo

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadEnv reads variable bindings from a YAML, JSON or TOML file and
// returns them as a child of parent. The file holds a flat table of
// names to nonnegative numbers:
//
//	PI: 3.142
//	radius: 12
func LoadEnv(path string, parent *Env) (*Env, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading environment %s", path)
	}

	vars := map[string]interface{}{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		_, err = toml.Decode(string(b), &vars)
	case ".yaml", ".yml", ".json", "":
		err = yaml.Unmarshal(b, &vars)
	default:
		return nil, errors.Errorf("unsupported environment file type %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parsing environment %s", path)
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	env := NewEnv(parent)
	var result *multierror.Error
	for _, name := range names {
		f, ok := toFloat(vars[name])
		if !ok {
			result = multierror.Append(result, errors.Wrapf(ErrInvalidNumber, "%s = %v", name, vars[name]))
			continue
		}
		if err := env.Set(name, f); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.Wrapf(err, "environment %s", path)
	}
	return env, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
