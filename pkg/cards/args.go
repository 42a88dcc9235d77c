package cards

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/fretcards/pkg/errors"
)

// Args is one call's worth of positional and keyword parameters.
type Args struct {
	Positional []any
	Keyword    map[string]any
}

// ZipArgs pairs positional and keyword parameter lists call by call.
// Both nil yields nil. When only one is given, the other is empty for every
// call. When both are given they must have the same length.
func ZipArgs(pos [][]any, kw []map[string]any) ([]Args, error) {
	if pos == nil && kw == nil {
		return nil, nil
	}
	if pos != nil && kw != nil && len(pos) != len(kw) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"positional and keyword parameter lists differ in length (%d vs %d)", len(pos), len(kw))
	}
	n := max(len(pos), len(kw))
	out := make([]Args, n)
	for i := range n {
		if pos != nil {
			out[i].Positional = pos[i]
		}
		if kw != nil {
			out[i].Keyword = kw[i]
		}
		if out[i].Positional == nil {
			out[i].Positional = []any{}
		}
		if out[i].Keyword == nil {
			out[i].Keyword = map[string]any{}
		}
	}
	return out, nil
}

// Get returns a keyword parameter.
func (a Args) Get(name string) (any, bool) {
	v, ok := a.Keyword[name]
	return v, ok
}

// Int returns a keyword parameter as an int.
func (a Args) Int(name string) (int, error) {
	v, ok := a.Keyword[name]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidInput, "missing parameter %q", name)
	}
	n, err := toInt(v)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "parameter %q", name)
	}
	return n, nil
}

// String returns a keyword parameter formatted as a string, or "" if absent.
func (a Args) String(name string) string {
	v, ok := a.Keyword[name]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// templateData exposes keywords at the top level and positionals as .args.
func (a Args) templateData() map[string]any {
	data := make(map[string]any, len(a.Keyword)+1)
	for k, v := range a.Keyword {
		data[k] = v
	}
	data["args"] = a.Positional
	return data
}

// toInt accepts the numeric types YAML and JSON decoders produce.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not a whole number", n)
		}
		return int(n), nil
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("%v (%T) is not a number", v, v)
	}
}
