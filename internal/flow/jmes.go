package flow

import (
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// EvalAny returns the raw value selected by the JMESPath expression.
// It is safe to pass any decoded JSON or YAML document (map[string]any, []any, etc.)
// It will return nil and no error if the expression does not match anything.
func EvalAny(expression string, doc any) (any, error) {
	v, err := jmespath.Search(expression, doc)
	if err != nil {
		return nil, fmt.Errorf("jmespath: %w", err)
	}
	return v, nil
}

// SelectRecords narrows an import document down to a list of raw client
// inputs. An empty expression selects the whole document. The selection must
// be a single object or a list of objects.
func SelectRecords(expression string, doc any) ([]map[string]any, error) {
	sel := doc
	if expression != "" {
		var err error
		sel, err = EvalAny(expression, doc)
		if err != nil {
			return nil, err
		}
	}
	switch t := sel.(type) {
	case nil:
		return nil, fmt.Errorf("selection is empty")
	case map[string]any:
		return []map[string]any{t}, nil
	case []any:
		out := make([]map[string]any, 0, len(t))
		for i, item := range t {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("item %d is %T, expected an object", i, item)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("selection is %T, expected an object or a list of objects", sel)
	}
}
