// Package hostinput flattens a JSON-like tree of host-supplied circuit
// inputs into the (full_name -> FS) map the evaluator consumes during
// GenWitness, per spec.md §4.3's "deferred signal values" mechanism.
package hostinput

import (
	"encoding/json"
	"fmt"

	"github.com/za-lang/zkcc/internal/field"
	"github.com/za-lang/zkcc/internal/zkerr"
)

// Parse decodes a JSON document and flattens it into full_name -> FS pairs,
// joining array indices as "[i]" and object keys with ".", with leaf
// values parsed as decimal or 0x-hex integers (or JSON numbers).
func Parse(data []byte) (map[string]field.FS, error) {
	var tree interface{}
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, zkerr.Wrap(zkerr.Parse, err, "invalid host input JSON")
	}
	out := make(map[string]field.FS)
	if err := flatten("", tree, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(prefix string, node interface{}, out map[string]field.FS) error {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, child := range v {
			name := k
			if prefix != "" {
				name = prefix + "." + k
			}
			if err := flatten(name, child, out); err != nil {
				return err
			}
		}
	case []interface{}:
		for i, child := range v {
			name := fmt.Sprintf("%s[%d]", prefix, i)
			if err := flatten(name, child, out); err != nil {
				return err
			}
		}
	case string:
		fs, err := field.Parse(v)
		if err != nil {
			return zkerr.Wrap(zkerr.Parse, err, "input %q: invalid integer literal %q", prefix, v)
		}
		out[prefix] = fs
	case float64:
		out[prefix] = field.FromUint64(uint64(v))
	case bool:
		if v {
			out[prefix] = field.One()
		} else {
			out[prefix] = field.Zero()
		}
	case nil:
		return zkerr.New(zkerr.Parse, "input %q: null is not a valid signal value", prefix)
	default:
		return zkerr.New(zkerr.Parse, "input %q: unsupported JSON value type %T", prefix, node)
	}
	return nil
}
