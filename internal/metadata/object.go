// Package metadata defines the metadata object model shared by the synchronization engine,
// the model registry with schema default include/exclude rules, and the repository
// interfaces used to read and write metadata and data on an instance.
package metadata

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Object is a metadata object as returned by an instance API.
// Only the fields requested by a query are present.
type Object map[string]any

// Package groups metadata objects by collection name (e.g. "dataElements")
type Package map[string][]Object

// String returns the string value of a top-level field or "" when absent
func (o Object) String(key string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return ""
}

// ID returns the id of the object
func (o Object) ID() string { return o.String("id") }

// Code returns the code of the object
func (o Object) Code() string { return o.String("code") }

// Name returns the name of the object
func (o Object) Name() string { return o.String("name") }

// Object returns a nested object field or nil when absent
func (o Object) Object(key string) Object {
	switch v := o[key].(type) {
	case Object:
		return v
	case map[string]any:
		return Object(v)
	default:
		return nil
	}
}

// Objects returns a nested list of objects. Non-object entries are skipped.
func (o Object) Objects(key string) []Object {
	switch v := o[key].(type) {
	case []Object:
		return v
	case []map[string]any:
		out := make([]Object, 0, len(v))
		for _, item := range v {
			out = append(out, Object(item))
		}
		return out
	case []any:
		out := make([]Object, 0, len(v))
		for _, item := range v {
			switch m := item.(type) {
			case Object:
				out = append(out, m)
			case map[string]any:
				out = append(out, Object(m))
			}
		}
		return out
	default:
		return nil
	}
}

// Lookup resolves a dotted field path such as "categoryCombo.id"
func (o Object) Lookup(path string) (any, bool) {
	head, rest, nested := strings.Cut(path, ".")
	v, ok := o[head]
	if !ok {
		return nil, false
	}
	if !nested {
		return v, true
	}
	child := o.Object(head)
	if child == nil {
		return nil, false
	}
	return child.Lookup(rest)
}

// Clone returns a deep copy of the object
func (o Object) Clone() Object {
	if o == nil {
		return nil
	}
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Object:
		return t.Clone()
	case map[string]any:
		return Object(t).Clone()
	case []Object:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = item.Clone()
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return t
	}
}

// Clone returns a deep copy of the package
func (p Package) Clone() Package {
	out := make(Package, len(p))
	for collection, objects := range p {
		cloned := make([]Object, len(objects))
		for i, obj := range objects {
			cloned[i] = obj.Clone()
		}
		out[collection] = cloned
	}
	return out
}

// Merge returns a package holding the objects of both packages, without duplicated ids
func (p Package) Merge(other Package) Package {
	out := make(Package, len(p))
	for collection, objects := range p {
		out[collection] = slices.Clone(objects)
	}
	for collection, objects := range other {
		seen := make(map[string]struct{})
		for _, obj := range out[collection] {
			seen[obj.ID()] = struct{}{}
		}
		for _, obj := range objects {
			if _, ok := seen[obj.ID()]; ok && obj.ID() != "" {
				continue
			}
			seen[obj.ID()] = struct{}{}
			out[collection] = append(out[collection], obj)
		}
	}
	return out
}

// Count returns the total number of objects in the package
func (p Package) Count() int {
	total := 0
	for _, objects := range p {
		total += len(objects)
	}
	return total
}

// Decode converts a loosely typed value into out through its JSON representation
func Decode(in any, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode metadata: %w", err)
	}
	return nil
}
