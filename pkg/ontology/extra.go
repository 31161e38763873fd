package ontology

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

// The schema is open: unrecognized keys on input are captured into each
// entity's Extra map and merged back in on output, so that documents written
// by a future version of the ontology round-trip without loss.

var knownKeyCache sync.Map // reflect.Type -> map[string]struct{}

// knownKeys returns the set of JSON keys owned by the typed fields of t.
func knownKeys(t reflect.Type) map[string]struct{} {
	if cached, ok := knownKeyCache.Load(t); ok {
		return cached.(map[string]struct{})
	}

	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			keys[name] = struct{}{}
		}
	}

	knownKeyCache.Store(t, keys)
	return keys
}

// marshalWithExtra marshals v and merges the extra keys into the resulting
// object. Typed fields always win over a colliding extra key.
func marshalWithExtra(v any, extra map[string]any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return data, nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if _, ok := obj[k]; !ok {
			obj[k] = val
		}
	}

	return json.Marshal(obj)
}

// unmarshalWithExtra decodes data into v and returns the keys that do not map
// to any typed field of v, or nil when there are none.
func unmarshalWithExtra(data []byte, v any) (map[string]any, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	for k := range knownKeys(reflect.TypeOf(v).Elem()) {
		delete(obj, k)
	}
	if len(obj) == 0 {
		return nil, nil
	}

	return obj, nil
}
