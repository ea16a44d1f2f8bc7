package models

import "strings"

// Document is a schema-less JSON object stored verbatim next to the
// flattened columns derived from it.
type Document map[string]any

// At resolves a dotted path ("application.deadline") through nested objects.
func (d Document) At(path string) (any, bool) {
	cur := d
	parts := strings.Split(path, ".")
	for i, part := range parts {
		v, ok := cur[part]
		if !ok || v == nil {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		if cur = cur.Sub(part); cur == nil {
			return nil, false
		}
	}
	return nil, false
}

// Lookup returns the value at the first path present in d.
func (d Document) Lookup(paths ...string) (any, bool) {
	for _, path := range paths {
		if v, ok := d.At(path); ok {
			return v, true
		}
	}
	return nil, false
}

// Bool reads the first path holding a boolean. String values "true" and
// "false" are accepted; anything else is treated as absent.
func (d Document) Bool(paths ...string) (bool, bool) {
	for _, path := range paths {
		v, _ := d.At(path)
		switch b := v.(type) {
		case bool:
			return b, true
		case string:
			switch strings.ToLower(strings.TrimSpace(b)) {
			case "true":
				return true, true
			case "false":
				return false, true
			}
		}
	}
	return false, false
}

// String reads the first path holding a non-blank string.
func (d Document) String(paths ...string) (string, bool) {
	for _, path := range paths {
		v, _ := d.At(path)
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), true
		}
	}
	return "", false
}

// Sub returns the nested object stored under key, or nil.
func (d Document) Sub(key string) Document {
	switch v := d[key].(type) {
	case Document:
		return v
	case map[string]any:
		return Document(v)
	}
	return nil
}

// Object returns the first path holding a nested object, or nil.
func (d Document) Object(paths ...string) Document {
	for _, path := range paths {
		v, _ := d.At(path)
		switch o := v.(type) {
		case Document:
			return o
		case map[string]any:
			return Document(o)
		}
	}
	return nil
}
