package hpp

import (
	"net/url"
	"sort"
)

// FieldSet holds the named string values exchanged in one interaction.
// Iteration order is insertion order, which keeps rendering and the
// unexpected-field check deterministic regardless of map internals.
type FieldSet struct {
	keys   []string
	values map[string]string
}

// NewFieldSet returns an empty field set.
func NewFieldSet() *FieldSet {
	return &FieldSet{values: map[string]string{}}
}

// FieldSetFromValues builds a field set from decoded form or query values.
// Keys are inserted in sorted order so wire input always validates the same
// way; multi-valued keys keep their first value.
func FieldSetFromValues(values url.Values) *FieldSet {
	fs := NewFieldSet()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fs.Set(name, values.Get(name))
	}
	return fs
}

// Set stores a value, appending the key on first insertion.
func (fs *FieldSet) Set(name, value string) {
	if fs.values == nil {
		fs.values = map[string]string{}
	}
	if _, ok := fs.values[name]; !ok {
		fs.keys = append(fs.keys, name)
	}
	fs.values[name] = value
}

// Get returns the value for name, or the empty string when absent.
func (fs *FieldSet) Get(name string) string {
	if fs == nil {
		return ""
	}
	return fs.values[name]
}

// Lookup reports the value for name and whether the field is present.
func (fs *FieldSet) Lookup(name string) (string, bool) {
	if fs == nil {
		return "", false
	}
	v, ok := fs.values[name]
	return v, ok
}

// Delete removes a field if present.
func (fs *FieldSet) Delete(name string) {
	if fs == nil {
		return
	}
	if _, ok := fs.values[name]; !ok {
		return
	}
	delete(fs.values, name)
	for i, key := range fs.keys {
		if key == name {
			fs.keys = append(fs.keys[:i], fs.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of fields.
func (fs *FieldSet) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.keys)
}

// Keys returns the field names in insertion order.
func (fs *FieldSet) Keys() []string {
	if fs == nil {
		return nil
	}
	out := make([]string, len(fs.keys))
	copy(out, fs.keys)
	return out
}

// Clone returns an independent copy preserving insertion order.
func (fs *FieldSet) Clone() *FieldSet {
	clone := NewFieldSet()
	if fs == nil {
		return clone
	}
	for _, key := range fs.keys {
		clone.Set(key, fs.values[key])
	}
	return clone
}

// Map returns a plain map snapshot, e.g. for JSON responses.
func (fs *FieldSet) Map() map[string]string {
	out := make(map[string]string, fs.Len())
	if fs == nil {
		return out
	}
	for _, key := range fs.keys {
		out[key] = fs.values[key]
	}
	return out
}
