// Package fields provides helpers for shaping structured sequence elements:
// records whose fields are addressed either by position or by name. The
// functions here build element transforms meant to be passed to seq.Map.
package fields

import "strconv"

// Record is a structured element with either positional or named fields.
// It is a closed two-variant type: operations switch on the variant
// exhaustively instead of sniffing the runtime type of arbitrary values.
type Record interface {
	record()
}

// Positional is a record whose fields are addressed by index.
type Positional []any

// Keyed is a record whose fields are addressed by name.
type Keyed map[string]any

func (Positional) record() {}
func (Keyed) record()      {}

// FromValue adapts a decoded JSON value into a Record: objects become Keyed,
// arrays become Positional. Scalars are not records and report false.
func FromValue(v any) (Record, bool) {
	switch t := v.(type) {
	case map[string]any:
		return Keyed(t), true
	case []any:
		return Positional(t), true
	case Record:
		return t, true
	default:
		return nil, false
	}
}

// Key addresses a field in either record variant: an index for Positional,
// a name for Keyed. A Key of the wrong kind for a record selects nothing.
type Key struct {
	name  string
	index int
	named bool
}

// Name addresses a field of a Keyed record.
func Name(name string) Key {
	return Key{name: name, named: true}
}

// Index addresses a field of a Positional record.
func Index(i int) Key {
	return Key{index: i}
}

// String renders the key as it would address a field.
func (k Key) String() string {
	if k.named {
		return k.name
	}
	return strconv.Itoa(k.index)
}

// AsDict builds a transform that converts a Positional record into a Keyed
// one, associating keys[i] with field i. Fields beyond the given keys are
// named by their decimal index; keys beyond the record's fields are ignored.
func AsDict(keys ...string) func(Positional) Keyed {
	return func(items Positional) Keyed {
		out := make(Keyed, len(items))
		for i, v := range items {
			if i < len(keys) {
				out[keys[i]] = v
			} else {
				out[strconv.Itoa(i)] = v
			}
		}
		return out
	}
}

// Select builds a transform that keeps only the given fields, in the given
// order for Positional records. Fields absent from the record come out nil.
func Select(keys ...Key) func(Record) Record {
	return func(r Record) Record {
		switch t := r.(type) {
		case Positional:
			out := make(Positional, 0, len(keys))
			for _, k := range keys {
				out = append(out, lookup(t, k))
			}
			return out
		case Keyed:
			out := make(Keyed, len(keys))
			for _, k := range keys {
				out[k.String()] = lookup(t, k)
			}
			return out
		default:
			return r
		}
	}
}

// Apply builds a transform that applies fn to every field value.
func Apply(fn func(any) any) func(Record) Record {
	return func(r Record) Record {
		switch t := r.(type) {
		case Positional:
			out := make(Positional, len(t))
			for i, v := range t {
				out[i] = fn(v)
			}
			return out
		case Keyed:
			out := make(Keyed, len(t))
			for k, v := range t {
				out[k] = fn(v)
			}
			return out
		default:
			return r
		}
	}
}

// ApplyAt builds a transform that applies fn to the single field addressed
// by key, leaving every other field untouched. A key with no corresponding
// field leaves the record unchanged.
func ApplyAt(key Key, fn func(any) any) func(Record) Record {
	return ApplyMany(map[Key]func(any) any{key: fn})
}

// ApplyMany builds a transform that applies fns[key] to the field each key
// addresses. Fields without a matching entry pass through unchanged; entries
// without a matching field are skipped.
func ApplyMany(fns map[Key]func(any) any) func(Record) Record {
	return func(r Record) Record {
		switch t := r.(type) {
		case Positional:
			out := make(Positional, len(t))
			copy(out, t)
			for k, fn := range fns {
				if !k.named && k.index >= 0 && k.index < len(out) {
					out[k.index] = fn(out[k.index])
				}
			}
			return out
		case Keyed:
			out := make(Keyed, len(t))
			for k, v := range t {
				out[k] = v
			}
			for k, fn := range fns {
				if !k.named {
					continue
				}
				if v, ok := out[k.name]; ok {
					out[k.name] = fn(v)
				}
			}
			return out
		default:
			return r
		}
	}
}

// Add builds a transform that appends one computed field per function to a
// Positional record. Each function receives the original record. Keyed
// records pass through unchanged; use AddAt or AddMany to add named fields.
func Add(fns ...func(Record) any) func(Record) Record {
	return func(r Record) Record {
		t, ok := r.(Positional)
		if !ok {
			return r
		}
		out := make(Positional, len(t), len(t)+len(fns))
		copy(out, t)
		for _, fn := range fns {
			out = append(out, fn(t))
		}
		return out
	}
}

// AddAt builds a transform that sets the named field to fn(record) on a
// Keyed record, overwriting an existing field of the same name.
func AddAt(name string, fn func(Record) any) func(Record) Record {
	return AddMany(map[string]func(Record) any{name: fn})
}

// AddMany builds a transform that sets each named field to the value its
// function computes from the original record.
func AddMany(fns map[string]func(Record) any) func(Record) Record {
	return func(r Record) Record {
		t, ok := r.(Keyed)
		if !ok {
			return r
		}
		out := make(Keyed, len(t)+len(fns))
		for k, v := range t {
			out[k] = v
		}
		for name, fn := range fns {
			out[name] = fn(t)
		}
		return out
	}
}

// Get builds an accessor returning the field addressed by key, or def when
// the field is absent. Commonly used as a keying function for sorting and
// grouping.
func Get(key Key, def any) func(Record) any {
	return func(r Record) any {
		if v := lookup(r, key); v != nil {
			return v
		}
		return def
	}
}

func lookup(r Record, k Key) any {
	switch t := r.(type) {
	case Positional:
		if !k.named && k.index >= 0 && k.index < len(t) {
			return t[k.index]
		}
	case Keyed:
		if k.named {
			if v, ok := t[k.name]; ok {
				return v
			}
		}
	}
	return nil
}
