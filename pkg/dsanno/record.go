package dsanno

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type valueState uint8

const (
	stateMissing valueState = iota
	stateAbsent
	stateSet
)

// Value is a single annotation field. It distinguishes three states:
//   - missing: the key is not part of the record at all (the zero Value)
//   - absent: the key is present with an explicit "no value" marker (JSON null)
//   - set: the key holds a value
//
// Set values are usually strings. Other JSON values (lists of tags, reference
// objects, numbers) are kept verbatim so hand-authored content survives a
// read/write cycle.
type Value struct {
	state valueState
	text  string
	raw   json.RawMessage
}

// Missing returns the zero Value: the key is not present.
func Missing() Value { return Value{} }

// Absent returns the explicit "no value" marker.
func Absent() Value { return Value{state: stateAbsent} }

// String returns a set string value.
func String(s string) Value { return Value{state: stateSet, text: s} }

// RawJSON converts a JSON fragment into a Value.
// null becomes Absent, strings become String values, anything else is kept verbatim.
func RawJSON(raw json.RawMessage) (Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Value{}, fmt.Errorf("empty JSON value")
	}
	switch trimmed[0] {
	case 'n':
		if string(trimmed) != "null" {
			return Value{}, fmt.Errorf("invalid JSON value %q", trimmed)
		}
		return Absent(), nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Value{}, err
		}
		return String(s), nil
	}

	var compacted bytes.Buffer
	if err := json.Compact(&compacted, trimmed); err != nil {
		return Value{}, err
	}
	return Value{state: stateSet, raw: json.RawMessage(compacted.Bytes())}, nil
}

// IsMissing reports whether the key is not present.
func (v Value) IsMissing() bool { return v.state == stateMissing }

// IsAbsent reports whether the key is present with the explicit "no value" marker.
func (v Value) IsAbsent() bool { return v.state == stateAbsent }

// IsSet reports whether the key holds a value.
func (v Value) IsSet() bool { return v.state == stateSet }

// Text returns the string payload and true when v is a set string value.
func (v Value) Text() (string, bool) {
	if v.state != stateSet || v.raw != nil {
		return "", false
	}
	return v.text, true
}

// Truthy reports whether v is set to something other than an empty string,
// false, zero, an empty list, or an empty object.
func (v Value) Truthy() bool {
	if v.state != stateSet {
		return false
	}
	if v.raw == nil {
		return v.text != ""
	}
	if c := v.raw[0]; c == '-' || (c >= '0' && c <= '9') {
		f, err := strconv.ParseFloat(string(v.raw), 64)
		return err != nil || f != 0
	}
	switch string(v.raw) {
	case "false", "[]", "{}":
		return false
	}
	return true
}

// String renders v for filenames and report cells.
// Missing and absent values render as AbsentToken.
func (v Value) String() string {
	switch {
	case v.state != stateSet:
		return AbsentToken
	case v.raw != nil:
		return string(v.raw)
	default:
		return v.text
	}
}

// Equal reports whether v and o are in the same state with the same payload.
func (v Value) Equal(o Value) bool {
	if v.state != o.state {
		return false
	}
	if v.state != stateSet {
		return true
	}
	if (v.raw == nil) != (o.raw == nil) {
		return false
	}
	if v.raw != nil {
		return bytes.Equal(v.raw, o.raw)
	}
	return v.text == o.text
}

// MarshalJSON encodes missing and absent values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.state != stateSet:
		return []byte("null"), nil
	case v.raw != nil:
		return append([]byte(nil), v.raw...), nil
	default:
		return marshalString(v.text)
	}
}

// UnmarshalJSON decodes any JSON value; null becomes Absent.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := RawJSON(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// marshalString encodes s without HTML escaping so URLs and titles stay readable.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Record is one derivative file's annotation: an ordered mapping from key to Value.
// Key order is insertion order and survives JSON encoding.
//
// The zero Record is empty and ready to use. Records share storage when copied
// by assignment; use Clone before mutating a record owned by someone else.
type Record struct {
	keys   []string
	values map[string]Value
}

// MustRecord builds a record from alternating key, value string pairs.
// Panics on an odd number of arguments.
func MustRecord(pairs ...string) Record {
	if len(pairs)%2 != 0 {
		panic("MustRecord requires key/value pairs")
	}
	var r Record
	for i := 0; i < len(pairs); i += 2 {
		r.Set(pairs[i], String(pairs[i+1]))
	}
	return r
}

// Get returns the value stored under key, or the missing Value.
func (r Record) Get(key string) Value {
	return r.values[key]
}

// Has reports whether key is present (set or absent).
func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Len returns the number of keys present.
func (r Record) Len() int { return len(r.keys) }

// Keys returns the present keys in insertion order.
func (r Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Set stores v under key. Setting a missing Value removes the key.
// A key that is already present keeps its position.
func (r *Record) Set(key string, v Value) {
	if v.IsMissing() {
		r.Delete(key)
		return
	}
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// SetString is shorthand for Set(key, String(s)).
func (r *Record) SetString(key, s string) {
	r.Set(key, String(s))
}

// Delete removes key if present.
func (r *Record) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i:i], r.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := Record{keys: append([]string(nil), r.keys...)}
	if r.values != nil {
		out.values = make(map[string]Value, len(r.values))
		for k, v := range r.values {
			out.values[k] = v
		}
	}
	return out
}

// Project returns a new record holding only the given keys, in the given order.
// Keys missing from r stay missing.
func (r Record) Project(keys []string) Record {
	var out Record
	for _, k := range keys {
		if v, ok := r.values[k]; ok {
			out.Set(k, v)
		}
	}
	return out
}

// Equal reports whether r and o hold the same keys with equal values.
// Key order is not compared.
func (r Record) Equal(o Record) bool {
	if len(r.keys) != len(o.keys) {
		return false
	}
	for k, v := range r.values {
		ov, ok := o.values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Describe renders the set values of the given keys as "k=v" pairs for error messages.
func (r Record) Describe(keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := r.Get(k); v.IsSet() {
			parts = append(parts, k+"="+v.String())
		}
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// String renders all keys in sorted order; meant for test failure output.
func (r Record) String() string {
	keys := r.Keys()
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := r.values[k]
		if v.IsAbsent() {
			parts = append(parts, k+"=<absent>")
			continue
		}
		parts = append(parts, k+"="+v.String())
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// MarshalJSON encodes r as a JSON object with keys in record order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[k].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order.
// A repeated key keeps its first position and its last value.
// A JSON null leaves r unchanged.
func (r *Record) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object, got %v", tok)
	}

	var out Record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("record key must be a string, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		v, err := RawJSON(raw)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		out.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}
