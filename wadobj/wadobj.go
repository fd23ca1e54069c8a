// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

// Package wadobj models the raw object trees handed over by the external
// WAD deserializer. Every node carries the numeric type hash the archive
// tagged it with plus an untyped field map; nothing here knows what the
// fields mean. Materialization against the type list happens elsewhere.
package wadobj

import (
	"encoding/json"
	"sort"

	"github.com/zeebo/errs"
)

// Error is the default wadobj error class.
var Error = errs.Class("wadobj")

// MaxDepth bounds object nesting. Real archive entries nest a handful of
// levels; anything deeper is treated as a malformed dump so that later
// traversals stay bounded as well.
const MaxDepth = 64

// Value is one decoded field value: bool, int64, uint64, float64, string,
// *Object or List.
type Value any

// List is an ordered sequence of values.
type List []Value

// Object is a single tagged node.
type Object struct {
	TypeHash uint64
	Fields   map[string]Value
}

// Field returns the named field value.
func (obj *Object) Field(name string) (Value, bool) {
	value, ok := obj.Fields[name]
	return value, ok
}

// FieldNames returns the field names in lexical order. The dump's map has
// no ordering of its own; sorting keeps diagnostics deterministic.
func (obj *Object) FieldNames() []string {
	names := make([]string, 0, len(obj.Fields))
	for name := range obj.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot serializes the node back into the dump format. Used for
// diagnostic records; never fails for trees built by this package.
func (obj *Object) Snapshot() string {
	data, err := json.Marshal(obj)
	if err != nil {
		return `{"$__type":0}`
	}
	return string(data)
}

// MarshalJSON renders the node in the tagged dump format.
func (obj *Object) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(obj.Fields)+1)
	out[typeKey] = obj.TypeHash
	for name, value := range obj.Fields {
		out[name] = value
	}
	return json.Marshal(out)
}
