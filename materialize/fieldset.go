// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package materialize

import (
	"math"

	"github.com/CIick/BattleBot/typelist"
)

// Record is one fully materialized, typed value. The concrete kinds form a
// closed set; see the spells package.
type Record interface {
	// Kind returns the archive type name the record was built from.
	Kind() string
}

// Factory builds a concrete record from a resolved descriptor and its
// coerced fields. Build is pure construction: every coercion problem was
// already absorbed by the materializer, so the only failure mode left is a
// descriptor name with no registered kind.
type Factory interface {
	// Knows reports whether a record kind is registered for the
	// descriptor's type name.
	Knows(desc *typelist.Descriptor) bool
	Build(desc *typelist.Descriptor, fields *FieldSet) (Record, bool)
}

// FieldSet carries the coerced fields of a single node. Every accessor is
// total: a missing or degraded field yields the zero value, mirroring how
// the archive itself omits defaulted properties.
type FieldSet struct {
	bools   map[string]bool
	ints    map[string]int64
	uints   map[string]uint64
	floats  map[string]float64
	strings map[string]string

	stringLists map[string][]string
	intLists    map[string][]int64

	objects map[string]Record
	lists   map[string][]Record
}

// NewFieldSet returns an empty field set.
func NewFieldSet() *FieldSet {
	return &FieldSet{
		bools:       make(map[string]bool),
		ints:        make(map[string]int64),
		uints:       make(map[string]uint64),
		floats:      make(map[string]float64),
		strings:     make(map[string]string),
		stringLists: make(map[string][]string),
		intLists:    make(map[string][]int64),
		objects:     make(map[string]Record),
		lists:       make(map[string][]Record),
	}
}

// SetBool stores a bool field.
func (fields *FieldSet) SetBool(name string, value bool) { fields.bools[name] = value }

// SetInt stores an integer field.
func (fields *FieldSet) SetInt(name string, value int64) { fields.ints[name] = value }

// SetUint stores an unsigned integer field.
func (fields *FieldSet) SetUint(name string, value uint64) { fields.uints[name] = value }

// SetFloat stores a float field.
func (fields *FieldSet) SetFloat(name string, value float64) { fields.floats[name] = value }

// SetString stores a string field.
func (fields *FieldSet) SetString(name string, value string) { fields.strings[name] = value }

// SetStrings stores a string list field.
func (fields *FieldSet) SetStrings(name string, value []string) { fields.stringLists[name] = value }

// SetInts stores an integer list field.
func (fields *FieldSet) SetInts(name string, value []int64) { fields.intLists[name] = value }

// SetObject stores a nested record field.
func (fields *FieldSet) SetObject(name string, value Record) { fields.objects[name] = value }

// SetObjects stores a list of nested records.
func (fields *FieldSet) SetObjects(name string, value []Record) { fields.lists[name] = value }

// Bool returns the named bool field.
func (fields *FieldSet) Bool(name string) bool { return fields.bools[name] }

// Int returns the named integer field. An unsigned field that fits in
// int64 is returned as well, so callers need not care which width the
// type list declared.
func (fields *FieldSet) Int(name string) int64 {
	if value, ok := fields.ints[name]; ok {
		return value
	}
	if value, ok := fields.uints[name]; ok && value <= math.MaxInt64 {
		return int64(value)
	}
	return 0
}

// Uint returns the named unsigned field, full range. A non-negative
// signed field answers too.
func (fields *FieldSet) Uint(name string) uint64 {
	if value, ok := fields.uints[name]; ok {
		return value
	}
	if value, ok := fields.ints[name]; ok && value >= 0 {
		return uint64(value)
	}
	return 0
}

// Float returns the named float field.
func (fields *FieldSet) Float(name string) float64 { return fields.floats[name] }

// String returns the named string field.
func (fields *FieldSet) String(name string) string { return fields.strings[name] }

// Strings returns the named string list field.
func (fields *FieldSet) Strings(name string) []string { return fields.stringLists[name] }

// Ints returns the named integer list field.
func (fields *FieldSet) Ints(name string) []int64 { return fields.intLists[name] }

// Object returns the named nested record, or nil when the field is absent
// or was degraded.
func (fields *FieldSet) Object(name string) Record { return fields.objects[name] }

// Objects returns the named list of nested records. A degraded element is a
// nil placeholder so that surviving siblings keep their original positions.
func (fields *FieldSet) Objects(name string) []Record { return fields.lists[name] }
