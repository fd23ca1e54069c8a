// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

// Package typelist holds the revision-scoped mapping from the archive's
// numeric type hashes to field layouts. The list is loaded once per run
// and is read-only afterwards, so it is safe for concurrent lookups.
package typelist

import (
	"github.com/zeebo/errs"
)

// Error is the default typelist error class.
var Error = errs.Class("typelist")

// Kind describes how a declared field is decoded.
type Kind int

const (
	// KindInvalid is the zero value and never appears in a loaded list.
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindStringList
	KindIntList
	// KindObject is a single nested typed object.
	KindObject
	// KindObjectList is a homogeneous list of nested typed objects.
	KindObjectList
)

// Scalar reports whether the kind is coerced in place rather than recursed into.
func (kind Kind) Scalar() bool {
	return kind != KindObject && kind != KindObjectList
}

// String returns the wire name of the kind as used in the types file.
func (kind Kind) String() string {
	switch kind {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindStringList:
		return "string_list"
	case KindIntList:
		return "int_list"
	case KindObject:
		return "object"
	case KindObjectList:
		return "object_list"
	}
	return "invalid"
}

// FieldSpec declares a single named field of a type descriptor.
type FieldSpec struct {
	Name string
	Kind Kind
	// Class hints the expected element type for object kinds. Zero means
	// any registered type is accepted; the node's own hash decides.
	Class uint64
}

// Descriptor is the decoding shape for one type hash. Immutable once loaded.
type Descriptor struct {
	Hash   uint64
	Name   string
	Parent uint64 // 0 means no base type
	Fields []FieldSpec

	// effective is the flattened field list, ancestor fields first, resolved
	// once at load time.
	effective []FieldSpec
}

// EffectiveFields returns the full field list including inherited base
// fields, base-first. A field redeclared by a descendant keeps the base
// position but uses the descendant's spec, so shadowing is deterministic.
func (desc *Descriptor) EffectiveFields() []FieldSpec {
	return desc.effective
}

// List is the loaded registry of type descriptors for one revision.
type List struct {
	revision string
	byHash   map[uint64]*Descriptor
}

// Revision returns the revision marker the list was built for.
func (list *List) Revision() string { return list.revision }

// Lookup resolves a type hash. Absence is not an error; the materializer
// applies its own policy to unknown hashes.
func (list *List) Lookup(hash uint64) (*Descriptor, bool) {
	desc, ok := list.byHash[hash]
	return desc, ok
}

// Len returns the number of registered descriptors.
func (list *List) Len() int { return len(list.byHash) }

// resolveEffective flattens the ancestor chain of every descriptor. Returns
// an error on a dangling parent hash or an inheritance cycle.
func (list *List) resolveEffective() error {
	for _, desc := range list.byHash {
		var chain []*Descriptor
		seen := make(map[uint64]bool)
		for cur := desc; cur != nil; {
			if seen[cur.Hash] {
				return Error.New("inheritance cycle through type %q (hash %d)", cur.Name, cur.Hash)
			}
			seen[cur.Hash] = true
			chain = append(chain, cur)
			if cur.Parent == 0 {
				break
			}
			parent, ok := list.byHash[cur.Parent]
			if !ok {
				return Error.New("type %q (hash %d) declares unknown parent hash %d", cur.Name, cur.Hash, cur.Parent)
			}
			cur = parent
		}

		var fields []FieldSpec
		index := make(map[string]int)
		for i := len(chain) - 1; i >= 0; i-- {
			for _, field := range chain[i].Fields {
				if at, ok := index[field.Name]; ok {
					fields[at] = field
					continue
				}
				index[field.Name] = len(fields)
				fields = append(fields, field)
			}
		}
		desc.effective = fields
	}
	return nil
}
