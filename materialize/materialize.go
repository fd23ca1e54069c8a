// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

// Package materialize turns raw tagged node trees into typed records using
// the loaded type list. The walk is best effort: unknown hashes and
// malformed fields degrade the affected subtree or field and are recorded
// as skip entries, they never abort the entry.
package materialize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/CIick/BattleBot/typelist"
	"github.com/CIick/BattleBot/wadobj"
)

// Policy tunes the tolerance behavior of a traversal.
type Policy struct {
	// FailOnUnknown makes any unknown type hash fail the whole entry
	// instead of degrading that subtree. Off by default, matching the
	// serializer's skip-unknown-types mode that the dumps are produced
	// with.
	FailOnUnknown bool
}

// Materializer resolves raw nodes against a type list and hands the coerced
// fields to the record factory. It holds no per-entry state and is safe for
// concurrent use; each traversal writes only to its caller's ledger.
type Materializer struct {
	log     *zap.Logger
	types   *typelist.List
	factory Factory
	policy  Policy
}

// New creates a materializer over the given type list and factory.
func New(log *zap.Logger, types *typelist.List, factory Factory, policy Policy) *Materializer {
	return &Materializer{
		log:     log,
		types:   types,
		factory: factory,
		policy:  policy,
	}
}

// Materialize walks the tree rooted at root. It returns the best-effort
// record and true, or nil and false when the root itself is unresolvable.
// Every recoverable problem found on the way is appended to ledger.
func (m *Materializer) Materialize(root *wadobj.Object, ledger *Ledger) (Record, bool) {
	record, ok := m.walk(root, "", 0, ledger)
	if m.policy.FailOnUnknown {
		for _, entry := range ledger.entries {
			if entry.Reason == SkipUnknownType {
				return nil, false
			}
		}
	}
	return record, ok
}

func (m *Materializer) walk(node *wadobj.Object, path string, depth int, ledger *Ledger) (Record, bool) {
	// the parser already bounds nesting, this guards hand-built trees
	if depth > wadobj.MaxDepth {
		ledger.Record(SkipEntry{
			Reason:      SkipMalformedField,
			Path:        path,
			Detail:      "nesting deeper than " + strconv.Itoa(wadobj.MaxDepth) + " levels",
			RawSnapshot: node.Snapshot(),
		})
		return nil, false
	}

	desc, ok := m.types.Lookup(node.TypeHash)
	if !ok {
		ledger.Record(SkipEntry{
			Reason:      SkipUnknownType,
			TypeHash:    node.TypeHash,
			Path:        path,
			Detail:      "type hash not present in type list",
			RawSnapshot: node.Snapshot(),
		})
		return nil, false
	}
	if !m.factory.Knows(desc) {
		ledger.Record(SkipEntry{
			Reason:      SkipUnknownType,
			TypeHash:    node.TypeHash,
			Path:        path,
			Detail:      "no record kind registered for type " + desc.Name,
			RawSnapshot: node.Snapshot(),
		})
		return nil, false
	}

	fields := NewFieldSet()
	for _, spec := range desc.EffectiveFields() {
		value, present := node.Field(spec.Name)
		if !present || value == nil {
			continue
		}
		m.coerceField(desc, spec, value, joinPath(path, spec.Name), depth, fields, ledger)
	}

	record, ok := m.factory.Build(desc, fields)
	if !ok {
		// Knows said yes, so this is a factory bug rather than bad input.
		m.log.Error("factory rejected known descriptor", zap.String("type", desc.Name), zap.Uint64("hash", desc.Hash))
		return nil, false
	}
	return record, true
}

func (m *Materializer) coerceField(desc *typelist.Descriptor, spec typelist.FieldSpec, value wadobj.Value, path string, depth int, fields *FieldSet, ledger *Ledger) {
	malformed := func(detail string) {
		ledger.Record(SkipEntry{
			Reason:      SkipMalformedField,
			TypeHash:    desc.Hash,
			Path:        path,
			Detail:      detail,
			RawSnapshot: snapshotValue(value),
		})
	}

	switch spec.Kind {
	case typelist.KindBool:
		b, ok := value.(bool)
		if !ok {
			malformed("expected bool")
			return
		}
		fields.bools[spec.Name] = b

	case typelist.KindInt:
		i, ok := coerceInt(value)
		if !ok {
			malformed("expected integer in range")
			return
		}
		fields.ints[spec.Name] = i

	case typelist.KindUint:
		u, ok := coerceUint(value)
		if !ok {
			malformed("expected unsigned integer")
			return
		}
		fields.uints[spec.Name] = u

	case typelist.KindFloat:
		f, ok := coerceFloat(value)
		if !ok {
			malformed("expected float")
			return
		}
		fields.floats[spec.Name] = f

	case typelist.KindString:
		s, ok := coerceString(value)
		if !ok {
			malformed("expected text or byte sequence")
			return
		}
		fields.strings[spec.Name] = s

	case typelist.KindStringList:
		list, ok := value.(wadobj.List)
		if !ok {
			malformed("expected list")
			return
		}
		out := make([]string, len(list))
		for i, item := range list {
			s, ok := coerceString(item)
			if !ok {
				ledger.Record(SkipEntry{
					Reason:      SkipMalformedField,
					TypeHash:    desc.Hash,
					Path:        indexPath(path, i),
					Detail:      "expected text or byte sequence",
					RawSnapshot: snapshotValue(item),
				})
				continue
			}
			out[i] = s
		}
		fields.stringLists[spec.Name] = out

	case typelist.KindIntList:
		list, ok := value.(wadobj.List)
		if !ok {
			malformed("expected list")
			return
		}
		out := make([]int64, len(list))
		for i, item := range list {
			n, ok := coerceInt(item)
			if !ok {
				ledger.Record(SkipEntry{
					Reason:      SkipMalformedField,
					TypeHash:    desc.Hash,
					Path:        indexPath(path, i),
					Detail:      "expected integer in range",
					RawSnapshot: snapshotValue(item),
				})
				continue
			}
			out[i] = n
		}
		fields.intLists[spec.Name] = out

	case typelist.KindObject:
		child, ok := value.(*wadobj.Object)
		if !ok {
			malformed("expected nested object")
			return
		}
		record, ok := m.walk(child, path, depth+1, ledger)
		if !ok {
			// skip already recorded, field stays absent
			return
		}
		fields.objects[spec.Name] = record

	case typelist.KindObjectList:
		list, ok := value.(wadobj.List)
		if !ok {
			malformed("expected list of objects")
			return
		}
		out := make([]Record, len(list))
		for i, item := range list {
			child, ok := item.(*wadobj.Object)
			if !ok {
				ledger.Record(SkipEntry{
					Reason:      SkipMalformedField,
					TypeHash:    desc.Hash,
					Path:        indexPath(path, i),
					Detail:      "expected nested object",
					RawSnapshot: snapshotValue(item),
				})
				continue
			}
			record, ok := m.walk(child, indexPath(path, i), depth+1, ledger)
			if !ok {
				// nil placeholder keeps sibling positions stable
				continue
			}
			out[i] = record
		}
		fields.lists[spec.Name] = out

	default:
		malformed("invalid field kind in type list")
	}
}

func coerceInt(value wadobj.Value) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

func coerceUint(value wadobj.Value) (uint64, bool) {
	switch v := value.(type) {
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case uint64:
		return v, true
	}
	return 0, false
}

func coerceFloat(value wadobj.Value) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

// coerceString canonicalizes text fields. The dumps store some strings as
// raw byte sequences; those are rebuilt into UTF-8 text with invalid runs
// replaced.
func coerceString(value wadobj.Value) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case wadobj.List:
		raw := make([]byte, 0, len(v))
		for _, item := range v {
			b, ok := item.(int64)
			if !ok || b < 0 || b > 255 {
				return "", false
			}
			raw = append(raw, byte(b))
		}
		s := string(raw)
		if !utf8.ValidString(s) {
			s = strings.ToValidUTF8(s, "�")
		}
		return s, true
	}
	return "", false
}

func snapshotValue(value wadobj.Value) string {
	if obj, ok := value.(*wadobj.Object); ok {
		return obj.Snapshot()
	}
	data, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(data)
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
