// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package typelist

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/zeebo/errs"
)

// ErrRevisionMismatch is returned when the types file was dumped for a
// different game revision than the archive being processed. This is fatal
// for the whole run; lookups against a stale list would silently produce
// wrong shapes.
var ErrRevisionMismatch = errs.Class("types revision mismatch")

// rawList mirrors the on-disk types file.
type rawList struct {
	Revision string              `json:"revision"`
	Classes  map[string]rawClass `json:"classes"`
}

type rawClass struct {
	Name   string     `json:"name"`
	Parent uint64     `json:"parent,omitempty"`
	Fields []rawField `json:"fields"`
}

type rawField struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Class uint64 `json:"class,omitempty"`
}

// Load reads a types file and validates it against the expected revision.
// An empty expectedRevision accepts any revision; callers doing a real
// extraction run must pass the archive's declared revision.
func Load(path string, expectedRevision string) (*List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() { _ = file.Close() }()

	list, err := Parse(file, expectedRevision)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Parse decodes a types document from r. See Load.
func Parse(r io.Reader, expectedRevision string) (*List, error) {
	var raw rawList
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return nil, Error.New("malformed types file: %v", err)
	}
	if raw.Revision == "" {
		return nil, Error.New("types file missing revision marker")
	}
	if expectedRevision != "" && raw.Revision != expectedRevision {
		return nil, ErrRevisionMismatch.New("types file is for %q, archive declares %q", raw.Revision, expectedRevision)
	}
	if len(raw.Classes) == 0 {
		return nil, Error.New("types file declares no classes")
	}

	list := &List{
		revision: raw.Revision,
		byHash:   make(map[uint64]*Descriptor, len(raw.Classes)),
	}
	for key, class := range raw.Classes {
		hash, err := strconv.ParseUint(key, 10, 64)
		if err != nil || hash == 0 {
			return nil, Error.New("invalid type hash %q", key)
		}
		if class.Name == "" {
			return nil, Error.New("type hash %d missing name", hash)
		}

		desc := &Descriptor{
			Hash:   hash,
			Name:   class.Name,
			Parent: class.Parent,
			Fields: make([]FieldSpec, 0, len(class.Fields)),
		}
		for _, field := range class.Fields {
			kind, err := parseKind(field.Kind)
			if err != nil {
				return nil, Error.New("type %q field %q: %v", class.Name, field.Name, err)
			}
			desc.Fields = append(desc.Fields, FieldSpec{
				Name:  field.Name,
				Kind:  kind,
				Class: field.Class,
			})
		}
		list.byHash[hash] = desc
	}

	if err := list.resolveEffective(); err != nil {
		return nil, err
	}
	return list, nil
}

func parseKind(name string) (Kind, error) {
	switch name {
	case "bool":
		return KindBool, nil
	case "int":
		return KindInt, nil
	case "uint":
		return KindUint, nil
	case "float":
		return KindFloat, nil
	case "string":
		return KindString, nil
	case "string_list":
		return KindStringList, nil
	case "int_list":
		return KindIntList, nil
	case "object":
		return KindObject, nil
	case "object_list":
		return KindObjectList, nil
	}
	return KindInvalid, Error.New("unknown field kind %q", name)
}
