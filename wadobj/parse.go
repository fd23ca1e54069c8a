// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package wadobj

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"
)

// typeKey tags every serialized object with its type hash.
const typeKey = "$__type"

// ParseFile reads one decoded archive entry from a dump file.
func ParseFile(path string) (*Object, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() { _ = file.Close() }()
	return Parse(file)
}

// Parse reads one decoded archive entry. The root must be a tagged object.
func Parse(r io.Reader) (*Object, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, Error.New("malformed dump: %v", err)
	}

	value, err := convert(raw, 0)
	if err != nil {
		return nil, err
	}
	obj, ok := value.(*Object)
	if !ok {
		return nil, Error.New("dump root is not a tagged object")
	}
	return obj, nil
}

func convert(raw any, depth int) (Value, error) {
	if depth > MaxDepth {
		return nil, Error.New("nesting deeper than %d levels", MaxDepth)
	}

	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool, string:
		return v, nil
	case json.Number:
		return convertNumber(v)
	case []any:
		list := make(List, 0, len(v))
		for _, item := range v {
			converted, err := convert(item, depth+1)
			if err != nil {
				return nil, err
			}
			list = append(list, converted)
		}
		return list, nil
	case map[string]any:
		return convertObject(v, depth)
	}
	return nil, Error.New("unsupported value of type %T", raw)
}

func convertObject(raw map[string]any, depth int) (*Object, error) {
	tag, ok := raw[typeKey]
	if !ok {
		return nil, Error.New("object missing %q tag", typeKey)
	}
	number, ok := tag.(json.Number)
	if !ok {
		return nil, Error.New("object tag %q is not numeric", typeKey)
	}
	hash, err := parseHash(number)
	if err != nil {
		return nil, Error.New("object tag %q has invalid hash %v", typeKey, tag)
	}

	obj := &Object{
		TypeHash: hash,
		Fields:   make(map[string]Value, len(raw)-1),
	}
	for name, value := range raw {
		if name == typeKey {
			continue
		}
		if strings.HasPrefix(name, "$") {
			// other serializer-internal keys are dropped
			continue
		}
		converted, err := convert(value, depth+1)
		if err != nil {
			return nil, err
		}
		obj.Fields[name] = converted
	}
	return obj, nil
}

// parseHash accepts the full unsigned range, since type hashes above
// 1<<63 appear in the dumps and the type list alike.
func parseHash(number json.Number) (uint64, error) {
	if i, err := number.Int64(); err == nil {
		if i <= 0 {
			return 0, Error.New("hash out of range")
		}
		return uint64(i), nil
	}
	return strconv.ParseUint(number.String(), 10, 64)
}

func convertNumber(number json.Number) (Value, error) {
	if !strings.ContainsAny(number.String(), ".eE") {
		if i, err := number.Int64(); err == nil {
			return i, nil
		}
		// out of int64 range, the dump writes unsigned hashes this large
		if u, err := strconv.ParseUint(number.String(), 10, 64); err == nil {
			return u, nil
		}
	}
	f, err := number.Float64()
	if err != nil {
		return nil, Error.New("unparsable number %q", number.String())
	}
	return f, nil
}
