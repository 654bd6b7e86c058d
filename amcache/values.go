/*
 * Copyright (c) 2020 Siemens AG
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 *
 * Author(s): Jonas Plum
 */

package amcache

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/forensicanalysis/timeline"
	"github.com/forensicanalysis/timeline/goregistry"
)

// byteCount is the decoded form of opaque value types such as
// REG_BINARY. Only the payload length is retained, never the bytes.
type byteCount int

// decodeValue converts a registry value payload into its semantic form:
// string for the text types, uint64 for the integer types, []string for
// multi strings and byteCount for everything else.
func decodeValue(value goregistry.Value) (interface{}, error) {
	data := value.Data()
	switch value.Type() {
	case goregistry.REG_SZ, goregistry.REG_EXPAND_SZ, goregistry.REG_LINK:
		s, err := goregistry.DecodeString(data)
		if err != nil {
			return nil, err
		}
		return s, nil
	case goregistry.REG_DWORD:
		v, err := goregistry.DecodeDword(data)
		if err != nil {
			return nil, err
		}
		return uint64(v), nil
	case goregistry.REG_DWORD_BIG_ENDIAN:
		v, err := goregistry.DecodeDwordBigEndian(data)
		if err != nil {
			return nil, err
		}
		return uint64(v), nil
	case goregistry.REG_QWORD:
		v, err := goregistry.DecodeQword(data)
		if err != nil {
			return nil, err
		}
		return v, nil
	case goregistry.REG_MULTI_SZ:
		elements, err := goregistry.DecodeMultiString(data)
		if err != nil {
			return nil, err
		}
		return elements, nil
	default:
		return byteCount(len(data)), nil
	}
}

// decodeInteger reads an integer typed value, rejecting other kinds.
func decodeInteger(value goregistry.Value) (uint64, error) {
	decoded, err := decodeValue(value)
	if err != nil {
		return 0, err
	}
	v, ok := decoded.(uint64)
	if !ok {
		return 0, fmt.Errorf("%s value is not an integer", value.Type())
	}
	return v, nil
}

func asText(value interface{}) *string {
	if s, ok := value.(string); ok {
		return &s
	}
	return nil
}

func asInteger(value interface{}) *uint64 {
	if v, ok := value.(uint64); ok {
		return &v
	}
	return nil
}

func asTextList(value interface{}) []string {
	switch value := value.(type) {
	case []string:
		return value
	case string:
		return []string{value}
	}
	return nil
}

// warnValue reports a value that could not be read. The value is
// treated as absent afterwards, decoding continues.
func warnValue(sink timeline.Sink, name string, err error) {
	sink.ProduceWarning(fmt.Sprintf(
		"Unable to read data from value: %s with error: %v", name, err))
}

// formatKeyValues renders the values of a key into the deterministic
// summary carried by generic registry events. Entries are sorted by the
// displayed value name, independent of the source order. The default
// value displays as "(default)", values without payload as "(empty)",
// multi strings as "[a, b]" and opaque payloads as "(N bytes)". Values
// named in namesToSkip are left out, compared case insensitively
// against the displayed name. A key without displayable values yields
// the empty string.
func formatKeyValues(key goregistry.Key, namesToSkip []string, sink timeline.Sink) string {
	skip := make(map[string]bool, len(namesToSkip))
	for _, name := range namesToSkip {
		skip[strings.ToLower(name)] = true
	}

	rendered := map[string]string{}
	for _, value := range key.Values() {
		name := value.Name()
		if name == "" {
			name = "(default)"
		}
		if skip[strings.ToLower(name)] {
			continue
		}

		if len(value.Data()) == 0 {
			rendered[name] = "(empty)"
			continue
		}

		decoded, err := decodeValue(value)
		if err != nil {
			warnValue(sink, value.Name(), err)
			continue
		}
		switch decoded := decoded.(type) {
		case string:
			rendered[name] = decoded
		case uint64:
			rendered[name] = strconv.FormatUint(decoded, 10)
		case []string:
			rendered[name] = "[" + strings.Join(decoded, ", ") + "]"
		case byteCount:
			rendered[name] = fmt.Sprintf("(%d bytes)", decoded)
		}
	}

	names := make([]string, 0, len(rendered))
	for name := range rendered {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]string, 0, len(names))
	for _, name := range names {
		entries = append(entries, name+": "+rendered[name])
	}
	return strings.Join(entries, " ")
}
