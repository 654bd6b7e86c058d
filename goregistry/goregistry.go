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

// Package goregistry defines the parsed Windows registry tree that
// artifact decoders consume. The tree is read only: keys expose their
// name, last written time and ordered values and sub keys, values expose
// their name, type tag and raw payload. Interpreting the payload is the
// consumer's concern; this package only supplies the strict UTF-16LE and
// integer codecs registry payloads are encoded with. The in-memory
// implementation builds trees for tests and synthetic inputs, real hive
// files are opened with the regf sub package.
package goregistry

import (
	"strconv"
	"time"
)

// ValueType identifies how a registry value's raw payload is
// interpreted. The constants carry the wire values of the Windows
// registry value types.
type ValueType uint32

const (
	REG_NONE ValueType = iota
	REG_SZ
	REG_EXPAND_SZ
	REG_BINARY
	REG_DWORD
	REG_DWORD_BIG_ENDIAN
	REG_LINK
	REG_MULTI_SZ
	REG_RESOURCE_LIST
	REG_FULL_RESOURCE_DESCRIPTOR
	REG_RESOURCE_REQUIREMENTS_LIST
	REG_QWORD
)

func (t ValueType) String() string {
	switch t {
	case REG_NONE:
		return "REG_NONE"
	case REG_SZ:
		return "REG_SZ"
	case REG_EXPAND_SZ:
		return "REG_EXPAND_SZ"
	case REG_BINARY:
		return "REG_BINARY"
	case REG_DWORD:
		return "REG_DWORD"
	case REG_DWORD_BIG_ENDIAN:
		return "REG_DWORD_BIG_ENDIAN"
	case REG_LINK:
		return "REG_LINK"
	case REG_MULTI_SZ:
		return "REG_MULTI_SZ"
	case REG_RESOURCE_LIST:
		return "REG_RESOURCE_LIST"
	case REG_FULL_RESOURCE_DESCRIPTOR:
		return "REG_FULL_RESOURCE_DESCRIPTOR"
	case REG_RESOURCE_REQUIREMENTS_LIST:
		return "REG_RESOURCE_REQUIREMENTS_LIST"
	case REG_QWORD:
		return "REG_QWORD"
	default:
		return strconv.FormatUint(uint64(t), 10)
	}
}

// Hive is a parsed registry tree.
type Hive interface {
	// Key looks up a key by its backslash separated path below the hive
	// root. The empty path addresses the root key itself. The second
	// return value is false if any path segment is missing.
	Key(path string) (Key, bool)
}

// Key is one node of a parsed registry tree. Implementations are read
// only; consumers never mutate a key.
type Key interface {
	Name() string
	LastWrittenTime() time.Time
	// Values returns the key's values in source order.
	Values() []Value
	// SubKeys returns the key's child keys in source order.
	SubKeys() []Key
}

// Value is a single registry value. An empty name denotes the default
// value of its key. Data returns the raw payload, which may be nil for
// values without data.
type Value interface {
	Name() string
	Type() ValueType
	Data() []byte
}

// ValueByName finds a value of key by exact, case sensitive name.
func ValueByName(key Key, name string) (Value, bool) {
	for _, value := range key.Values() {
		if value.Name() == name {
			return value, true
		}
	}
	return nil, false
}
