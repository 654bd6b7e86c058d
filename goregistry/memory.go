// Copyright (c) 2019 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

package goregistry

import (
	"strings"
	"time"
)

// MemoryKey is an in-memory Key for building synthetic registry trees.
type MemoryKey struct {
	name        string
	lastWritten time.Time
	values      []Value
	subKeys     []Key
}

// NewKey returns a key with the given name and last written time.
func NewKey(name string, lastWritten time.Time) *MemoryKey {
	return &MemoryKey{name: name, lastWritten: lastWritten}
}

func (k *MemoryKey) Name() string               { return k.name }
func (k *MemoryKey) LastWrittenTime() time.Time { return k.lastWritten }
func (k *MemoryKey) Values() []Value            { return k.values }
func (k *MemoryKey) SubKeys() []Key             { return k.subKeys }

// AddSubKey appends sub to the ordered child list.
func (k *MemoryKey) AddSubKey(sub Key) {
	k.subKeys = append(k.subKeys, sub)
}

// AddValue appends value to the ordered value list.
func (k *MemoryKey) AddValue(value Value) {
	k.values = append(k.values, value)
}

type memoryHive struct {
	root Key
}

// NewHive returns a Hive serving lookups from an in-memory key tree.
// Path segments match key names case insensitively, following Windows
// registry semantics.
func NewHive(root Key) Hive {
	return memoryHive{root: root}
}

func (h memoryHive) Key(path string) (Key, bool) {
	key := h.root
	for _, segment := range strings.Split(path, `\`) {
		if segment == "" {
			continue
		}
		var next Key
		for _, sub := range key.SubKeys() {
			if strings.EqualFold(sub.Name(), segment) {
				next = sub
				break
			}
		}
		if next == nil {
			return nil, false
		}
		key = next
	}
	return key, true
}

type memoryValue struct {
	name string
	typ  ValueType
	data []byte
}

func (v memoryValue) Name() string    { return v.name }
func (v memoryValue) Type() ValueType { return v.typ }
func (v memoryValue) Data() []byte    { return v.data }

// NewValue returns a value with a raw payload. It is the escape hatch
// for payloads the typed constructors cannot produce, for example
// intentionally truncated ones.
func NewValue(name string, typ ValueType, data []byte) Value {
	return memoryValue{name: name, typ: typ, data: data}
}

// NewStringValue returns a REG_SZ value.
func NewStringValue(name, s string) Value {
	return memoryValue{name: name, typ: REG_SZ, data: EncodeString(s)}
}

// NewMultiStringValue returns a REG_MULTI_SZ value.
func NewMultiStringValue(name string, elements []string) Value {
	return memoryValue{name: name, typ: REG_MULTI_SZ, data: EncodeMultiString(elements)}
}

// NewDwordValue returns a REG_DWORD value.
func NewDwordValue(name string, v uint32) Value {
	return memoryValue{name: name, typ: REG_DWORD, data: EncodeDword(v)}
}

// NewQwordValue returns a REG_QWORD value.
func NewQwordValue(name string, v uint64) Value {
	return memoryValue{name: name, typ: REG_QWORD, data: EncodeQword(v)}
}

// NewBinaryValue returns a REG_BINARY value.
func NewBinaryValue(name string, data []byte) Value {
	return memoryValue{name: name, typ: REG_BINARY, data: data}
}
