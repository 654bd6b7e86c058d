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

// Package regf opens binary registry hive files (regf format) and
// serves them through the goregistry contract. The hive format parsing
// itself is owned by the regparser library, this package only adapts
// its key and value nodes.
package regf

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"www.velocidex.com/golang/regparser"

	"github.com/forensicanalysis/timeline/goregistry"
)

// Open parses the registry hive in r. The reader must stay usable for
// the lifetime of the returned Hive, keys and values are read lazily.
func Open(r io.ReaderAt) (goregistry.Hive, error) {
	registry, err := regparser.NewRegistry(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse hive")
	}
	return &hive{registry: registry}, nil
}

type hive struct {
	registry *regparser.Registry
}

func (h *hive) Key(path string) (goregistry.Key, bool) {
	node := h.registry.OpenKey(path)
	if node == nil {
		return nil, false
	}
	return key{node: node}, true
}

type key struct {
	node *regparser.CM_KEY_NODE
}

func (k key) Name() string {
	return k.node.Name()
}

func (k key) LastWrittenTime() time.Time {
	return k.node.LastWriteTime().Time.UTC()
}

func (k key) Values() []goregistry.Value {
	var values []goregistry.Value
	for _, v := range k.node.Values() {
		values = append(values, &value{node: v})
	}
	return values
}

func (k key) SubKeys() []goregistry.Key {
	var subKeys []goregistry.Key
	for _, sub := range k.node.Subkeys() {
		subKeys = append(subKeys, key{node: sub})
	}
	return subKeys
}

type value struct {
	node *regparser.CM_KEY_VALUE
	data *regparser.ValueData
}

// valueData caches the parsed payload, regparser rereads it on every
// call otherwise.
func (v *value) valueData() *regparser.ValueData {
	if v.data == nil {
		v.data = v.node.ValueData()
	}
	return v.data
}

func (v *value) Name() string {
	return v.node.ValueName()
}

func (v *value) Type() goregistry.ValueType {
	return goregistry.ValueType(v.valueData().Type)
}

func (v *value) Data() []byte {
	return v.valueData().Data
}
