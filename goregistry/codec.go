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

package goregistry

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// DecodeString interprets data as UTF-16LE text. Trailing NUL
// terminators are trimmed. Payloads with an odd number of bytes are
// rejected.
func DecodeString(data []byte) (string, error) {
	codes, err := decodeCodeUnits(data)
	if err != nil {
		return "", err
	}
	n := len(codes)
	for n > 0 && codes[n-1] == 0 {
		n--
	}
	return string(utf16.Decode(codes[:n])), nil
}

// DecodeMultiString interprets data as a UTF-16LE string list: every
// element is NUL terminated and an empty element terminates the list.
// Payloads with an odd number of bytes or without the terminating empty
// element are rejected.
func DecodeMultiString(data []byte) ([]string, error) {
	codes, err := decodeCodeUnits(data)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return []string{}, nil
	}
	if codes[len(codes)-1] != 0 {
		return nil, fmt.Errorf("string list is not terminated")
	}

	elements := []string{}
	start := 0
	terminated := false
	for i, code := range codes {
		if code != 0 {
			continue
		}
		if i == start {
			terminated = true
			break
		}
		elements = append(elements, string(utf16.Decode(codes[start:i])))
		start = i + 1
	}
	if !terminated {
		return nil, fmt.Errorf("string list is not terminated")
	}
	return elements, nil
}

// DecodeDword decodes a little endian 32 bit integer. The payload must
// be exactly 4 bytes.
func DecodeDword(data []byte) (uint32, error) {
	if len(data) != 4 {
		return 0, fmt.Errorf("dword payload has %d bytes, want 4", len(data))
	}
	return binary.LittleEndian.Uint32(data), nil
}

// DecodeDwordBigEndian decodes a big endian 32 bit integer. The payload
// must be exactly 4 bytes.
func DecodeDwordBigEndian(data []byte) (uint32, error) {
	if len(data) != 4 {
		return 0, fmt.Errorf("dword payload has %d bytes, want 4", len(data))
	}
	return binary.BigEndian.Uint32(data), nil
}

// DecodeQword decodes a little endian 64 bit integer. The payload must
// be exactly 8 bytes.
func DecodeQword(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("qword payload has %d bytes, want 8", len(data))
	}
	return binary.LittleEndian.Uint64(data), nil
}

// EncodeString encodes s as NUL terminated UTF-16LE text.
func EncodeString(s string) []byte {
	codes := append(utf16.Encode([]rune(s)), 0)
	return encodeCodeUnits(codes)
}

// EncodeMultiString encodes elements as a UTF-16LE string list, each
// element NUL terminated, the list terminated by an empty element.
func EncodeMultiString(elements []string) []byte {
	if len(elements) == 0 {
		return []byte{0, 0, 0, 0}
	}
	var codes []uint16
	for _, element := range elements {
		codes = append(codes, utf16.Encode([]rune(element))...)
		codes = append(codes, 0)
	}
	codes = append(codes, 0)
	return encodeCodeUnits(codes)
}

// EncodeDword encodes v as a little endian 32 bit integer.
func EncodeDword(v uint32) []byte {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, v)
	return data
}

// EncodeQword encodes v as a little endian 64 bit integer.
func EncodeQword(v uint64) []byte {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, v)
	return data
}

func decodeCodeUnits(data []byte) ([]uint16, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("utf16 payload has odd length %d", len(data))
	}
	codes := make([]uint16, len(data)/2)
	for i := range codes {
		codes[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	return codes, nil
}

func encodeCodeUnits(codes []uint16) []byte {
	data := make([]byte, 2*len(codes))
	for i, code := range codes {
		binary.LittleEndian.PutUint16(data[2*i:], code)
	}
	return data
}
