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

// Package amcache provides a parser for Windows AMCache.hve registry
// hives. The AMCache records metadata on executed applications and
// installed programs. Every key of the hive yields a generic registry
// event carrying the key path and a summary of its values. The File
// branch additionally yields file entry events, the Programs branch
// program entry events, both timestamped from the values of the
// respective key.
package amcache

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/forensicanalysis/timeline"
	"github.com/forensicanalysis/timeline/goregistry"
	"github.com/forensicanalysis/timeline/goregistry/regf"
)

// Timestamp carrying value names of file reference and program keys.
const (
	compilationTimeValue  = "f"
	modificationTimeValue = "11"
	creationTimeValue     = "12"
	entryWriteTimeValue   = "17"
	installationTimeValue = "a"
)

// fileFields maps value names of a file reference key to file entry
// fields, in decoding order.
var fileFields = []struct {
	valueName string
	field     fileField
}{
	{"0", fileProductName},
	{"1", fileCompanyName},
	{"3", fileLanguageCode},
	{"5", fileFileVersion},
	{"6", fileFileSize},
	{"c", fileFileDescription},
	{"15", fileFullPath},
	{"100", fileProgramIdentifier},
	{"101", fileSHA1},
}

// programFields maps value names of a program key to program entry
// fields, in decoding order.
var programFields = []struct {
	valueName string
	field     programField
}{
	{"0", programName},
	{"1", programVersion},
	{"2", programPublisher},
	{"3", programLanguageCode},
	{"6", programEntryType},
	{"7", programUninstallKey},
	{"d", programFilePaths},
	{"f", programProductCode},
	{"10", programPackageCode},
	{"11", programMSIProductCode},
	{"12", programMSIPackageCode},
	{"Files", programFiles},
}

// Parser decodes AMCache.hve registry hives into events.
type Parser struct{}

// New creates an AMCache parser.
func New() *Parser {
	return &Parser{}
}

// Name returns the parser name.
func (p *Parser) Name() string {
	return "amcache"
}

// Format returns a description of the file format the parser decodes.
func (p *Parser) Format() string {
	return "AMCache Windows NT Registry (AMCache.hve) file"
}

// Parse reads r as a Windows NT registry file and produces events for
// all AMCache entries it contains.
func (p *Parser) Parse(r io.ReaderAt, sink timeline.Sink) error {
	hive, err := regf.Open(r)
	if err != nil {
		return errors.Wrap(err, "could not open hive")
	}
	p.ParseHive(hive, sink)
	return nil
}

// ParseHive produces events for all AMCache entries of an already
// parsed hive. A hive without a Root key yields a single warning and
// no events. Malformed values are reported as warnings and skipped,
// they never abort the remaining hive.
func (p *Parser) ParseHive(hive goregistry.Hive, sink timeline.Sink) {
	rootKey, ok := hive.Key("Root")
	if !ok {
		sink.ProduceWarning("Root key missing from AMCache.hve file.")
		return
	}
	p.parseRootKey(rootKey, sink)
}

// parseRootKey walks every branch under the Root key. Generic registry
// events are produced for the whole subtree of each branch before the
// File and Programs branches are decoded into their typed events.
func (p *Parser) parseRootKey(rootKey goregistry.Key, sink timeline.Sink) {
	keyPathSegments := []string{"", "Root"}
	p.produceRegistryEvent(rootKey, strings.Join(keyPathSegments, `\`), sink)

	for _, subKey := range rootKey.SubKeys() {
		keyPathSegments = append(keyPathSegments, subKey.Name())
		p.parseSubKey(subKey, keyPathSegments, sink)
		keyPathSegments = keyPathSegments[:len(keyPathSegments)-1]

		switch subKey.Name() {
		case "File":
			p.parseFileKey(subKey, sink)
		case "Programs":
			p.parseProgramsKey(subKey, sink)
		}
	}
}

// parseSubKey produces generic registry events for a key and all its
// descendants, parents before children.
func (p *Parser) parseSubKey(key goregistry.Key, keyPathSegments []string, sink timeline.Sink) {
	p.produceRegistryEvent(key, strings.Join(keyPathSegments, `\`), sink)

	for _, subKey := range key.SubKeys() {
		keyPathSegments = append(keyPathSegments, subKey.Name())
		p.parseSubKey(subKey, keyPathSegments, sink)
		keyPathSegments = keyPathSegments[:len(keyPathSegments)-1]
	}
}

func (p *Parser) produceRegistryEvent(key goregistry.Key, keyPath string, sink timeline.Sink) {
	data := &KeyEventData{
		KeyPath: keyPath,
		Values:  formatKeyValues(key, nil, sink),
	}
	sink.ProduceEvent(timeline.Event{
		Time:        key.LastWrittenTime(),
		Description: timeline.WrittenTime,
		Data:        data,
	})
}

// parseFileKey decodes the File branch. Its first level groups file
// reference keys by volume.
func (p *Parser) parseFileKey(fileKey goregistry.Key, sink timeline.Sink) {
	for _, volumeKey := range fileKey.SubKeys() {
		for _, fileReferenceKey := range volumeKey.SubKeys() {
			p.parseFileReferenceKey(fileReferenceKey, sink)
		}
	}
}

// parseFileReferenceKey decodes a single file entry. One event is
// produced per timestamp value present on the key, all sharing the
// same file entry record.
func (p *Parser) parseFileReferenceKey(fileReferenceKey goregistry.Key, sink timeline.Sink) {
	data := &FileEventData{
		FileReference: decodeFileReference(fileReferenceKey.Name()),
	}

	for _, entry := range fileFields {
		value, ok := goregistry.ValueByName(fileReferenceKey, entry.valueName)
		if !ok || len(value.Data()) == 0 {
			continue
		}

		decoded, err := decodeValue(value)
		if err != nil {
			warnValue(sink, value.Name(), err)
			continue
		}
		if entry.field == fileSHA1 {
			// The stored hash carries four leading zeros that are not
			// part of the SHA-1.
			if s, ok := decoded.(string); ok {
				decoded = strings.TrimPrefix(s, "0000")
			}
		}
		data.set(entry.field, decoded)
	}

	if value, ok := goregistry.ValueByName(fileReferenceKey, entryWriteTimeValue); ok {
		if t, ok := filetimeValue(value, sink); ok {
			sink.ProduceEvent(timeline.Event{Time: t, Description: timeline.ModificationTime, Data: data})
		}
	}
	if value, ok := goregistry.ValueByName(fileReferenceKey, creationTimeValue); ok {
		if t, ok := filetimeValue(value, sink); ok {
			sink.ProduceEvent(timeline.Event{Time: t, Description: timeline.CreationTime, Data: data})
		}
	}
	if value, ok := goregistry.ValueByName(fileReferenceKey, modificationTimeValue); ok {
		if t, ok := filetimeValue(value, sink); ok {
			sink.ProduceEvent(timeline.Event{Time: t, Description: timeline.ModificationTime, Data: data})
		}
	}
	if value, ok := goregistry.ValueByName(fileReferenceKey, compilationTimeValue); ok {
		if t, ok := posixValue(value, sink); ok {
			sink.ProduceEvent(timeline.Event{Time: t, Description: timeline.ChangeTime, Data: data})
		}
	}
}

// parseProgramsKey decodes the Programs branch, one program entry per
// direct subkey.
func (p *Parser) parseProgramsKey(programsKey goregistry.Key, sink timeline.Sink) {
	for _, programKey := range programsKey.SubKeys() {
		p.parseProgramKey(programKey, sink)
	}
}

// parseProgramKey decodes a single program entry. The event is only
// produced for programs that carry an installation time.
func (p *Parser) parseProgramKey(programKey goregistry.Key, sink timeline.Sink) {
	data := &ProgramEventData{}

	for _, entry := range programFields {
		value, ok := goregistry.ValueByName(programKey, entry.valueName)
		if !ok || len(value.Data()) == 0 {
			continue
		}

		decoded, err := decodeValue(value)
		if err != nil {
			warnValue(sink, value.Name(), err)
			continue
		}
		data.set(entry.field, decoded)
	}

	if value, ok := goregistry.ValueByName(programKey, installationTimeValue); ok {
		if t, ok := posixValue(value, sink); ok {
			sink.ProduceEvent(timeline.Event{Time: t, Description: timeline.InstallationTime, Data: data})
		}
	}
}

// decodeFileReference converts the name of a file reference key into
// its decimal display form. NTFS file references contain "0000"
// between the sequence number and the MFT entry and display as
// "entry-sequence", FAT file references are a single hexadecimal
// number. Names that do not parse yield no reference.
func decodeFileReference(name string) *string {
	if strings.Contains(name, "0000") {
		parts := strings.SplitN(name, "0000", 2)
		sequenceNumber, err := strconv.ParseUint(parts[0], 16, 64)
		if err != nil {
			return nil
		}
		mftEntry, err := strconv.ParseUint(parts[1], 16, 64)
		if err != nil {
			return nil
		}
		reference := fmt.Sprintf("%d-%d", mftEntry, sequenceNumber)
		return &reference
	}

	fileReference, err := strconv.ParseUint(name, 16, 64)
	if err != nil {
		return nil
	}
	reference := strconv.FormatUint(fileReference, 10)
	return &reference
}

// filetimeValue decodes a FILETIME timestamp value. Failures are
// reported as warnings and skip the corresponding event.
func filetimeValue(value goregistry.Value, sink timeline.Sink) (time.Time, bool) {
	ticks, err := decodeInteger(value)
	if err != nil {
		warnValue(sink, value.Name(), err)
		return time.Time{}, false
	}
	return timeline.FromFiletime(ticks), true
}

// posixValue decodes a 32-bit POSIX timestamp value. Failures are
// reported as warnings and skip the corresponding event.
func posixValue(value goregistry.Value, sink timeline.Sink) (time.Time, bool) {
	seconds, err := decodeInteger(value)
	if err != nil {
		warnValue(sink, value.Name(), err)
		return time.Time{}, false
	}
	if seconds > math.MaxUint32 {
		warnValue(sink, value.Name(), fmt.Errorf("%d does not fit a 32-bit POSIX timestamp", seconds))
		return time.Time{}, false
	}
	return timeline.FromPosixTime(uint32(seconds)), true
}
