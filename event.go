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

package timeline

import (
	"io"
	"time"
)

// Timestamp descriptions shared by all artifact decoders. Registry
// last written times serialize under the same description as content
// modifications, matching the established timeline vocabulary.
const (
	CreationTime     = "Creation Time"
	ModificationTime = "Content Modification Time"
	ChangeTime       = "Metadata Modification Time"
	WrittenTime      = "Content Modification Time"
	InstallationTime = "Installation Time"
)

// Data is the typed payload of an event. Implementations are plain
// records whose optional fields stay unset unless the source artifact
// explicitly provides them. DataType returns the tag used for
// serialization and downstream routing.
type Data interface {
	DataType() string
}

// Event pairs one record with one normalized UTC instant and the
// description of the source clock that produced it. A record carrying
// several timestamps yields several events sharing the same Data.
type Event struct {
	Time        time.Time
	Description string
	Data        Data
}

// Sink receives events and warnings in the order a decoder produces
// them. Decode faults never abort a traversal, so Sink methods do not
// return errors; a failing sink handles its own faults. Sinks shared
// between concurrently decoded artifacts must be safe for concurrent
// use.
type Sink interface {
	ProduceEvent(event Event)
	ProduceWarning(message string)
}

// Parser decodes a single artifact format into events.
type Parser interface {
	// Name is the short identifier the parser is selected by.
	Name() string
	// Format describes the decoded artifact format.
	Format() string
	// Parse decodes one artifact file, pushing events and warnings into
	// sink as they are produced. It returns an error only if the
	// artifact container cannot be opened. Faults behind a readable
	// container surface as warnings and the traversal runs to
	// completion.
	Parse(r io.ReaderAt, sink Sink) error
}
