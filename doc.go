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

// Package timeline decodes forensic artifact files into normalized,
// timestamped event streams for incident timeline reconstruction.
//
// The event model
//
// Every artifact decoder implements the Parser interface and follows the
// same conventions:
//     - A decoded record is paired with one instant and a description naming which source clock produced that instant. A record carrying several timestamps yields several events sharing the same record.
//     - Events and warnings are pushed into a Sink in traversal order as they are produced; they are never buffered, reordered or batched.
//     - Records implement the Data interface; the DataType tag is kept for serialization, consumers dispatch with a type switch.
//     - Decode faults are local. A fault at one record becomes a warning and never prevents the remaining records of the artifact from being decoded.
//
// Structure
//
// The repository layout:
//     timeline/
//     ├── goregistry    parsed Windows registry contract and in-memory trees
//     │   └── regf      registry hive file adapter
//     ├── amcache       AMCache.hve decoder (program and file execution traces)
//     ├── eventstore    sqlite backed event storage, query and validation
//     └── cmd           command line interface
package timeline
