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

// Package timeline implements the timeline command line tool that
// decodes forensic artifacts into searchable event stores.
//     decode    Decode a single artifact file
//     scan      Decode all artifact files found in a directory tree
//     events    Print stored events as JSON lines
//     validate  Validate all stored events
//
// Usage
//
// Decode an AMCache hive to standard output
//     timeline decode Amcache.hve
// Decode it into an event store
//     timeline decode --store events.db Amcache.hve
// Scan a mounted image and store all findings
//     timeline scan --store events.db /mnt/image
// Query the store
//     timeline events --type windows:registry:amcache events.db
//     timeline events --search firefox events.db
// Validate the store
//     timeline validate events.db
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forensicanalysis/timeline/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "timeline",
		Short: "Decode forensic artifacts into searchable event stores",
	}
	rootCmd.AddCommand(cmd.Decode(), cmd.Scan(), cmd.Events(), cmd.Validate())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
