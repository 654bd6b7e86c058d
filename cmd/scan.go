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

package cmd

import (
	"log"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/imdario/mergo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/timeline/eventstore"
)

// ScanOptions configure a directory scan. Unset fields fall back to
// the defaults.
type ScanOptions struct {
	Store    string
	Parsers  []string
	Patterns map[string][]string
}

// DefaultScanOptions returns the default scan configuration: all
// parsers, each looking at its artifact's well known locations.
func DefaultScanOptions() ScanOptions {
	var names []string
	for name := range Parsers() {
		names = append(names, name)
	}
	sort.Strings(names)

	return ScanOptions{
		Store:   "timeline.db",
		Parsers: names,
		Patterns: map[string][]string{
			"amcache": {"**/Amcache.hve", "**/AMCache.hve", "**/amcache.hve"},
		},
	}
}

// Scan is the timeline scan commandline subcommand
func Scan() *cobra.Command {
	options := ScanOptions{}
	scanCommand := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Decode all artifact files found in a directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := mergo.Merge(&options, DefaultScanOptions()); err != nil {
				return err
			}
			return scanDirectory(afero.NewOsFs(), cmd.Flags().Args()[0], options)
		},
	}
	scanCommand.Flags().StringVar(&options.Store, "store", "", "event store to create (default timeline.db)")
	scanCommand.Flags().StringSliceVar(&options.Parsers, "parser", nil, "parsers to run (default all)")
	return scanCommand
}

// scanDirectory decodes every matching artifact below dir into a new
// event store. Artifacts that cannot be decoded are logged and
// skipped, a single damaged file does not end the scan.
func scanDirectory(fs afero.Fs, dir string, options ScanOptions) error {
	store, err := eventstore.New(options.Store)
	if err != nil {
		return err
	}

	parsers := Parsers()
	base := afero.NewBasePathFs(fs, dir)
	src := afero.NewIOFS(base)

	decoded := 0
	for _, name := range options.Parsers {
		parser, ok := parsers[name]
		if !ok {
			log.Printf("unknown parser %s", name)
			continue
		}

		// patterns may overlap, decode every artifact only once
		seen := map[string]bool{}
		for _, pattern := range options.Patterns[name] {
			matches, err := doublestar.Glob(src, pattern)
			if err != nil {
				log.Printf("could not glob %s: %s", pattern, err)
				continue
			}

			for _, match := range matches {
				if seen[match] {
					continue
				}
				seen[match] = true

				log.Printf("Decoding %s", match)
				file, err := base.Open(match)
				if err != nil {
					log.Printf("could not open %s: %s", match, err)
					continue
				}
				if err := parser.Parse(file, store); err != nil {
					log.Printf("could not decode %s: %s", match, err)
				} else {
					decoded++
				}
				if err := file.Close(); err != nil {
					log.Println(err)
				}
			}
		}
	}

	log.Printf("Decoded %d artifacts into %s", decoded, options.Store)
	return store.Close()
}
