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
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/timeline"
	"github.com/forensicanalysis/timeline/eventstore"
)

// Decode is the timeline decode commandline subcommand
func Decode() *cobra.Command {
	var parserName, storeName string
	decodeCommand := &cobra.Command{
		Use:   "decode <artifact>",
		Short: "Decode a single artifact file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, ok := Parsers()[parserName]
			if !ok {
				return fmt.Errorf("unknown parser %s", parserName)
			}

			file, err := afero.NewOsFs().Open(cmd.Flags().Args()[0])
			if err != nil {
				return err
			}
			defer file.Close()

			if storeName == "" {
				return parser.Parse(file, &printSink{})
			}

			store, err := eventstore.New(storeName)
			if err != nil {
				return err
			}
			err = parser.Parse(file, store)
			if closeErr := store.Close(); err == nil {
				err = closeErr
			}
			return err
		},
	}
	decodeCommand.Flags().StringVar(&parserName, "parser", "amcache", "parser to decode the artifact with")
	decodeCommand.Flags().StringVar(&storeName, "store", "", "write events into this store instead of stdout")
	return decodeCommand
}

// printSink writes events to standard output as JSON lines and
// warnings to the log.
type printSink struct{}

func (*printSink) ProduceEvent(event timeline.Event) {
	b, err := json.Marshal(eventstore.Element(event))
	if err != nil {
		log.Printf("could not marshal event: %s", err)
		return
	}
	fmt.Printf("%s\n", b)
}

func (*printSink) ProduceWarning(message string) {
	log.Printf("warning: %s", message)
}
