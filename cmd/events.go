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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forensicanalysis/timeline/eventstore"
)

// Events is the timeline events commandline subcommand
func Events() *cobra.Command {
	var eventType, eventID, searchTerm string
	eventsCommand := &cobra.Command{
		Use:   "events <store>",
		Short: "Print stored events as JSON lines",
		Args:  requireOneStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := eventstore.Open(cmd.Flags().Args()[0])
			if err != nil {
				return err
			}
			defer store.Close()

			var events []eventstore.JSONEvent
			switch {
			case eventID != "":
				event, err := store.Get(eventID)
				if err != nil {
					return err
				}
				events = []eventstore.JSONEvent{event}
			case eventType != "":
				events, err = store.Select([]map[string]string{{"type": eventType}})
				if err != nil {
					return err
				}
			case searchTerm != "":
				events, err = store.Search(searchTerm)
				if err != nil {
					return err
				}
			default:
				events, err = store.All()
				if err != nil {
					return err
				}
			}

			for _, event := range events {
				fmt.Printf("%s\n", event)
			}
			return nil
		},
	}
	eventsCommand.Flags().StringVar(&eventType, "type", "", "only print events of this data type")
	eventsCommand.Flags().StringVar(&eventID, "id", "", "only print the event with this id")
	eventsCommand.Flags().StringVar(&searchTerm, "search", "", "full text search over all events")
	return eventsCommand
}
