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

// Package eventstore persists timeline events as JSON documents in a
// single searchable sqlite file. Every event is kept in one full text
// indexed table; per data type views expose the flattened fields as
// columns for ad hoc SQL. The store implements timeline.Sink, so
// decoders can produce straight into it.
package eventstore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"crawshaw.io/sqlite"
	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/forensicanalysis/timeline"
)

const storeVersion = 1
const timelineApplicationID = 1702260340 // "evnt"
const discriminator = "type"

// JSONEvent is a single entry in the database.
type JSONEvent []byte

// The Store is a single file collecting the events of one investigated
// system. Decoded artifact events, extraction warnings and any other
// piece of timeline information is stored in it and it serves as the
// single source of truth for later analysis.
type Store struct {
	cursor       *sqlite.Conn
	types        *typeMap
	produceMutex sync.Mutex
	produceErr   error
}

var ErrStoreExists = fmt.Errorf("store already exists")
var ErrStoreNotExists = fmt.Errorf("store does not exist")

// New creates a new event store.
func New(url string) (*Store, error) {
	return open(url, true)
}

// Open opens an existing event store.
func Open(url string) (*Store, error) {
	return open(url, false)
}

func pragma(conn *sqlite.Conn, name string) (int64, error) {
	stmt, err := conn.Prepare("PRAGMA " + name)
	if err != nil {
		return 0, err
	}
	_, err = stmt.Step()
	if err != nil {
		return 0, err
	}
	i := stmt.GetInt64(name)
	return i, stmt.Finalize()
}

func setPragma(conn *sqlite.Conn, name string, i int64) error {
	stmt, err := conn.Prepare("PRAGMA " + name + " = " + fmt.Sprint(i))
	if err != nil {
		return err
	}
	_, err = stmt.Step()
	if err != nil {
		return err
	}
	return stmt.Finalize()
}

func open(url string, create bool) (*Store, error) { // nolint:gocyclo
	if url != ":memory:" {
		url = strings.TrimRight(url, "/")

		exists := true
		_, err := os.Stat(url)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			exists = false
		}

		if create && exists {
			return nil, ErrStoreExists
		}
		if !create && !exists {
			return nil, ErrStoreNotExists
		}

		if create {
			err = os.MkdirAll(path.Dir(url), 0750)
			if err != nil {
				return nil, err
			}

			log.Printf("Creating store %s", url)
			_, err := os.Create(url)
			if err != nil {
				return nil, err
			}
		}
	}

	store := &Store{}

	var err error
	store.cursor, err = sqlite.OpenConn(url, 0)
	if err != nil {
		return nil, err
	}

	if create {
		err = setPragma(store.cursor, "application_id", timelineApplicationID)
		if err != nil {
			return nil, err
		}

		err = setPragma(store.cursor, "user_version", storeVersion)
		if err != nil {
			return nil, err
		}

		err = store.exec("CREATE VIRTUAL TABLE `events` " +
			"USING fts5(id UNINDEXED, json, insert_time UNINDEXED, tokenize=\"unicode61 tokenchars '\\/.'\")")
		if err != nil {
			return nil, err
		}
	} else {
		applicationID, err := pragma(store.cursor, "application_id")
		if err != nil {
			return nil, err
		}
		if applicationID != timelineApplicationID {
			msg := "wrong file format (application_id is %d, requires %d)"
			return nil, fmt.Errorf(msg, applicationID, timelineApplicationID)
		}

		version, err := pragma(store.cursor, "user_version")
		if err != nil {
			return nil, err
		}
		if version != storeVersion {
			msg := "wrong file format (user_version is %d, requires %d)"
			return nil, fmt.Errorf(msg, version, storeVersion)
		}
	}

	store.types = newTypeMap()
	err = store.setupTypes()
	if err != nil {
		return nil, err
	}

	if err := registerSchemas(); err != nil {
		return nil, err
	}

	return store, nil
}

/* ################################
#   API
################################ */

// Insert adds a single event.
func (store *Store) Insert(event JSONEvent) (string, error) {
	// validate event
	valErr, err := validateSchema(event)
	if err != nil {
		return "", errors.Wrap(err, "validation failed")
	}
	if len(valErr) > 0 {
		return "", fmt.Errorf("event could not be validated [%s]", strings.Join(valErr, ","))
	}

	// unmarshal event
	nestedEvent := map[string]interface{}{}
	err = json.Unmarshal(event, &nestedEvent)
	if err != nil {
		return "", err
	}

	// flatten event
	flatEvent, err := flatten(nestedEvent)
	if err != nil {
		return "", errors.Wrap(err, "could not flatten event")
	}

	eventType, ok := flatEvent[discriminator]
	if !ok {
		return "", errors.New("event requires type")
	}
	if _, ok := flatEvent[eventType.(string)]; ok {
		return "", fmt.Errorf("event must not contain a field '%s'", eventType)
	}
	id, ok := flatEvent["id"]
	if !ok {
		id = eventType.(string) + "--" + uuid.New().String()
		nestedEvent["id"] = id
		flatEvent["id"] = id

		event, err = json.Marshal(nestedEvent)
		if err != nil {
			return "", err
		}
	}

	store.types.addAll(eventType.(string), flatEvent)

	// insert into events table
	query := "INSERT INTO `events` (id, json, insert_time) VALUES ($id, $json, $time)"
	stmt, err := store.cursor.Prepare(query)
	if err != nil {
		return "", errors.Wrap(err, fmt.Sprintf("could not prepare statement %s", query))
	}
	stmt.SetText("$id", id.(string))
	stmt.SetText("$json", string(event))
	stmt.SetText("$time", time.Now().Format("2006-01-02T15:04:05.000Z"))
	_, err = stmt.Step()
	if err != nil {
		return "", errors.Wrap(err, fmt.Sprint("could not exec statement", query))
	}

	return id.(string), nil
}

// InsertBatch adds a set of events.
func (store *Store) InsertBatch(events []JSONEvent) ([]string, error) {
	if len(events) == 0 {
		return nil, nil
	}
	var ids []string
	for _, event := range events {
		id, err := store.Insert(event)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// InsertStruct converts a Go struct to a map and inserts it.
func (store *Store) InsertStruct(event interface{}) (string, error) {
	ids, err := store.InsertStructBatch([]interface{}{event})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// InsertStructBatch adds a list of structs to the event store.
func (store *Store) InsertStructBatch(events []interface{}) ([]string, error) {
	var ms []JSONEvent
	for _, event := range events {
		m := structs.Map(event)
		m = lower(m).(map[string]interface{})
		b, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		ms = append(ms, b)
	}

	return store.InsertBatch(ms)
}

/* ################################
#   timeline.Sink
################################ */

// Element lowers a decoded event into its JSON document form: the
// record fields in snake case, the data type under "type", the
// normalized instant under "datetime" and the timestamp description
// under "timestamp_desc".
func Element(event timeline.Event) map[string]interface{} {
	element := lower(structs.Map(event.Data)).(map[string]interface{})
	element[discriminator] = event.Data.DataType()
	element["datetime"] = event.Time.UTC().Format(time.RFC3339Nano)
	element["timestamp_desc"] = event.Description
	return element
}

// ProduceEvent stores a decoded event as a JSON document of its data
// type. It is safe for concurrent use; the first failure is returned
// by Close.
func (store *Store) ProduceEvent(event timeline.Event) {
	store.produce(Element(event))
}

// ProduceWarning stores an extraction warning. It is safe for
// concurrent use; the first failure is returned by Close.
func (store *Store) ProduceWarning(message string) {
	store.produce(map[string]interface{}{
		discriminator: "extraction_warning",
		"message":     message,
	})
}

func (store *Store) produce(element map[string]interface{}) {
	store.produceMutex.Lock()
	defer store.produceMutex.Unlock()

	b, err := json.Marshal(element)
	if err == nil {
		_, err = store.Insert(b)
	}
	if err != nil && store.produceErr == nil {
		store.produceErr = err
	}
}

/* ################################
#   Query
################################ */

// Get retrieves a single event.
func (store *Store) Get(id string) (event JSONEvent, err error) {
	stmt, err := store.cursor.Prepare("SELECT json FROM `events` WHERE id=?")
	if err != nil {
		return nil, err
	}

	stmt.BindText(1, id)

	events, err := store.rowsToEvents(stmt)
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		return events[0], nil
	}
	return nil, errors.New("event does not exist")
}

// Query executes a sql query.
func (store *Store) Query(query string) (events []JSONEvent, err error) {
	stmt, err := store.cursor.Prepare(query)
	if err != nil {
		return nil, err
	}

	return store.rowsToEvents(stmt)
}

// Select retrieves all events matching any of the conditions, each a
// conjunction of field LIKE patterns.
func (store *Store) Select(conditions []map[string]string) (events []JSONEvent, err error) {
	var ors []string
	for _, condition := range conditions {
		var ands []string
		for key, value := range condition {
			ands = append(ands, fmt.Sprintf("json_extract(json, '$.%s') LIKE '%s'", key, value))
		}
		sort.Strings(ands)
		if len(ands) > 0 {
			ors = append(ors, "("+strings.Join(ands, " AND ")+")")
		}
	}

	query := "SELECT json FROM \"events\""
	if len(ors) > 0 {
		query += fmt.Sprintf(" WHERE %s", strings.Join(ors, " OR ")) // #nosec
	}

	stmt, err := store.cursor.Prepare(query) // #nosec
	if err != nil {
		return nil, err
	}

	return store.rowsToEvents(stmt)
}

// Search runs a full text query over all events.
func (store *Store) Search(q string) (events []JSONEvent, err error) {
	stmt, err := store.cursor.Prepare("SELECT json FROM events WHERE events MATCH $query")
	if err != nil {
		return nil, err
	}
	stmt.SetText("$query", q)
	return store.rowsToEvents(stmt)
}

// All returns every event.
func (store *Store) All() (events []JSONEvent, err error) {
	return store.Select(nil)
}

/* ################################
#   Validate
################################ */

// Validate checks all stored events for schema violations and
// malformed timestamps.
func (store *Store) Validate() (flaws []string, err error) {
	flaws = []string{}

	events, err := store.All()
	if err != nil {
		return nil, err
	}
	for _, event := range events {
		valErr, err := validateSchema(event)
		if err != nil {
			return nil, err
		}
		flaws = append(flaws, valErr...)

		if datetime := gjson.GetBytes(event, "datetime"); datetime.Exists() {
			if _, err := time.Parse(time.RFC3339Nano, datetime.String()); err != nil {
				id := gjson.GetBytes(event, "id").String()
				flaws = append(flaws, fmt.Sprintf("invalid datetime in %s", id))
			}
		}
	}
	return flaws, nil
}

// Close saves and closes the database. It returns the first failure a
// produced event or warning encountered, if any.
func (store *Store) Close() error {
	if store.types.changed {
		if err := store.createViews(); err != nil {
			log.Println(err)
		}
	}

	err := store.cursor.Close()

	store.produceMutex.Lock()
	defer store.produceMutex.Unlock()
	if store.produceErr != nil {
		return store.produceErr
	}
	return err
}

/* ################################
#   Intern
################################ */

func (store *Store) createViews() error {
	for typeName, fields := range store.types.all() {
		err := store.exec(fmt.Sprintf("DROP VIEW IF EXISTS '%s'", typeName))
		if err != nil {
			return err
		}
		var columns []string
		for field := range fields {
			columns = append(columns, fmt.Sprintf("json_extract(json, '$.%s') as '%s'", field, field))
		}
		sort.Strings(columns)
		err = store.exec(
			fmt.Sprintf("CREATE VIEW '%s' AS SELECT %s FROM events WHERE json_extract(json, '$.%s') = '%s'",
				typeName, strings.Join(columns, ", "), discriminator, typeName),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (store *Store) rowsToEvents(stmt *sqlite.Stmt) (events []JSONEvent, err error) {
	events = []JSONEvent{}
	for {
		if hasRow, err := stmt.Step(); err != nil {
			return nil, err
		} else if !hasRow {
			break
		}
		events = append(events, JSONEvent(stmt.GetText("json")))
	}
	return events, stmt.Finalize()
}

func isEventTable(name string) bool {
	if strings.HasPrefix(name, "sqlite") || strings.HasPrefix(name, "_") {
		return false
	}
	if name == "events" {
		return false
	}

	for _, suffix := range []string{"_data", "_idx", "_content", "_docsize", "_config"} {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	return true
}

func (store *Store) setupTypes() error {
	stmt, err := store.cursor.Prepare("SELECT name FROM sqlite_master")
	if err != nil {
		return err
	}

	for {
		if hasRow, err := stmt.Step(); err != nil {
			return err
		} else if !hasRow {
			break
		}

		name := stmt.GetText("name")

		if !isEventTable(name) {
			continue
		}

		pragmaStmt, err := store.cursor.Prepare(fmt.Sprintf("PRAGMA table_info (\"%s\")", name))
		if err != nil {
			return err
		}

		for {
			if pragmaHasRow, err := pragmaStmt.Step(); err != nil {
				return err
			} else if !pragmaHasRow {
				break
			}

			columnName := pragmaStmt.GetText("name")
			store.types.add(name, columnName)
		}
		err = pragmaStmt.Finalize()
		if err != nil {
			return err
		}
	}

	return stmt.Finalize()
}

func (store *Store) exec(query string) error {
	stmt, err := store.cursor.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Step()
	if err != nil {
		return err
	}

	return stmt.Finalize()
}
