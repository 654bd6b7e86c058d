package eventstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/qri-io/jsonschema"
	"github.com/tidwall/gjson"
)

var schemaOnce sync.Once
var schemaErr error
var schemas map[string]*jsonschema.Schema

// registerSchemas compiles the built in schemas. The schema set is
// fixed, so all stores share a single compiled map.
func registerSchemas() error {
	schemaOnce.Do(func() {
		schemas = map[string]*jsonschema.Schema{}
		for name, source := range schemaSources {
			schema := &jsonschema.Schema{}
			if err := json.Unmarshal([]byte(source), schema); err != nil {
				schemaErr = errors.Wrap(err, fmt.Sprintf("could not parse schema %s", name))
				return
			}
			schemas[name] = schema
		}
	})
	return schemaErr
}

// validateSchema validates an event against the schema of its type.
// Events of unknown types pass, an event without a type does not.
func validateSchema(event JSONEvent) (flaws []string, err error) {
	eventType := gjson.GetBytes(event, discriminator)
	if !eventType.Exists() {
		return []string{"event needs to have a type"}, nil
	}

	schema, ok := schemas[eventType.String()]
	if !ok {
		return nil, nil
	}

	validationErrs, err := schema.ValidateBytes(context.Background(), event)
	if err != nil {
		return nil, err
	}
	for _, verr := range validationErrs {
		flaws = append(flaws, fmt.Sprintf("failed to validate event: %s", verr))
	}

	return flaws, nil
}
