// Package sidecar loads the context.json file stored next to a test report and
// turns it into the path mapping used to rewrite that report's logs.
package sidecar

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	// DirectoryNameTestResults is the directory inside a report holding the sidecar.
	DirectoryNameTestResults = "testresults"
	// FileNameContext is the sidecar file name.
	FileNameContext = "context.json"
)

// KeyValue is one entry of an OrderedStrings.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// OrderedStrings is a string map that remembers document order. The order of
// "directories" decides which trigger wins, so a Go map cannot be used.
type OrderedStrings []KeyValue

// UnmarshalJSON walks the object token by token to keep document order.
// Values must be strings; null, numbers and nested values are rejected.
func (o *OrderedStrings) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected an object, got %s", tokenKind(tok))
	}

	out := OrderedStrings{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		valueTok, err := dec.Token()
		if err != nil {
			return err
		}
		value, ok := valueTok.(string)
		if !ok {
			return fmt.Errorf("value of %q must be a string, got %s", key, tokenKind(valueTok))
		}
		out = append(out, KeyValue{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = out
	return nil
}

// Get returns the value for key.
func (o OrderedStrings) Get(key string) (string, bool) {
	for _, kv := range o {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Context is the decoded sidecar.
type Context struct {
	Directories OrderedStrings `json:"directories" validate:"required"`
	GitRef      OrderedStrings `json:"git_ref" validate:"required"`
}

var contextValidator = validator.New()

// ParseContext decodes and validates sidecar content. Both keys must be
// present; they may be empty objects.
func ParseContext(data []byte) (*Context, error) {
	var ctx Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("malformed %s: %w", FileNameContext, err)
	}
	if err := contextValidator.Struct(&ctx); err != nil {
		return nil, fmt.Errorf("incomplete %s: %w", FileNameContext, err)
	}
	return &ctx, nil
}

func tokenKind(tok json.Token) string {
	switch t := tok.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case string:
		return "string"
	case json.Delim:
		if t == '[' {
			return "array"
		}
		return "object"
	default:
		return fmt.Sprintf("%T", tok)
	}
}
