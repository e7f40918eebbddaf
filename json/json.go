// Package json provides a JSON format for table documents.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/zoobzio/fieldcodec"
)

// jsonFormat implements fieldcodec.Format for JSON.
type jsonFormat struct{}

// New returns a JSON format.
//
// Numbers are decoded as json.Number so integer cells keep their exact text
// when rendered for encoding.
func New() fieldcodec.Format {
	return &jsonFormat{}
}

// ContentType returns the MIME type for JSON.
func (f *jsonFormat) ContentType() string {
	return "application/json"
}

// Marshal encodes v as indented JSON.
func (f *jsonFormat) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Unmarshal decodes a single JSON document into v.
func (f *jsonFormat) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("json: unexpected data after document")
	}
	return nil
}
