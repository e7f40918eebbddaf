// Package yaml provides a YAML format for table documents.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/zoobzio/fieldcodec"
	"gopkg.in/yaml.v3"
)

// yamlFormat implements fieldcodec.Format for YAML.
type yamlFormat struct{}

// New returns a YAML format.
//
// Encoded cells that look like numbers or booleans ("4142", "true") are
// written quoted, so they come back as strings.
func New() fieldcodec.Format {
	return &yamlFormat{}
}

// ContentType returns the MIME type for YAML.
func (f *yamlFormat) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML with two-space indentation.
func (f *yamlFormat) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a single YAML document into v. Empty input leaves v
// untouched; a second document is an error.
func (f *yamlFormat) Unmarshal(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return fmt.Errorf("yaml: unexpected document after table")
	}
}
