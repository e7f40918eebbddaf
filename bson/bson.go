// Package bson provides a BSON format for table documents.
package bson

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/zoobzio/fieldcodec"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonFormat implements fieldcodec.Format for BSON.
type bsonFormat struct{}

// New returns a BSON format. Only documents (structs and maps) can be
// marshaled at the top level, and input must hold exactly one document.
func New() fieldcodec.Format {
	return &bsonFormat{}
}

// ContentType returns the MIME type for BSON.
func (f *bsonFormat) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as a BSON document.
func (f *bsonFormat) Marshal(v any) ([]byte, error) {
	if !isDocument(v) {
		return nil, fmt.Errorf("bson: top-level value must be a document, got %T", v)
	}
	return bson.Marshal(v)
}

// Unmarshal decodes a single BSON document into v.
func (f *bsonFormat) Unmarshal(data []byte, v any) error {
	if err := bson.Raw(data).Validate(); err != nil {
		return fmt.Errorf("bson: invalid document: %w", err)
	}
	if n := int(binary.LittleEndian.Uint32(data)); n != len(data) {
		return fmt.Errorf("bson: unexpected data after document (%d of %d bytes used)", n, len(data))
	}
	return bson.Unmarshal(data, v)
}

func isDocument(v any) bool {
	switch v.(type) {
	case bson.D, bson.Raw:
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Struct || rv.Kind() == reflect.Map
}
