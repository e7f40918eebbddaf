// Package msgpack provides a MessagePack format for table documents.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/fieldcodec"
)

// msgpackFormat implements fieldcodec.Format for MessagePack.
type msgpackFormat struct{}

// New returns a MessagePack format.
func New() fieldcodec.Format {
	return &msgpackFormat{}
}

// ContentType returns the MIME type for MessagePack.
func (f *msgpackFormat) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (f *msgpackFormat) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v. Integers inside cell values
// decode as int64 or uint64 regardless of their wire width.
func (f *msgpackFormat) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	return dec.Decode(v)
}
