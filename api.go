// Package fieldcodec appends an encoded or decoded copy of one field to every
// record of a stream.
//
// A Pipeline is configured with a field name, a mode (encode or decode) and a
// scheme. It negotiates an output schema once, then transforms records one at
// a time and hands them to a Sink in arrival order.
//
// # Schemes
//
// Built-in schemes follow RFC 4648:
//
//   - b64_standard: base64, standard alphabet, padded
//   - b64_url_safe: base64, URL-safe alphabet, padded
//   - b32: base32, standard alphabet, padded
//   - b16: base16, uppercase
//
// The empty scheme is the identity in both directions. Additional schemes can
// be registered on a Registry and supplied with WithRegistry.
//
// # Output Schema
//
// The output schema is the input schema followed by one field named
// "{field}_{mode}" of type v_wstring, described as "{scheme} {mode}":
//
//	in:  ID int64, Name v_wstring
//	out: ID int64, Name v_wstring, Name_encode v_wstring ("b64_standard encode")
//
// # Basic Usage
//
//	p, _ := fieldcodec.NewPipeline(fieldcodec.Config{
//	    Field:  "Name",
//	    Mode:   fieldcodec.ModeEncode,
//	    Scheme: fieldcodec.SchemeB64Standard,
//	}, sink)
//
//	if _, err := p.Negotiate(ctx, schema); err != nil {
//	    return err
//	}
//	for _, rec := range records {
//	    if err := p.Push(ctx, rec); err != nil {
//	        break
//	    }
//	}
//	return p.Close(ctx)
//
// # Errors
//
// Configuration problems are reported as *ConfigError and are terminal.
// A value the scheme cannot decode is a *CodecError for that record only.
// A sink refusing a record yields ErrDownstreamRejected and halts streaming.
//
// # Struct Records
//
// SchemaFor and RecordOf derive schemas and records from Go structs:
//
//	type User struct {
//	    ID   int64
//	    Name string `field:"name"`
//	}
//
//	schema, _ := fieldcodec.SchemaFor[User]()
//	rec, _ := fieldcodec.RecordOf(User{ID: 1, Name: "Alteryx"})
//
// # Format Providers
//
// Table documents are carried in one of the following formats:
//
//   - json - JSON encoding (application/json)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
package fieldcodec

// Format provides content-type aware marshaling of table documents.
type Format interface {
	// ContentType returns the MIME type for this format (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
