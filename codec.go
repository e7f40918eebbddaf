package fieldcodec

import (
	"bytes"
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Codec performs a reversible binary-to-text transform.
type Codec interface {
	// Encode returns the canonical ASCII representation of src.
	Encode(src []byte) string

	// Decode interprets src as text in this encoding and returns the original bytes.
	// Input outside the alphabet, bad padding, line breaks, or a bad length is an error.
	Decode(src []byte) ([]byte, error)
}

// base64Codec implements standard and URL-safe base64.
type base64Codec struct {
	enc *base64.Encoding
}

// Base64Codec returns a codec for padded standard base64.
func Base64Codec() Codec {
	return &base64Codec{enc: base64.StdEncoding}
}

// Base64URLCodec returns a codec for padded URL-safe base64 ('-' and '_' in place of '+' and '/').
func Base64URLCodec() Codec {
	return &base64Codec{enc: base64.URLEncoding}
}

func (c *base64Codec) Encode(src []byte) string {
	return c.enc.EncodeToString(src)
}

func (c *base64Codec) Decode(src []byte) ([]byte, error) {
	if i := bytes.IndexAny(src, "\r\n"); i >= 0 {
		return nil, base64.CorruptInputError(i)
	}
	dst := make([]byte, c.enc.DecodedLen(len(src)))
	n, err := c.enc.Decode(dst, src)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// base32Codec implements RFC 4648 base32.
type base32Codec struct{}

// Base32Codec returns a codec for padded base32 with the standard uppercase alphabet.
func Base32Codec() Codec {
	return &base32Codec{}
}

func (c *base32Codec) Encode(src []byte) string {
	return base32.StdEncoding.EncodeToString(src)
}

func (c *base32Codec) Decode(src []byte) ([]byte, error) {
	if i := bytes.IndexAny(src, "\r\n"); i >= 0 {
		return nil, base32.CorruptInputError(i)
	}
	dst := make([]byte, base32.StdEncoding.DecodedLen(len(src)))
	n, err := base32.StdEncoding.Decode(dst, src)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// base16Codec implements RFC 4648 base16.
type base16Codec struct{}

// Base16Codec returns a codec for uppercase hexadecimal.
// Decoding rejects lowercase digits, matching the RFC 4648 alphabet.
func Base16Codec() Codec {
	return &base16Codec{}
}

func (c *base16Codec) Encode(src []byte) string {
	return strings.ToUpper(hex.EncodeToString(src))
}

func (c *base16Codec) Decode(src []byte) ([]byte, error) {
	for i, b := range src {
		if b >= 'a' && b <= 'f' {
			return nil, hex.InvalidByteError(src[i])
		}
	}
	dst := make([]byte, hex.DecodedLen(len(src)))
	n, err := hex.Decode(dst, src)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// builtinCodecs returns the default codec registry.
func builtinCodecs() map[Scheme]Codec {
	return map[Scheme]Codec{
		SchemeB64Standard: Base64Codec(),
		SchemeB64URLSafe:  Base64URLCodec(),
		SchemeB32:         Base32Codec(),
		SchemeB16:         Base16Codec(),
	}
}
