package fieldcodec

// Scheme names a binary-to-text encoding.
// SchemeNone leaves values untouched in both directions.
type Scheme string

const (
	// SchemeNone applies no transform.
	SchemeNone Scheme = ""

	// SchemeB64Standard uses the standard base64 alphabet with padding.
	SchemeB64Standard Scheme = "b64_standard"

	// SchemeB64URLSafe uses the URL and filename safe base64 alphabet with padding.
	SchemeB64URLSafe Scheme = "b64_url_safe"

	// SchemeB32 uses the RFC 4648 base32 alphabet with padding.
	SchemeB32 Scheme = "b32"

	// SchemeB16 uses the RFC 4648 base16 (uppercase hex) alphabet.
	SchemeB16 Scheme = "b16"
)

// Mode is the direction of a transform.
type Mode string

const (
	// ModeEncode turns text into its encoded representation.
	ModeEncode Mode = "encode"

	// ModeDecode turns an encoded representation back into text.
	ModeDecode Mode = "decode"
)

// validSchemes contains all built-in schemes, including SchemeNone.
var validSchemes = map[Scheme]bool{
	SchemeNone:        true,
	SchemeB64Standard: true,
	SchemeB64URLSafe:  true,
	SchemeB32:         true,
	SchemeB16:         true,
}

// IsValidScheme returns true if the scheme is a built-in scheme.
func IsValidScheme(s Scheme) bool {
	return validSchemes[s]
}

// IsValidMode returns true if the mode is encode or decode.
func IsValidMode(m Mode) bool {
	return m == ModeEncode || m == ModeDecode
}

// Schemes returns the built-in schemes in a stable order, excluding SchemeNone.
func Schemes() []Scheme {
	return []Scheme{SchemeB64Standard, SchemeB64URLSafe, SchemeB32, SchemeB16}
}
