package fieldcodec

import (
	"sync"
	"unicode/utf8"
)

// Registry maps schemes to codecs.
//
// Registries are safe for concurrent use. Set may be called at any time to
// add or replace a codec; pipelines read the registry on every record.
type Registry struct {
	mu     sync.RWMutex
	codecs map[Scheme]Codec
}

// NewRegistry creates a registry holding the built-in codecs.
func NewRegistry() *Registry {
	return &Registry{codecs: builtinCodecs()}
}

// Set registers a codec for the given scheme.
// Returns the registry for chaining. Registering SchemeNone has no effect.
func (r *Registry) Set(s Scheme, c Codec) *Registry {
	if s == SchemeNone {
		return r
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[s] = c
	return r
}

// Lookup returns the codec for a scheme.
// SchemeNone never has a codec.
func (r *Registry) Lookup(s Scheme) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[s]
	return c, ok
}

// Has reports whether the scheme can be used with this registry.
// SchemeNone is always usable.
func (r *Registry) Has(s Scheme) bool {
	if s == SchemeNone {
		return true
	}
	_, ok := r.Lookup(s)
	return ok
}

// Encode applies the named scheme to the UTF-8 bytes of text.
// With SchemeNone the text is returned unchanged.
func (r *Registry) Encode(s Scheme, text string) (string, error) {
	if s == SchemeNone {
		return text, nil
	}
	c, ok := r.Lookup(s)
	if !ok {
		return "", newConfigError(ErrUnknownScheme, string(s), "")
	}
	return c.Encode([]byte(text)), nil
}

// Decode reverses the named scheme and returns the original text.
// With SchemeNone the text is returned unchanged.
//
// Malformed input returns a *CodecError wrapping ErrMalformedInput. Decoded
// bytes that are not valid UTF-8 return a *CodecError wrapping ErrInvalidText.
func (r *Registry) Decode(s Scheme, text string) (string, error) {
	if s == SchemeNone {
		return text, nil
	}
	c, ok := r.Lookup(s)
	if !ok {
		return "", newConfigError(ErrUnknownScheme, string(s), "")
	}
	raw, err := c.Decode([]byte(text))
	if err != nil {
		return "", newCodecError(ErrMalformedInput, s, ModeDecode, err)
	}
	if !utf8.Valid(raw) {
		return "", newCodecError(ErrInvalidText, s, ModeDecode, nil)
	}
	return string(raw), nil
}

// Apply runs Encode or Decode depending on mode.
func (r *Registry) Apply(m Mode, s Scheme, text string) (string, error) {
	switch m {
	case ModeEncode:
		return r.Encode(s, text)
	case ModeDecode:
		return r.Decode(s, text)
	default:
		return "", newConfigError(ErrInvalidMode, string(m), "")
	}
}

var (
	defaultRegistry   *Registry
	defaultRegistryMu sync.Mutex
)

// DefaultRegistry returns the shared registry used when a pipeline is not
// given one explicitly.
func DefaultRegistry() *Registry {
	defaultRegistryMu.Lock()
	defer defaultRegistryMu.Unlock()
	if defaultRegistry == nil {
		defaultRegistry = NewRegistry()
	}
	return defaultRegistry
}

// Reset discards the shared registry, including any codecs added with Set.
// This is primarily useful for test isolation.
func Reset() {
	defaultRegistryMu.Lock()
	defer defaultRegistryMu.Unlock()
	defaultRegistry = nil
}

// Encode applies a scheme using the shared registry.
func Encode(s Scheme, text string) (string, error) {
	return DefaultRegistry().Encode(s, text)
}

// Decode reverses a scheme using the shared registry.
func Decode(s Scheme, text string) (string, error) {
	return DefaultRegistry().Decode(s, text)
}
