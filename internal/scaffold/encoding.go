package scaffold

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is the character set used when none is configured.
const DefaultEncoding = "utf-8"

// ResolveEncoding looks up a WHATWG encoding label such as "utf-8",
// "utf-16le" or "latin1" and returns its canonical name.
func ResolveEncoding(label string) (string, error) {
	_, name, err := lookup(label)
	return name, err
}

func lookup(label string) (encoding.Encoding, string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultEncoding
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	// The replacement family decodes everything to U+FFFD and has no encoder.
	if enc == encoding.Replacement {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	return enc, name, nil
}

// Encode converts text to bytes in the named character set. UTF-8 is passed
// through untouched so the output is byte-for-byte the input string. No BOM
// is ever emitted.
func Encode(text, label string) ([]byte, error) {
	enc, name, err := lookup(label)
	if err != nil {
		return nil, err
	}
	if name == DefaultEncoding {
		return []byte(text), nil
	}
	out, err := enc.NewEncoder().String(text)
	if err != nil {
		return nil, fmt.Errorf("%w as %s: %v", ErrEncode, name, err)
	}
	return []byte(out), nil
}

// Decode is the inverse of Encode.
func Decode(b []byte, label string) (string, error) {
	enc, name, err := lookup(label)
	if err != nil {
		return "", err
	}
	if name == DefaultEncoding {
		return string(b), nil
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(out), nil
}

// Digest returns the hex BLAKE2b-256 sum of b.
func Digest(b []byte) string {
	sum := blake2b.Sum256(b)
	return fmt.Sprintf("%x", sum[:])
}
