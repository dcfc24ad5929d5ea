package veil

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"unicode/utf8"
)

// Encode masks a payload into a Table of the given kind.
//
// Every byte gets an independently random pad, so encoding the same payload
// twice produces different unit sequences; both decrypt to the payload. The
// pads only need to vary from build to build; there is no secrecy
// requirement on them, since each pad is stored in the same unit as the byte
// it masks. crypto/rand is used because it needs no seeding, not for
// strength.
//
// Validation is front-loaded here so that decryption can never fail:
// KindText payloads must be valid UTF-8, KindCString payloads must be free
// of NUL bytes. For KindCString the terminator is appended by Encode and the
// table is one unit longer than the payload.
func Encode(kind Kind, payload []byte) (Table, error) {
	if !IsValidKind(kind) {
		return Table{}, newEncodeError(ErrUnknownKind, kind, -1)
	}

	switch kind {
	case KindText:
		if !utf8.Valid(payload) {
			return Table{}, newEncodeError(ErrInvalidText, kind, invalidUTF8Offset(payload))
		}
	case KindCString:
		if i := bytes.IndexByte(payload, 0); i >= 0 {
			return Table{}, newEncodeError(ErrInteriorNUL, kind, i)
		}
		terminated := make([]byte, len(payload)+1)
		copy(terminated, payload)
		payload = terminated
	}

	pads := make([]byte, len(payload))
	if _, err := rand.Read(pads); err != nil {
		return Table{}, fmt.Errorf("draw pads: %w", err)
	}

	units := make([]uint16, len(payload))
	for i, b := range payload {
		units[i] = uint16(b^pads[i]) | uint16(pads[i])<<8
	}

	return Table{kind: kind, units: units}, nil
}

// invalidUTF8Offset returns the offset of the first invalid byte sequence.
func invalidUTF8Offset(payload []byte) int {
	for i := 0; i < len(payload); {
		r, size := utf8.DecodeRune(payload[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
