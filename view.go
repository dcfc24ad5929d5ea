package veil

import "unsafe"

// View is a borrowed reinterpretation of a decrypted buffer under its kind
// tag. Views never own or copy the underlying bytes: the strings and slices
// they return alias the Plaintext buffer and become zeroes once it is
// destroyed. Consume them immediately; never store them.
type View struct {
	kind Kind
	raw  []byte
}

// Kind returns the view's kind tag.
func (v View) Kind() Kind {
	return v.kind
}

// Raw returns the full buffer, including the trailing NUL for KindCString.
func (v View) Raw() []byte {
	return v.raw
}

// Bytes returns the content bytes under the kind tag. For KindCString the
// terminator is excluded; other kinds return the buffer as-is.
func (v View) Bytes() []byte {
	return viewerFor(v.kind).content(v.raw)
}

// String returns the content as text. For KindText this is valid UTF-8 by
// the encode-time invariant. The string aliases the buffer; it is not a copy.
func (v View) String() string {
	content := v.Bytes()
	if len(content) == 0 {
		return ""
	}
	return unsafe.String(&content[0], len(content))
}

// viewer reinterprets a raw decrypted buffer as content for one kind.
// The dispatch is closed: the tag carried by the table selects the viewer,
// the data is never inspected.
type viewer interface {
	content(raw []byte) []byte
}

// textViewer passes the buffer through; UTF-8 validity is an encode-time
// invariant.
type textViewer struct{}

func (textViewer) content(raw []byte) []byte { return raw }

// bytesViewer passes the buffer through unchanged.
type bytesViewer struct{}

func (bytesViewer) content(raw []byte) []byte { return raw }

// cstringViewer drops the trailing NUL. The encoder guarantees exactly one
// NUL, at the final position.
type cstringViewer struct{}

func (cstringViewer) content(raw []byte) []byte {
	if n := len(raw); n > 0 && raw[n-1] == 0 {
		return raw[:n-1]
	}
	return raw
}

// builtinViewers returns the viewer registry, one per kind.
func builtinViewers() map[Kind]viewer {
	return map[Kind]viewer{
		KindText:    textViewer{},
		KindBytes:   bytesViewer{},
		KindCString: cstringViewer{},
	}
}

var viewers = builtinViewers()

// viewerFor selects the viewer for a kind, defaulting to the byte viewer so
// a zero-valued View stays total.
func viewerFor(k Kind) viewer {
	if v, ok := viewers[k]; ok {
		return v
	}
	return bytesViewer{}
}
