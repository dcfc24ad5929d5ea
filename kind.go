package veil

// Kind identifies how a decrypted buffer is reinterpreted.
// The kind is fixed when a literal is encoded and travels with its table.
type Kind string

const (
	// KindText is UTF-8 text, revealed as a string.
	KindText Kind = "text"

	// KindBytes is an arbitrary byte sequence, revealed as a []byte.
	KindBytes Kind = "bytes"

	// KindCString is a NUL-terminated byte sequence. The table includes the
	// terminator; views expose the content without it.
	KindCString Kind = "cstring"
)

// validKinds contains all valid kinds for directive and encode validation.
var validKinds = map[Kind]bool{
	KindText:    true,
	KindBytes:   true,
	KindCString: true,
}

// IsValidKind returns true if the kind is a known literal kind.
func IsValidKind(k Kind) bool {
	return validKinds[k]
}
