package veil

// Shreddable bypasses reflection-based shredding. When a type implements
// this interface, Shred calls it instead of scanning struct tags.
//
// Implement it for hot paths where reflection overhead matters, or for
// cleanup that tags cannot express (e.g. fields behind interfaces). The
// implementation carries the same obligation as the tag-driven path: byte
// slices must be wiped in place, not just dropped.
type Shreddable interface {
	// Shred clears the receiver's sensitive fields.
	Shred() error
}
