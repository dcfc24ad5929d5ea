package veil

// Table is an obfuscated literal: an ordered sequence of 16-bit masked units
// plus the kind tag assigned at encode time.
//
// Each unit packs one original byte: the low byte is the original XOR a
// random pad, the high byte is the pad itself. Tables are immutable values,
// baked into the binary by veilgen, and safe for unsynchronized concurrent
// use, since every Decrypt produces a private buffer.
type Table struct {
	kind  Kind
	units []uint16
}

// Text constructs a text table from masked units.
// Called by veilgen-generated code; the units must decrypt to valid UTF-8.
func Text(units ...uint16) Table {
	return Table{kind: KindText, units: units}
}

// Bytes constructs a byte-sequence table from masked units.
// Called by veilgen-generated code.
func Bytes(units ...uint16) Table {
	return Table{kind: KindBytes, units: units}
}

// CString constructs a NUL-terminated table from masked units.
// Called by veilgen-generated code; the final unit must decrypt to the sole
// NUL byte in the sequence.
func CString(units ...uint16) Table {
	return Table{kind: KindCString, units: units}
}

// Kind returns the table's kind tag.
func (t Table) Kind() Kind {
	return t.kind
}

// Len returns the number of masked units, which equals the decrypted length.
// For KindCString this includes the trailing NUL.
func (t Table) Len() int {
	return len(t.units)
}

// Units returns a copy of the masked unit sequence.
func (t Table) Units() []uint16 {
	out := make([]uint16, len(t.units))
	copy(out, t.units)
	return out
}
