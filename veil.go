// Package veil hides literal string and byte constants from static
// inspection of a compiled binary.
//
// Each literal byte is XOR-masked with an independently random pad byte at
// build time, and the (masked, pad) pair is packed into a single 16-bit unit.
// The binary carries only the masked unit table; running `strings` (or any
// other textual scan) over the executable reveals nothing. At run time the
// table is decrypted on demand into a freshly allocated buffer that is
// overwritten with zeroes before it is released.
//
// # Threat model
//
// This is obfuscation, not encryption. The pad travels in the same 16-bit
// unit as the masked byte, so anyone willing to run the decode step (or
// attach a debugger) recovers the plaintext. The only goal is to defeat
// static scanning of the binary image.
//
// # Declaring literals
//
// Literals are declared as veilgen directives in ordinary comments. The
// plaintext lives only in the comment, which the compiler discards:
//
//	//go:generate go run github.com/zoobzio/veil/cmd/veilgen
//
//	//veil:text    greeting "hello!"
//	//veil:bytes   key      "\x01\x02\x03\x04"
//	//veil:cstring banner   "hello!"
//
// Running veilgen writes veil_gen.go next to the sources:
//
//	var greeting = veil.Text(0x2c44, 0x88ed, ...)
//
// # Using literals
//
// The scoped API decrypts, hands the value to the callback, and wipes the
// buffer before returning. The wipe runs on every exit path, including a
// panic inside the callback:
//
//	greeting.RevealString(func(s string) {
//	    fmt.Println(s)
//	})
//
// The value passed to the callback borrows the decrypted buffer; it must be
// consumed inside the callback and never stored. Callers needing explicit
// control can use Decrypt and defer Destroy:
//
//	pt := greeting.Decrypt()
//	defer pt.Destroy()
//	fmt.Println(pt.String())
//
// # Kinds
//
// Three literal kinds are supported, fixed at encode time:
//
//   - KindText: valid UTF-8 text, revealed as a string
//   - KindBytes: arbitrary bytes, revealed as a []byte
//   - KindCString: NUL-terminated bytes; the table includes the terminator,
//     views exclude it
//
// The kind tag, never the data, selects the reinterpretation. All
// validation (UTF-8 for text, interior-NUL absence for C strings) happens at
// encode time, so decoding cannot fail.
//
// # Shredding
//
// Shred extends the wipe guarantee to user structs: fields tagged
// `veil:"wipe"` or `veil:"scramble"` are cleared in place once a secret is no
// longer needed. See Shred for the string-field caveat.
package veil
