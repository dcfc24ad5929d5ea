package veil

import (
	"context"
	"runtime"
	"time"
)

// Decrypt recovers the original bytes into a freshly allocated Plaintext.
//
// Each call allocates its own buffer, so concurrent decrypts of the same
// table need no coordination. The caller owns the result and must arrange
// for Destroy to run when done, typically via defer or by using the scoped
// Reveal methods instead.
func (t Table) Decrypt() *Plaintext {
	start := time.Now()

	data := make([]byte, len(t.units))
	for i := range t.units {
		u := loadUnit(t.units, i)
		data[i] = byte(u) ^ byte(u>>8)
	}

	p := &Plaintext{kind: t.kind, data: data}
	// Backstop for leaked buffers. The deterministic wipe is the caller's
	// deferred Destroy; the finalizer only catches buffers that escaped one.
	runtime.SetFinalizer(p, (*Plaintext).Destroy)

	emitDecrypted(context.Background(), t.kind, len(data), time.Since(start))
	return p
}

// Reveal decrypts the table, passes a borrowed view to fn, and wipes the
// buffer before returning. The wipe runs on every exit path, including a
// panic inside fn. The view must not be retained past fn.
func (t Table) Reveal(fn func(View)) {
	p := t.Decrypt()
	defer p.Destroy()
	fn(p.View())
}

// RevealString decrypts the table and passes the content as a string to fn,
// wiping the buffer before returning. For KindCString the terminator is
// excluded. The string borrows the decrypted buffer and must not be retained
// past fn.
func (t Table) RevealString(fn func(string)) {
	t.Reveal(func(v View) {
		fn(v.String())
	})
}

// RevealBytes decrypts the table and passes the content bytes to fn, wiping
// the buffer before returning. For KindCString the terminator is excluded.
// The slice borrows the decrypted buffer and must not be retained past fn.
func (t Table) RevealBytes(fn func([]byte)) {
	t.Reveal(func(v View) {
		fn(v.Bytes())
	})
}

// loadUnit reads one masked unit through an optimizer-opaque boundary.
//
// The noinline boundary keeps the compiler from folding the unit table and
// the XOR into a plaintext constant, which would put the literal back into
// the binary image and defeat the scheme.
//
//go:noinline
func loadUnit(units []uint16, i int) uint16 {
	return units[i]
}
