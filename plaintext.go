package veil

import (
	"context"
	"runtime"

	"github.com/awnumar/memguard/core"
)

// Plaintext is an ephemeral decrypted buffer, exclusively owned by the
// caller of Decrypt. Destroy overwrites every byte with zero before the
// memory returns to the allocator; views handed out by View/String/Bytes
// alias the buffer and die with it.
//
// Plaintext must not be shared across goroutines or stored for reuse:
// holding on to one extends the plaintext's exposure window for no benefit,
// since decrypting again is cheap.
type Plaintext struct {
	kind      Kind
	data      []byte
	destroyed bool
}

// Kind returns the kind tag inherited from the source table.
func (p *Plaintext) Kind() Kind {
	return p.kind
}

// Len returns the buffer length. For KindCString this includes the
// trailing NUL.
func (p *Plaintext) Len() int {
	return len(p.data)
}

// View returns a borrowed reinterpretation of the buffer under the kind tag.
// The view is valid until Destroy.
func (p *Plaintext) View() View {
	return View{kind: p.kind, raw: p.data}
}

// String returns the content as text. Shorthand for View().String().
func (p *Plaintext) String() string {
	return p.View().String()
}

// Bytes returns the content bytes. Shorthand for View().Bytes().
func (p *Plaintext) Bytes() []byte {
	return p.View().Bytes()
}

// Destroy overwrites the buffer with zeroes and releases it. It runs the
// wipe through memguard, whose write path the compiler cannot elide, and is
// safe to call more than once.
func (p *Plaintext) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	runtime.SetFinalizer(p, nil)

	core.Wipe(p.data)
	emitWiped(context.Background(), p.kind, len(p.data))
}
