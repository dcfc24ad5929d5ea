package veil

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		payload []byte
	}{
		{"text", KindText, []byte("hello!")},
		{"text unicode", KindText, []byte("héllo, wörld — ☂")},
		{"text empty", KindText, []byte("")},
		{"bytes", KindBytes, []byte{104, 101, 108, 108, 111, 33}},
		{"bytes binary", KindBytes, []byte{0x00, 0xff, 0x7f, 0x80, 0x00}},
		{"bytes empty", KindBytes, nil},
		{"cstring", KindCString, []byte("hello!")},
		{"cstring empty", KindCString, []byte("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Encode(tt.kind, tt.payload)
			if err != nil {
				t.Fatalf("Encode(%s, %q) error: %v", tt.kind, tt.payload, err)
			}

			want := tt.payload
			if tt.kind == KindCString {
				want = append(append([]byte{}, tt.payload...), 0)
			}
			if table.Len() != len(want) {
				t.Fatalf("table length = %d, want %d", table.Len(), len(want))
			}

			pt := table.Decrypt()
			defer pt.Destroy()
			if !bytes.Equal(pt.View().Raw(), want) {
				t.Errorf("decrypted = %v, want %v", pt.View().Raw(), want)
			}
		})
	}
}

func TestEncodeMasksEveryByte(t *testing.T) {
	payload := []byte("top secret configuration value")
	table, err := Encode(KindText, payload)
	if err != nil {
		t.Fatal(err)
	}

	// The masked low byte must reproduce the original under its pad, and the
	// unit sequence must not contain the payload in the clear.
	units := table.Units()
	for i, u := range units {
		if byte(u)^byte(u>>8) != payload[i] {
			t.Errorf("unit %d does not decode to payload byte", i)
		}
	}

	low := make([]byte, len(units))
	for i, u := range units {
		low[i] = byte(u)
	}
	if bytes.Equal(low, payload) {
		t.Error("masked bytes equal the payload; pads were not applied")
	}
}

func TestEncodeNonDeterministic(t *testing.T) {
	payload := []byte("hello!")

	a, err := Encode(KindText, payload)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(KindText, payload)
	if err != nil {
		t.Fatal(err)
	}

	same := true
	au, bu := a.Units(), b.Units()
	for i := range au {
		if au[i] != bu[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("two encodings produced identical unit tables; pads are not random")
	}

	for _, table := range []Table{a, b} {
		pt := table.Decrypt()
		if got := pt.String(); got != "hello!" {
			t.Errorf("decrypted = %q, want %q", got, "hello!")
		}
		pt.Destroy()
	}
}

func TestEncodeInvalidText(t *testing.T) {
	_, err := Encode(KindText, []byte{0x68, 0xff, 0xfe, 0x69})
	if !errors.Is(err, ErrInvalidText) {
		t.Fatalf("error = %v, want ErrInvalidText", err)
	}

	var encErr *EncodeError
	if !errors.As(err, &encErr) {
		t.Fatal("error is not an *EncodeError")
	}
	if encErr.Offset != 1 {
		t.Errorf("offset = %d, want 1", encErr.Offset)
	}
}

func TestEncodeInteriorNUL(t *testing.T) {
	_, err := Encode(KindCString, []byte("he\x00llo"))
	if !errors.Is(err, ErrInteriorNUL) {
		t.Fatalf("error = %v, want ErrInteriorNUL", err)
	}

	var encErr *EncodeError
	if !errors.As(err, &encErr) {
		t.Fatal("error is not an *EncodeError")
	}
	if encErr.Offset != 2 {
		t.Errorf("offset = %d, want 2", encErr.Offset)
	}
}

func TestEncodeUnknownKind(t *testing.T) {
	_, err := Encode(Kind("rot13"), []byte("x"))
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("error = %v, want ErrUnknownKind", err)
	}
}

func TestEncodeCStringAppendsTerminator(t *testing.T) {
	table, err := Encode(KindCString, []byte("hello!"))
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 7 {
		t.Fatalf("table length = %d, want 7", table.Len())
	}

	pt := table.Decrypt()
	defer pt.Destroy()
	raw := pt.View().Raw()
	if raw[6] != 0 {
		t.Errorf("terminator = %d at position 6, want 0", raw[6])
	}
	if got := pt.String(); got != "hello!" {
		t.Errorf("content = %q, want %q", got, "hello!")
	}
}

func TestEncodeEmptyCString(t *testing.T) {
	table, err := Encode(KindCString, nil)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 1 {
		t.Fatalf("table length = %d, want 1 (terminator only)", table.Len())
	}

	pt := table.Decrypt()
	defer pt.Destroy()
	if got := pt.String(); got != "" {
		t.Errorf("content = %q, want empty", got)
	}
	if pt.Len() != 1 || pt.View().Raw()[0] != 0 {
		t.Error("buffer is not a lone NUL terminator")
	}
}

func TestTableUnitsIsACopy(t *testing.T) {
	table, err := Encode(KindText, []byte("hello!"))
	if err != nil {
		t.Fatal(err)
	}

	units := table.Units()
	for i := range units {
		units[i] = 0
	}

	pt := table.Decrypt()
	defer pt.Destroy()
	if got := pt.String(); got != "hello!" {
		t.Errorf("mutating Units() affected the table: decrypted %q", got)
	}
}
