package veil

import (
	"bytes"
	"testing"
)

func TestBuiltinViewers(t *testing.T) {
	registry := builtinViewers()

	for _, k := range []Kind{KindText, KindBytes, KindCString} {
		if _, ok := registry[k]; !ok {
			t.Errorf("builtinViewers missing %q", k)
		}
	}
}

func TestViewerContent(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		raw  []byte
		want []byte
	}{
		{"text passthrough", KindText, []byte("hi"), []byte("hi")},
		{"bytes passthrough", KindBytes, []byte{0, 1, 2}, []byte{0, 1, 2}},
		{"cstring trims terminator", KindCString, []byte("hi\x00"), []byte("hi")},
		{"cstring lone terminator", KindCString, []byte{0}, []byte{}},
		{"empty text", KindText, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := viewerFor(tt.kind).content(tt.raw)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("content(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestViewStringAliasesBuffer(t *testing.T) {
	table := mustEncode(t, KindText, []byte("hello!"))

	pt := table.Decrypt()
	s := pt.String()
	if s != "hello!" {
		t.Fatalf("String() = %q, want %q", s, "hello!")
	}

	// The string is a view, not a copy: destroying the buffer zeroes it.
	pt.Destroy()
	if s == "hello!" {
		t.Error("string survived Destroy; views must alias the buffer")
	}
}

func TestViewKindAndRaw(t *testing.T) {
	table := mustEncode(t, KindCString, []byte("ab"))

	pt := table.Decrypt()
	defer pt.Destroy()

	v := pt.View()
	if v.Kind() != KindCString {
		t.Errorf("Kind() = %q, want %q", v.Kind(), KindCString)
	}
	if len(v.Raw()) != 3 {
		t.Errorf("Raw() length = %d, want 3", len(v.Raw()))
	}
	if len(v.Bytes()) != 2 {
		t.Errorf("Bytes() length = %d, want 2", len(v.Bytes()))
	}
}

func TestIsValidKind(t *testing.T) {
	for _, k := range []Kind{KindText, KindBytes, KindCString} {
		if !IsValidKind(k) {
			t.Errorf("IsValidKind(%q) = false, want true", k)
		}
	}
	if IsValidKind(Kind("base64")) {
		t.Error(`IsValidKind("base64") = true, want false`)
	}
}
