// Package gen renders veilgen output: a single generated Go file declaring
// one obfuscated table per directive. The emitted source contains only
// masked units in hex, never payload bytes.
package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/crypto/blake2b"

	"github.com/zoobzio/veil"
	"github.com/zoobzio/veil/internal/directive"
)

// ErrNoDirectives indicates a scan that found nothing to generate.
var ErrNoDirectives = errors.New("no veil directives found")

// Literal is one encoded table ready for emission.
type Literal struct {
	Name  string
	Kind  veil.Kind
	Units []uint16
}

// ctors maps kinds to the veil constructor emitted for them.
var ctors = map[veil.Kind]string{
	veil.KindText:    "Text",
	veil.KindBytes:   "Bytes",
	veil.KindCString: "CString",
}

var fileTemplate = template.Must(template.New("veil_gen").Funcs(template.FuncMap{
	"ctor":  func(k veil.Kind) string { return ctors[k] },
	"units": formatUnits,
}).Parse(`// Code generated by veilgen. DO NOT EDIT.
// veilgen source digest {{.Digest}}; re-run go generate after editing directives.

package {{.Package}}

import "github.com/zoobzio/veil"

var (
{{- range .Literals}}
	{{.Name}} = veil.{{ctor .Kind}}({{units .Units}})
{{- end}}
)
`))

// Generate scans cfg.Dir for directives, encodes every literal with fresh
// pads, and writes the generated file. It returns the written path and the
// number of literals.
func Generate(cfg Config) (string, int, error) {
	cfg.ApplyDefaults()

	skip := map[string]bool{cfg.Output: true}
	pkg, directives, err := directive.ScanDir(cfg.Dir, skip)
	if err != nil {
		return "", 0, err
	}
	if len(directives) == 0 {
		return "", 0, ErrNoDirectives
	}
	if cfg.Package != "" {
		pkg = cfg.Package
	}

	literals := make([]Literal, 0, len(directives))
	for _, d := range directives {
		table, err := veil.Encode(d.Kind, []byte(d.Value))
		if err != nil {
			return "", 0, fmt.Errorf("%s: %w", d.Pos, err)
		}
		literals = append(literals, Literal{Name: d.Name, Kind: d.Kind, Units: table.Units()})
	}

	src, err := Render(pkg, literals)
	if err != nil {
		return "", 0, err
	}

	out := filepath.Join(cfg.Dir, cfg.Output)
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return "", 0, fmt.Errorf("write %s: %w", out, err)
	}

	return out, len(literals), nil
}

// Render produces the generated file source for a package and its literals.
func Render(pkg string, literals []Literal) ([]byte, error) {
	var buf bytes.Buffer
	err := fileTemplate.Execute(&buf, struct {
		Package  string
		Digest   string
		Literals []Literal
	}{
		Package:  pkg,
		Digest:   sourceDigest(literals),
		Literals: literals,
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}

	return src, nil
}

// sourceDigest fingerprints the directive set (names and kinds only, never
// payloads) so regenerated files are diffable back to their inputs.
func sourceDigest(literals []Literal) string {
	h, _ := blake2b.New256(nil)
	for _, l := range literals {
		fmt.Fprintf(h, "%s:%s:%d\n", l.Name, l.Kind, len(l.Units))
	}
	return fmt.Sprintf("%x", h.Sum(nil)[:8])
}

// formatUnits renders masked units as a hex argument list.
func formatUnits(units []uint16) string {
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = fmt.Sprintf("0x%04x", u)
	}
	return strings.Join(parts, ", ")
}
