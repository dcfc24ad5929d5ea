// Package directive scans Go sources for //veil: literal declarations.
//
// A directive is an ordinary line comment:
//
//	//veil:text    greeting "hello!"
//	//veil:bytes   key      "\x01\x02"
//	//veil:cstring banner   "hello!"
//
// The verb names the literal kind, followed by the Go identifier the
// generated table is declared as, followed by exactly one Go string literal.
// Everything after the verb is tokenized with go/scanner, so escape
// sequences and raw string literals behave exactly as they do in Go source.
package directive

import (
	"fmt"
	"go/parser"
	"go/scanner"
	"go/token"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/zoobzio/veil"
)

// Prefix marks a veil directive comment.
const Prefix = "//veil:"

// verbs maps directive verbs to literal kinds.
var verbs = map[string]veil.Kind{
	"text":    veil.KindText,
	"bytes":   veil.KindBytes,
	"cstring": veil.KindCString,
}

// Directive is one validated literal declaration.
type Directive struct {
	Name  string         // generated variable name
	Kind  veil.Kind      // literal kind from the verb
	Value string         // unquoted payload (no terminator; Encode appends it)
	Pos   token.Position // position of the directive comment
}

// ScanDir parses every Go file in dir (except those in skip) and collects
// its veil directives. It returns the package name and the directives in
// deterministic file/offset order.
//
// Directives anywhere in a file's comments are honored; files belonging to
// an external _test package are ignored.
func ScanDir(dir string, skip map[string]bool) (string, []Directive, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, func(fi fs.FileInfo) bool {
		return !skip[fi.Name()]
	}, parser.ParseComments)
	if err != nil {
		return "", nil, err
	}

	var pkgName string
	var directives []Directive
	seen := make(map[string]token.Position)

	names := make([]string, 0, len(pkgs))
	for name := range pkgs {
		if strings.HasSuffix(name, "_test") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 1 {
		return "", nil, fmt.Errorf("multiple packages in %s: %s", dir, strings.Join(names, ", "))
	}

	for _, name := range names {
		pkgName = name
		for _, file := range pkgs[name].Files {
			for _, group := range file.Comments {
				for _, c := range group.List {
					if !strings.HasPrefix(c.Text, Prefix) {
						continue
					}
					d, err := Parse(c.Text, fset.Position(c.Pos()))
					if err != nil {
						return "", nil, err
					}
					if prev, dup := seen[d.Name]; dup {
						return "", nil, newParseError(ErrDuplicateName, d.Pos, d.Name+" first declared at "+prev.String())
					}
					seen[d.Name] = d.Pos
					directives = append(directives, d)
				}
			}
		}
	}

	sort.Slice(directives, func(i, j int) bool {
		if directives[i].Pos.Filename != directives[j].Pos.Filename {
			return directives[i].Pos.Filename < directives[j].Pos.Filename
		}
		return directives[i].Pos.Offset < directives[j].Pos.Offset
	})

	return pkgName, directives, nil
}

// Parse validates a single directive comment. pos is the source position of
// the comment's first character and anchors all diagnostics.
func Parse(text string, pos token.Position) (Directive, error) {
	rest := strings.TrimPrefix(text, Prefix)

	verb := rest
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		verb, rest = rest[:i], rest[i:]
	} else {
		rest = ""
	}

	kind, ok := verbs[verb]
	if !ok {
		return Directive{}, newParseError(ErrUnsupportedLiteral, pos, verb)
	}

	// Positions inside the payload are single-line offsets from the comment.
	payloadBase := len(text) - len(rest)
	at := func(p token.Position) token.Position {
		return token.Position{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column + payloadBase + p.Column - 1,
			Offset:   pos.Offset + payloadBase + p.Offset,
		}
	}

	src := []byte(rest)
	var s scanner.Scanner
	var scanErr *scanner.Error
	fset := token.NewFileSet()
	file := fset.AddFile(pos.Filename, fset.Base(), len(src))
	s.Init(file, src, func(p token.Position, msg string) {
		if scanErr == nil {
			scanErr = &scanner.Error{Pos: p, Msg: msg}
		}
	}, 0)

	// Name.
	npos, ntok, nlit := s.Scan()
	if ntok == token.EOF || isAutoSemi(ntok, nlit) {
		return Directive{}, newParseError(ErrMissingName, at(fset.Position(npos)), "")
	}
	if ntok != token.IDENT {
		return Directive{}, newParseError(ErrMissingName, at(fset.Position(npos)), tokenText(ntok, nlit))
	}

	// Literal.
	lpos, ltok, llit := s.Scan()
	lp := at(fset.Position(lpos))
	switch {
	case ltok == token.EOF || isAutoSemi(ltok, llit):
		return Directive{}, newParseError(ErrMissingArgument, lp, "")
	case ltok == token.STRING:
		// fall through to unquote
	case ltok.IsLiteral() && ltok != token.IDENT:
		// A literal, just not a kind we can obfuscate.
		return Directive{}, newParseError(ErrUnsupportedLiteral, lp, llit)
	default:
		return Directive{}, newParseError(ErrNotALiteral, lp, tokenText(ltok, llit))
	}
	if scanErr != nil {
		return Directive{}, newParseError(ErrNotALiteral, lp, scanErr.Msg)
	}
	value, err := strconv.Unquote(llit)
	if err != nil {
		return Directive{}, newParseError(ErrNotALiteral, lp, llit)
	}

	// End of input.
	tpos, ttok, tlit := s.Scan()
	if isAutoSemi(ttok, tlit) {
		tpos, ttok, tlit = s.Scan()
	}
	if ttok != token.EOF {
		return Directive{}, newParseError(ErrTrailingTokens, at(fset.Position(tpos)), tokenText(ttok, tlit))
	}

	return Directive{Name: nlit, Kind: kind, Value: value, Pos: pos}, nil
}

// isAutoSemi reports the semicolon go/scanner inserts at end of input.
func isAutoSemi(tok token.Token, lit string) bool {
	return tok == token.SEMICOLON && lit == "\n"
}

// tokenText renders a token for diagnostics.
func tokenText(tok token.Token, lit string) string {
	if lit != "" {
		return lit
	}
	return tok.String()
}
