// veilgen generates obfuscated literal tables from //veil: directives.
//
// It pairs with go:generate: declare literals in comments, run veilgen, and
// use the generated veil.Table variables through the veil package. The
// plaintext never leaves the comments, so it never reaches the binary.
package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/zoobzio/veil/internal/gen"
)

var (
	version     = "unknown"
	versionFlag bool
	helpFlag    bool
	dirFlag     string
	outputFlag  string
	packageFlag string
	configFlag  string
)

func main() {
	flags := flag.NewFlagSet("veilgen", flag.ContinueOnError)
	flags.BoolVar(&versionFlag, "version", false, "Prints the version of this executable.")
	flags.BoolVarP(&helpFlag, "help", "h", false, "Prints this usage information.")
	flags.StringVarP(&dirFlag, "dir", "d", "", "Package directory to scan. Defaults to the current directory.")
	flags.StringVarP(&outputFlag, "output", "o", "", "Name of the generated file, written inside the package directory. Defaults to veil_gen.go.")
	flags.StringVarP(&packageFlag, "package", "p", "", "Overrides the package name of the generated file.")
	flags.StringVarP(&configFlag, "config", "c", ".veil.yaml", "Config file with the same settings as the flags; flags win.")
	flags.Usage = func() {
		fmt.Printf(`
veilgen scans a package for //veil: directives and generates a Go file of
obfuscated literal tables. This pairs well with go:generate comments.

Directives are ordinary comments; the verb picks the literal kind:

    //veil:text    greeting "hello!"
    //veil:bytes   key      "\x01\x02\x03\x04"
    //veil:cstring banner   "hello!"

Each run draws fresh random pads, so two builds of the same literal produce
different tables. Use the generated variables through the veil package:

    greeting.RevealString(func(s string) { fmt.Println(s) })

USAGE:  veilgen [FLAGS]

FLAGS:
%s
SECURITY:
    This is not encryption, this is obfuscation, and they are very different things!
Each pad byte is stored in the same 16-bit unit as the byte it masks, so
anyone who can run the program (or a debugger) recovers the plaintext. The
only goal is to keep literals out of strings(1) and friends.
`, flags.FlagUsages())
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		flags.Usage()
		fatal("parsing flags: %v", err)
	}
	if helpFlag {
		flags.Usage()
		return
	}
	if versionFlag {
		fmt.Printf("veilgen version: %s\n", version)
		return
	}
	if err := run(); err != nil {
		fatal("%v", err)
	}
}

func run() error {
	cfg, err := gen.LoadConfig(configFlag)
	if err != nil {
		return err
	}
	if dirFlag != "" {
		cfg.Dir = dirFlag
	}
	if outputFlag != "" {
		cfg.Output = outputFlag
	}
	if packageFlag != "" {
		cfg.Package = packageFlag
	}

	out, count, err := gen.Generate(cfg)
	if errors.Is(err, gen.ErrNoDirectives) {
		fmt.Fprintln(os.Stderr, "veilgen: nothing to do, no //veil: directives found")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("veilgen: wrote %s (%d literals)\n", out, count)
	return nil
}

// fatal prints a diagnostic and exits non-zero, in compiler style so editors
// can jump to positions embedded in the message.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "veilgen: "+format+"\n", args...)
	os.Exit(1)
}
