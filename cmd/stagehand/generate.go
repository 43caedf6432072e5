package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/stagehand-xyz/go-stagehand/codegen/golang"
)

func generate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	pkg := fs.String("package", "", "Target Go package name (default: lowercased actor name)")
	output := fs.String("output", "", "Write generated source to file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: stagehand generate <definition> [options]

Compile an actor definition to Go source.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Compile a DSL file to stdout
  stagehand generate ping.actor --package ping

  # Write generated source next to the definition
  stagehand generate ping.actor --package ping --output ping_gen.go

  # Structured definitions work the same way
  stagehand generate ping.yaml --package ping
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("definition file required")
	}

	def, err := loadDefinition(fs.Arg(0))
	if err != nil {
		return err
	}

	pkgName := *pkg
	if pkgName == "" {
		pkgName = defaultPackageName(def.Name)
	}
	src, err := golang.Generate(def, pkgName)
	if err != nil {
		return errors.Wrap(err, "generate")
	}

	if *output == "" {
		fmt.Print(src)
		return nil
	}
	if err := os.WriteFile(*output, []byte(src), 0o644); err != nil {
		return errors.Wrap(err, "write output")
	}
	fmt.Printf("Generated %s (actor %s, package %s)\n", *output, def.Name, pkgName)
	return nil
}

func defaultPackageName(actor string) string {
	out := make([]rune, 0, len(actor))
	for _, r := range actor {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out = append(out, r)
		}
	}
	if len(out) == 0 || (out[0] >= '0' && out[0] <= '9') {
		return "actor"
	}
	return string(out)
}
