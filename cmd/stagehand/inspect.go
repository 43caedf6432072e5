package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/stagehand-xyz/go-stagehand/inspect"
)

func inspectCmd(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	asDSL := fs.Bool("dsl", false, "Render the definition as canonical DSL text")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: stagehand inspect <definition> [options]

Show a summary of an actor definition, or render it as DSL text.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Human-readable overview
  stagehand inspect ping.actor

  # Convert a structured definition to DSL
  stagehand inspect ping.json --dsl > ping.actor
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

	if *asDSL {
		fmt.Print(inspect.RenderDSL(def))
		return nil
	}
	fmt.Print(inspect.Summary(def))
	return nil
}
