package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/stagehand-xyz/go-stagehand/dsl"
	"github.com/stagehand-xyz/go-stagehand/model"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: stagehand validate <definition>

Check an actor definition for parse and validation errors.

Exit status is non-zero when the definition is invalid; parse errors
report line and column, validation errors report the offending element.

Examples:
  stagehand validate ping.actor
  stagehand validate ping.json
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
		var perr *dsl.ParseError
		var verr *model.ValidationError
		switch {
		case errors.As(err, &perr):
			return fmt.Errorf("parse error: %v", perr)
		case errors.As(err, &verr):
			return fmt.Errorf("validation error: %v", verr)
		}
		return err
	}

	fmt.Printf("OK: actor %s (%d variants, %d handlers, tick %dms)\n",
		def.Name, len(def.Messages), len(def.Handlers), def.TickInterval)
	return nil
}
