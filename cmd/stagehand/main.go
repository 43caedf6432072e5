package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate":
		if err := generate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "inspect":
		if err := inspectCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("stagehand version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`stagehand - actor definition compiler

Usage:
  stagehand <command> [options]

Commands:
  generate   Compile an actor definition to Go source
  validate   Check an actor definition for errors
  inspect    Show a summary of an actor definition
  help       Show this help message
  version    Show version information

Definitions are read from .actor DSL files, or from .json/.yaml documents
with the same structure.

Examples:
  # Compile a DSL file into a Go package
  stagehand generate ping.actor --package ping --output ping_gen.go

  # Validate a structured definition
  stagehand validate ping.yaml

  # Summarize, or render a structured definition back to DSL
  stagehand inspect ping.json
  stagehand inspect ping.json --dsl

For command-specific help, run:
  stagehand <command> --help`)
}
