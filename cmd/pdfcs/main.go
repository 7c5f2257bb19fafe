// Package main provides the pdfcs command-line interface.
//
// pdfcs drives the content-stream interpreter over a raw, already-
// decoded content-stream file (the PDF object model itself is outside
// this module's scope) against a choice of demo sink.
//
// Usage:
//
//	pdfcs [command] [flags]
//
// Available Commands:
//
//	dump        Print every sink call the interpreter would emit
//	preview     Render a crude bounding-box preview PNG
//
// Use "pdfcs [command] --help" for more information about a command.
package main

import (
	"os"

	"github.com/pdftools/contentstream/cmd/pdfcs/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
