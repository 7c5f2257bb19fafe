package commands

import (
	"log"

	"github.com/pdftools/contentstream/collab"
	"github.com/pdftools/contentstream/interp"
	"github.com/pdftools/contentstream/object"
)

// fixedWidthFont is the only collaborator this CLI can supply on its
// own: without a real PDF object model behind it, there is no font
// program to measure glyphs from, so every glyph advances by the same
// amount. Good enough to drive the interpreter end to end.
type fixedWidthFont struct{}

func (fixedWidthFont) Width(rune) float64 { return 500 }

func demoFactories() collab.Factories {
	return collab.Factories{
		Font: func(object.PdfObject, object.Resources) (collab.Font, error) {
			return fixedWidthFont{}, nil
		},
	}
}

// demoOptions builds the Options shared by every subcommand, wiring
// the --debug flag to the standard logger.
func demoOptions() interp.Options {
	return interp.Options{
		Factories:  demoFactories(),
		DebugLevel: debugLevel,
		Debug: func(level int, format string, args ...any) {
			log.Printf("[debug %d] "+format, append([]any{level}, args...)...)
		},
	}
}
