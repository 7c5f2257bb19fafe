package interp

import (
	"github.com/pdftools/contentstream/object"
	"github.com/pdftools/contentstream/parser"
)

// defaultGlyphWidth is used when no font has been resolved via `Tf`
// yet (malformed or tolerant input); it keeps text matrix advance
// roughly plausible rather than collapsing every glyph to zero width.
const defaultGlyphWidth = 500 // glyph-space units, 1/1000 em

// showText advances the text matrix by the sum of each byte's glyph
// width plus character/word spacing, scaled by font size and
// horizontal scaling, per the standard PDF text-positioning formula.
// No bytes-to-glyph shaping or sink emission happens here: the sink's
// command set (§6) has no dedicated text-drawing operation, so `Tj`
// and friends affect only the text formatter's matrices, exactly as
// §5's lifecycle note describes ("Iteration advances one command per
// step... Cleanup flushes the text formatter").
func (ip *Interpreter) showText(b []byte) error {
	ts := &ip.gs.Text
	scale := ts.HScale / 100
	for _, by := range b {
		w := float64(defaultGlyphWidth)
		if ts.Font != nil {
			w = ts.Font.Width(rune(by))
		}
		adv := (w/1000*ts.FontSize + ts.CharSpace + wordSpaceFor(by, ts.WordSpace)) * scale
		ts.Matrix = object.Matrix{1, 0, 0, 1, adv, 0}.Mul(ts.Matrix)
	}
	return nil
}

// wordSpaceFor applies word spacing only to the single-byte code 32
// (space), per the PDF text model.
func wordSpaceFor(b byte, wordSpace float64) float64 {
	if b == ' ' {
		return wordSpace
	}
	return 0
}

// showTextSpaced implements `TJ`: the array alternates strings (shown
// via showText) and numeric offsets, which adjust the text matrix
// horizontally by -(offset/1000)*FontSize*HScale without any
// character/word spacing applied (it is a kerning correction, not a
// glyph).
func (ip *Interpreter) showTextSpaced(arr object.Array) error {
	ts := &ip.gs.Text
	scale := ts.HScale / 100
	for _, el := range arr {
		switch v := el.(type) {
		case object.Str:
			if err := ip.showText(v.Bytes); err != nil {
				return err
			}
		case object.Number:
			adv := -float64(v) / 1000 * ts.FontSize * scale
			ts.Matrix = object.Matrix{1, 0, 0, 1, adv, 0}.Mul(ts.Matrix)
		default:
			return &parser.TypeError{Expected: "string or number", Got: el}
		}
	}
	return nil
}
