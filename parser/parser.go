// Package parser implements the object grammar layered on top of
// package token (§4.2): it turns a token stream into object.Value
// literals and raw operator keywords, and owns the operand stack
// discipline (§4.3) the dispatcher in package interp pops operands
// off of.
package parser

import (
	"fmt"

	"github.com/pdftools/contentstream/object"
	"github.com/pdftools/contentstream/token"
)

// Short-key expansion table for inline image dictionaries (§4.9).
var inlineImageKeys = map[object.Name]object.Name{
	"BPC": "BitsPerComponent",
	"CS":  "ColorSpace",
	"D":   "Decode",
	"DP":  "DecodeParms",
	"F":   "Filter",
	"H":   "Height",
	"IM":  "ImageMask",
	"W":   "Width",
	"I":   "Interpolate",
}

// ParseResult is the outcome of one call to ParseObject: exactly one
// of Value (a literal to push) or Operator (a keyword to dispatch) is
// meaningful, unless NoObject is true, in which case neither is (the
// stream yielded a token that isn't an object at all: Unknown, Eof,
// or a stray array/dict terminator).
type ParseResult struct {
	Value    object.Value
	Operator string
	NoObject bool
}

// Parser wraps a token.Lexer with the recursive-descent object
// grammar of §4.2.
type Parser struct {
	lx *token.Lexer
}

// New returns a Parser reading content-stream bytes from data.
func New(data []byte) *Parser {
	return &Parser{lx: token.NewLexer(data)}
}

// Position reports the current byte offset into the underlying
// buffer.
func (p *Parser) Position() int { return p.lx.Position() }

// SkipBytes consumes n raw bytes bypassing tokenization, and Bytes
// exposes the remaining untokenized input; both are delegated to the
// lexer for the inline-image reader (see ParseInlineImageData).
func (p *Parser) SkipBytes(n int) []byte { return p.lx.SkipBytes(n) }
func (p *Parser) Bytes() []byte          { return p.lx.Bytes() }
func (p *Parser) SeekTo(pos int)         { p.lx.SeekTo(pos) }

// ParseObject fetches the next object or operator per §4.2.
func (p *Parser) ParseObject() (ParseResult, error) {
	tok, err := p.lx.Next()
	if err != nil {
		return ParseResult{}, err
	}
	return p.parseFromToken(tok)
}

func (p *Parser) parseFromToken(tok token.Token) (ParseResult, error) {
	switch tok.Kind {
	case token.Number:
		f, err := tok.Float()
		if err != nil {
			return ParseResult{}, fmt.Errorf("parser: malformed number %q: %w", tok.Value, err)
		}
		return ParseResult{Value: object.Number(f)}, nil

	case token.String:
		return ParseResult{Value: object.Str{Bytes: cloneBytes(tok.Value)}}, nil

	case token.HexString:
		// Yield raw bytes; no character transcoding is performed here
		// (§9 open question) — the font/string collaborator decides
		// encoding.
		return ParseResult{Value: object.Str{Bytes: cloneBytes(tok.Value)}}, nil

	case token.Name:
		return ParseResult{Value: object.Str{Bytes: cloneBytes(tok.Value), IsName: true}}, nil

	case token.ArrayBegin:
		arr, err := p.parseArray()
		if err != nil {
			return ParseResult{}, err
		}
		return ParseResult{Value: arr}, nil

	case token.DictBegin:
		d, err := p.parseDict()
		if err != nil {
			return ParseResult{}, err
		}
		return ParseResult{Value: d}, nil

	case token.Operator:
		// A handful of keywords are lexed as Operator tokens (same
		// character class as any other keyword) but are object
		// literals, not operators to dispatch.
		switch string(tok.Value) {
		case "true":
			return ParseResult{Value: object.Bool(true)}, nil
		case "false":
			return ParseResult{Value: object.Bool(false)}, nil
		case "null":
			return ParseResult{Value: object.Null{}}, nil
		}
		return ParseResult{Operator: string(tok.Value)}, nil

	default:
		// Unknown, EOF, ProcBegin/ProcEnd, or a stray ArrayEnd/DictEnd:
		// none of these are objects. EOF at top level signals stream
		// completion to the driver (§4.10). Inside an array or dict,
		// parseArray/parseDict turn a NoObject result into a mismatch
		// error; at top level, a stray terminator (input with more
		// closers than openers) lands here like Unknown and EOF.
		return ParseResult{NoObject: true}, nil
	}
}

// parseArray collects Values via recursive ParseObject until
// ArrayEnd; a mismatched terminator (DictEnd, EOF) is a hard error.
func (p *Parser) parseArray() (object.Array, error) {
	var out object.Array
	for {
		tok, err := p.lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.ArrayEnd {
			return out, nil
		}
		if tok.Kind == token.EOF {
			return nil, fmt.Errorf("parser: unterminated array")
		}
		res, err := p.parseFromToken(tok)
		if err != nil {
			return nil, err
		}
		if res.NoObject || res.Operator != "" {
			return nil, fmt.Errorf("parser: unexpected token inside array")
		}
		out = append(out, res.Value)
	}
}

// parseDict reads alternating (Name, Value) pairs via recursive
// ParseObject until the terminating DictEnd; a mismatched terminator
// is a hard error. Values are wrapped as object.PdfObject via
// object.NewLiteral, since this is the sole consumer of array/dict
// terminator tokens and the dispatcher never sees them.
func (p *Parser) parseDict() (object.Dict, error) {
	out := object.Dict{}
	for {
		tok, err := p.lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.DictEnd {
			return out, nil
		}
		if tok.Kind == token.EOF {
			return nil, fmt.Errorf("parser: unterminated dictionary")
		}
		if tok.Kind != token.Name {
			return nil, fmt.Errorf("parser: expected dictionary key, got %s", tok.Kind)
		}
		key := object.Name(cloneBytes(tok.Value))

		valTok, err := p.lx.Next()
		if err != nil {
			return nil, err
		}
		res, err := p.parseFromToken(valTok)
		if err != nil {
			return nil, err
		}
		if res.NoObject || res.Operator != "" {
			return nil, fmt.Errorf("parser: expected dictionary value for key %s", key)
		}
		out[key] = object.NewLiteral(res.Value)
	}
}

// ExpandInlineImageKey expands a BI dictionary's short key to its full
// name, or returns it unchanged if it is not one of the abbreviations
// in §4.9.
func ExpandInlineImageKey(short object.Name) object.Name {
	if full, ok := inlineImageKeys[short]; ok {
		return full
	}
	return short
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
