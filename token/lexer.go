package token

import "fmt"

func isWhitespace(b byte) bool {
	switch b {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	default:
		return false
	}
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '[', ']', '{', '}', '<', '>', '/', '%':
		return true
	default:
		return isWhitespace(b)
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func hexVal(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}

// Lexer turns a byte slice into a stream of Token values.
//
// It supports exactly one token of pushback ("throwback"): Peek
// returns the next token without consuming it, and repeated calls to
// Peek are cheap (the token is cached). Next consumes it.
type Lexer struct {
	data []byte
	pos  int

	cached    Token
	cacheErr  error
	hasCached bool
}

// NewLexer returns a Lexer reading from data.
func NewLexer(data []byte) *Lexer {
	return &Lexer{data: data}
}

// Position returns the current byte offset: just past the last token
// scanned, which is the token a still-cached Peek returned if there is
// one.
func (lx *Lexer) Position() int { return lx.pos }

// SeekTo resets the lexer to read starting at the given byte offset,
// discarding any cached pushback token.
func (lx *Lexer) SeekTo(pos int) {
	lx.pos = pos
	lx.hasCached = false
}

// Bytes returns the remaining, not-yet-tokenized input.
func (lx *Lexer) Bytes() []byte {
	if lx.pos >= len(lx.data) {
		return nil
	}
	return lx.data[lx.pos:]
}

// SkipBytes consumes and returns the next n raw bytes, bypassing
// tokenization. Used by the inline-image reader (BI ... ID ... EI),
// whose payload is arbitrary binary data.
func (lx *Lexer) SkipBytes(n int) []byte {
	end := lx.pos + n
	if end > len(lx.data) {
		end = len(lx.data)
	}
	out := lx.data[lx.pos:end]
	lx.pos = end
	lx.hasCached = false
	return out
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() (Token, error) {
	if !lx.hasCached {
		lx.cached, lx.cacheErr = lx.scan()
		lx.hasCached = true
	}
	return lx.cached, lx.cacheErr
}

// Next consumes and returns the next token.
func (lx *Lexer) Next() (Token, error) {
	tok, err := lx.Peek()
	lx.hasCached = false
	return tok, err
}

// IsEOF reports whether the next token is EOF.
func (lx *Lexer) IsEOF() bool {
	tok, _ := lx.Peek()
	return tok.Kind == EOF
}

func (lx *Lexer) readByte() (byte, bool) {
	if lx.pos >= len(lx.data) {
		return 0, false
	}
	b := lx.data[lx.pos]
	lx.pos++
	return b, true
}

func (lx *Lexer) peekByte() (byte, bool) {
	if lx.pos >= len(lx.data) {
		return 0, false
	}
	return lx.data[lx.pos], true
}

func (lx *Lexer) unread() {
	if lx.pos > 0 {
		lx.pos--
	}
}

// scan performs the actual tokenization, skipping whitespace and comments.
func (lx *Lexer) scan() (Token, error) {
	for {
		b, ok := lx.readByte()
		if !ok {
			return Token{Kind: EOF}, nil
		}
		if isWhitespace(b) {
			continue
		}
		if b == '%' {
			lx.skipComment()
			continue
		}
		return lx.scanToken(b)
	}
}

// skipComment consumes bytes to the end of the line. A LF immediately
// followed by a CR is treated as a single line terminator.
func (lx *Lexer) skipComment() {
	for {
		b, ok := lx.readByte()
		if !ok {
			return
		}
		if b == '\n' {
			if nxt, ok := lx.peekByte(); ok && nxt == '\r' {
				lx.pos++
			}
			return
		}
		if b == '\r' {
			return
		}
	}
}

func (lx *Lexer) scanToken(b byte) (Token, error) {
	switch b {
	case '[':
		return Token{Kind: ArrayBegin}, nil
	case ']':
		return Token{Kind: ArrayEnd}, nil
	case '{':
		return Token{Kind: ProcBegin}, nil
	case '}':
		return Token{Kind: ProcEnd}, nil
	case '(':
		return lx.scanString()
	case '<':
		return lx.scanAngle()
	case '>':
		nxt, ok := lx.readByte()
		if !ok || nxt != '>' {
			return Token{}, fmt.Errorf("token: unexpected lone '>' at offset %d", lx.pos)
		}
		return Token{Kind: DictEnd}, nil
	case '/':
		return lx.scanName()
	case '+', '-', '.':
		return lx.scanNumberOrUnknown(b)
	default:
		if isDigit(b) {
			return lx.scanNumberOrUnknown(b)
		}
		return lx.scanKeyword(b)
	}
}

func (lx *Lexer) scanAngle() (Token, error) {
	nxt, ok := lx.peekByte()
	if ok && nxt == '<' {
		lx.pos++
		return Token{Kind: DictBegin}, nil
	}
	// Hex string: read hex digits until '>'. Non-hex bytes are
	// skipped silently; an odd trailing nibble is padded with a low
	// zero nibble.
	var out []byte
	var hi uint8
	haveHi := false
	for {
		b, ok := lx.readByte()
		if !ok {
			return Token{}, fmt.Errorf("token: unterminated hex string")
		}
		if b == '>' {
			break
		}
		v, isHex := hexVal(b)
		if !isHex {
			continue
		}
		if !haveHi {
			hi = v
			haveHi = true
		} else {
			out = append(out, hi<<4|v)
			haveHi = false
		}
	}
	if haveHi {
		out = append(out, hi<<4)
	}
	return Token{Kind: HexString, Value: out}, nil
}

func (lx *Lexer) scanName() (Token, error) {
	var out []byte
	for {
		b, ok := lx.peekByte()
		if !ok || isDelimiter(b) {
			break
		}
		lx.pos++
		out = append(out, b)
	}
	return Token{Kind: Name, Value: out}, nil
}

// scanString reads a literal string, starting just after the opening '('.
func (lx *Lexer) scanString() (Token, error) {
	var out []byte
	nesting := 0
	for {
		b, ok := lx.readByte()
		if !ok {
			return Token{}, fmt.Errorf("token: unterminated string literal")
		}
		switch {
		case b == '(':
			nesting++
			out = append(out, b)
		case b == ')':
			if nesting == 0 {
				return Token{Kind: String, Value: out}, nil
			}
			nesting--
			out = append(out, b)
		case b == '\\':
			emitted, ok2, err := lx.scanEscape()
			if err != nil {
				return Token{}, err
			}
			if ok2 {
				out = append(out, emitted)
			}
		case b == '\r':
			if nxt, ok := lx.peekByte(); ok && nxt == '\n' {
				lx.pos++
			}
			out = append(out, '\n')
		default:
			out = append(out, b)
		}
	}
}

// scanEscape reads one backslash escape sequence inside a literal
// string. It returns the byte to emit (if any) and whether anything
// should be emitted at all (false for line continuations).
func (lx *Lexer) scanEscape() (byte, bool, error) {
	b, ok := lx.readByte()
	if !ok {
		return 0, false, fmt.Errorf("token: unterminated escape in string literal")
	}
	switch b {
	case 'n':
		return '\n', true, nil
	case 'r':
		return '\r', true, nil
	case 't':
		return '\t', true, nil
	case 'b':
		return '\b', true, nil
	case 'f':
		return '\f', true, nil
	case '(', ')', '\\':
		return b, true, nil
	case '\n':
		return 0, false, nil // line continuation
	case '\r':
		if nxt, ok := lx.peekByte(); ok && nxt == '\n' {
			lx.pos++
		}
		return 0, false, nil
	default:
		if b < '0' || b > '7' {
			return b, true, nil
		}
		val := b - '0'
		for i := 0; i < 2; i++ {
			nxt, ok := lx.peekByte()
			if !ok || nxt < '0' || nxt > '7' {
				break
			}
			lx.pos++
			val = (val << 3) | (nxt - '0')
		}
		return val & 0xff, true, nil
	}
}

// scanNumberOrUnknown attempts to parse a number starting at the
// already-consumed byte first. If the bytes do not form a valid number
// (e.g. a lone '-' or '.'), it rewinds and hands them to scanKeyword,
// which yields an Unknown token for a non-letter first byte.
func (lx *Lexer) scanNumberOrUnknown(first byte) (Token, error) {
	start := lx.pos - 1
	var buf []byte
	buf = append(buf, first)

	if first == '+' || first == '-' {
		b, ok := lx.peekByte()
		if ok && isDigit(b) {
			lx.pos++
			buf = append(buf, b)
		}
	}

	sawDot := first == '.'
	for {
		b, ok := lx.peekByte()
		if !ok {
			break
		}
		if isDigit(b) {
			lx.pos++
			buf = append(buf, b)
			continue
		}
		if b == '.' && !sawDot {
			sawDot = true
			lx.pos++
			buf = append(buf, b)
			continue
		}
		break
	}

	// A bare sign or a bare '.' is not a number: rewind and lex as a keyword.
	hasDigit := false
	for _, c := range buf {
		if isDigit(c) {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		lx.pos = start
		b, _ := lx.readByte()
		return lx.scanKeyword(b)
	}
	return Token{Kind: Number, Value: buf}, nil
}

func (lx *Lexer) scanKeyword(first byte) (Token, error) {
	out := []byte{first}
	for {
		b, ok := lx.peekByte()
		if !ok || isDelimiter(b) {
			break
		}
		lx.pos++
		out = append(out, b)
	}
	isLetterOrQuote := (first >= 'A' && first <= 'Z') || (first >= 'a' && first <= 'z') || first == '\'' || first == '"'
	if !isLetterOrQuote {
		return Token{Kind: Unknown, Value: out}, nil
	}
	return Token{Kind: Operator, Value: out}, nil
}
