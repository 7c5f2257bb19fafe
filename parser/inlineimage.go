package parser

import (
	"fmt"

	"github.com/pdftools/contentstream/object"
)

// ParseInlineImageDict reads the dictionary following `BI`: Name→Value
// pairs via repeated ParseObject, until an Operator token with keyword
// `ID` (§4.9). Short keys are expanded to their full names. If the
// dictionary declares ImageMask=true with no Decode entry, Decode
// defaults to [0, 1].
func (p *Parser) ParseInlineImageDict() (object.Dict, error) {
	out := object.Dict{}
	for {
		res, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		if res.Operator == "ID" {
			break
		}
		if res.Operator != "" || res.NoObject {
			return nil, fmt.Errorf("parser: unexpected token in inline image dictionary")
		}
		keyStr, ok := res.Value.(object.Str)
		if !ok || !keyStr.IsName {
			return nil, fmt.Errorf("parser: expected name key in inline image dictionary")
		}
		key := ExpandInlineImageKey(object.Name(keyStr.Bytes))

		valRes, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		if valRes.Operator != "" || valRes.NoObject {
			return nil, fmt.Errorf("parser: expected value for inline image key %s", key)
		}
		out[key] = object.NewLiteral(valRes.Value)
	}

	if mask, ok := out["ImageMask"]; ok {
		if b, ok := mask.AsBool(); ok && b {
			if _, present := out["Decode"]; !present {
				out["Decode"] = object.NewLiteral(object.Array{object.Number(0), object.Number(1)})
			}
		}
	}
	return out, nil
}

// ParseInlineImageData consumes the image payload following `ID`, per
// §4.9: exactly one optional CR then one optional LF or space, then
// raw bytes up to (but not including) a whitespace byte immediately
// followed by `EI`. It leaves the parser positioned just past `EI`.
func (p *Parser) ParseInlineImageData() ([]byte, error) {
	rest := p.Bytes()
	pos := 0
	if pos < len(rest) && rest[pos] == '\r' {
		pos++
	}
	if pos < len(rest) && (rest[pos] == '\n' || rest[pos] == ' ') {
		pos++
	}
	p.SkipBytes(pos)

	data := p.Bytes()
	for i := 0; i+2 < len(data); i++ {
		if isInlineImageWhitespace(data[i]) && data[i+1] == 'E' && data[i+2] == 'I' {
			payload := data[:i]
			p.SkipBytes(i + 3)
			return cloneBytes(payload), nil
		}
	}
	return nil, fmt.Errorf("parser: unterminated inline image data (no EI marker)")
}

func isInlineImageWhitespace(b byte) bool {
	switch b {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	default:
		return false
	}
}
