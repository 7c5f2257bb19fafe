package interp

import "github.com/pdftools/contentstream/canvas"

// execInlineImage implements `BI ... ID ... EI` (§4.9): the dictionary
// and data were already carved out structurally by package parser;
// here we only hand them to the image collaborator and emit the
// resulting Image command.
func (ip *Interpreter) execInlineImage() error {
	dict, err := ip.p.ParseInlineImageDict()
	if err != nil {
		return lexError(err)
	}
	data, err := ip.p.ParseInlineImageData()
	if err != nil {
		return lexError(err)
	}
	if ip.factories.Image == nil {
		return &CollaboratorError{Kind: "image", Err: errNoImageFactory}
	}
	img, err := ip.factories.Image(nil, dict, data, ip.resources)
	if err != nil {
		return &CollaboratorError{Kind: "image", Err: err}
	}
	mask := false
	if v, ok := dict["ImageMask"]; ok {
		mask, _ = v.AsBool()
	}
	ip.sink.Image(canvas.Image{Handle: img, ImageMask: mask})
	return nil
}

var errNoImageFactory = imageFactoryError("no Image factory configured")

type imageFactoryError string

func (e imageFactoryError) Error() string { return string(e) }
