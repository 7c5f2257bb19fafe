// Package collab defines the small collaborator interfaces the
// interpreter consults for everything explicitly out of its own
// scope: color-space semantics, font metrics, image decoding, pattern
// and shading construction. Each collaborator is a static factory
// (PDF object + resources → instance) plus a handful of per-instance
// query methods; the interpreter only ever calls through these
// interfaces and never inspects a collaborator's internals.
package collab

import (
	"github.com/pdftools/contentstream/object"
)

// ColorSpace is the result of resolving a `cs`/`CS` operand (a name
// that is either a device color space keyword or a resource lookup)
// through a ColorSpaceFactory.
type ColorSpace interface {
	// NumComponents reports how many numeric operands `sc`/`scn`
	// should pop for this space (e.g. 1 for Gray, 3 for RGB, 4 for
	// CMYK, variable for Indexed/Separation/DeviceN as resolved by the
	// factory).
	NumComponents() int
	// IsPattern reports whether this space is a Pattern color space,
	// in which case `scn`/`SCN` expect a trailing pattern name.
	IsPattern() bool
	// Color builds an opaque color value from NumComponents() floats;
	// the returned value is embedded in a Paint and is otherwise
	// meaningless to the interpreter.
	Color(components []float64) (any, error)
}

// ColorSpaceFactory constructs a ColorSpace from its defining PDF
// object (found in the ColorSpace resource category, or synthesized
// for a device color space keyword with no resource lookup) and the
// current resources, for color spaces whose definition itself
// references other resources (Indexed base spaces, Separation
// alternate spaces).
type ColorSpaceFactory func(obj object.PdfObject, res object.Resources) (ColorSpace, error)

// Font is the result of resolving a `Tf` font name through a
// FontFactory.
type Font interface {
	// Width returns the advance width (in glyph space, 1/1000 em)
	// for the given byte-string-decoded code; used by the text
	// formatter to advance the text matrix between show operations.
	Width(code rune) float64
}

// FontFactory constructs a Font from its Font resource entry.
type FontFactory func(obj object.PdfObject, res object.Resources) (Font, error)

// Image is the result of resolving an XObject/Image, or an inline
// image's dictionary and data, through an ImageFactory.
type Image interface {
	// Dimensions reports pixel width and height, used to size the
	// unit square the image command paints into.
	Dimensions() (width, height int)
}

// ImageFactory constructs an Image either from an XObject PdfObject
// (data == nil, read via obj.StreamBytes()) or from an inline image's
// parsed dictionary and raw data buffer (obj == nil, data != nil).
type ImageFactory func(obj object.PdfObject, dict object.Dict, data []byte, res object.Resources) (Image, error)

// Pattern is the result of resolving an `scn` trailing pattern name
// in a Pattern color space, through a PatternFactory.
type Pattern interface {
	// PatternType reports 1 (tiling) or 2 (shading), mirroring the PDF
	// /PatternType entry; purely informational for the sink.
	PatternType() int
}

// PatternFactory constructs a Pattern from its Pattern resource entry.
type PatternFactory func(obj object.PdfObject, res object.Resources) (Pattern, error)

// Shader is the result of resolving an `sh` operand through a
// ShaderFactory.
type Shader interface {
	// BBox reports the shading's bounding box in shading space, if
	// the underlying dictionary declares one; ok is false otherwise
	// and the sink receives a zero-value bbox meaning "unbounded".
	BBox() (bbox object.Rectangle, ok bool)
}

// ShaderFactory constructs a Shader from its Shading resource entry.
type ShaderFactory func(obj object.PdfObject, res object.Resources) (Shader, error)

// Factories bundles the five collaborator factories the interpreter
// needs; a host assembles one of these once (typically backed by its
// own PDF object model and font/image decoding libraries) and passes
// it to interp.New.
type Factories struct {
	ColorSpace ColorSpaceFactory
	Font       FontFactory
	Image      ImageFactory
	Pattern    PatternFactory
	Shader     ShaderFactory
}
