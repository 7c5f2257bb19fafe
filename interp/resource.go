package interp

import (
	"fmt"

	"github.com/pdftools/contentstream/collab"
	"github.com/pdftools/contentstream/object"
)

// deviceColorSpace implements collab.ColorSpace for the built-in
// DeviceGray/DeviceRGB/DeviceCMYK keywords, which never require a
// resource lookup (§4.4's G/g, RG/rg, K/k operators set one of these
// directly).
type deviceColorSpace struct {
	n int
}

func (d deviceColorSpace) NumComponents() int { return d.n }
func (deviceColorSpace) IsPattern() bool      { return false }
func (d deviceColorSpace) Color(c []float64) (any, error) {
	out := make([]float64, d.n)
	copy(out, c)
	return out, nil
}

var (
	deviceGray = deviceColorSpace{1}
	deviceRGB  = deviceColorSpace{3}
	deviceCMYK = deviceColorSpace{4}
)

// findResource looks up name in category, returning a *object.ResourceError
// on miss. Tolerant callers (currently only `sh`) inspect the error
// themselves rather than propagating it.
func (ip *Interpreter) findResource(category, name object.Name) (object.PdfObject, error) {
	obj, ok := ip.resources.Find(category, name)
	if !ok {
		return nil, &object.ResourceError{Category: category, Name: name}
	}
	return obj, nil
}

// resolveColorSpace resolves a `cs`/`CS` name operand: a device
// keyword, the special "Pattern" keyword, or a ColorSpace resource
// entry handed to the color-space factory.
func (ip *Interpreter) resolveColorSpace(name object.Name) (collab.ColorSpace, error) {
	switch name {
	case "DeviceGray", "CalGray", "G":
		return deviceGray, nil
	case "DeviceRGB", "CalRGB", "RGB":
		return deviceRGB, nil
	case "DeviceCMYK", "CMYK":
		return deviceCMYK, nil
	case "Pattern":
		return patternColorSpace{}, nil
	}
	obj, err := ip.findResource(object.CategoryColorSpace, name)
	if err != nil {
		return nil, err
	}
	if ip.factories.ColorSpace == nil {
		return nil, &CollaboratorError{Kind: "colorspace", Err: fmt.Errorf("no ColorSpace factory configured")}
	}
	cs, err := ip.factories.ColorSpace(obj, ip.resources)
	if err != nil {
		return nil, &CollaboratorError{Kind: "colorspace", Err: err}
	}
	return cs, nil
}

// patternColorSpace is the color space set by `cs /Pattern`: its only
// role is to make IsPattern() true so SCN/scn know to pop a trailing
// pattern name (§4.4).
type patternColorSpace struct{}

func (patternColorSpace) NumComponents() int { return 0 }
func (patternColorSpace) IsPattern() bool    { return true }
func (patternColorSpace) Color(c []float64) (any, error) {
	return nil, fmt.Errorf("Pattern color space has no direct color")
}

func (ip *Interpreter) resolveFont(name object.Name) (collab.Font, error) {
	obj, err := ip.findResource(object.CategoryFont, name)
	if err != nil {
		return nil, err
	}
	if ip.factories.Font == nil {
		return nil, &CollaboratorError{Kind: "font", Err: fmt.Errorf("no Font factory configured")}
	}
	f, err := ip.factories.Font(obj, ip.resources)
	if err != nil {
		return nil, &CollaboratorError{Kind: "font", Err: err}
	}
	return f, nil
}

func (ip *Interpreter) resolveXObject(name object.Name) (object.PdfObject, error) {
	return ip.findResource(object.CategoryXObject, name)
}

func (ip *Interpreter) resolveShading(name object.Name) (collab.Shader, error) {
	obj, err := ip.findResource(object.CategoryShading, name)
	if err != nil {
		return nil, err
	}
	if ip.factories.Shader == nil {
		return nil, &CollaboratorError{Kind: "shader", Err: fmt.Errorf("no Shader factory configured")}
	}
	sh, err := ip.factories.Shader(obj, ip.resources)
	if err != nil {
		return nil, &CollaboratorError{Kind: "shader", Err: err}
	}
	return sh, nil
}

func (ip *Interpreter) resolvePattern(name object.Name) (collab.Pattern, error) {
	obj, err := ip.findResource(object.CategoryPattern, name)
	if err != nil {
		return nil, err
	}
	if ip.factories.Pattern == nil {
		return nil, &CollaboratorError{Kind: "pattern", Err: fmt.Errorf("no Pattern factory configured")}
	}
	pat, err := ip.factories.Pattern(obj, ip.resources)
	if err != nil {
		return nil, &CollaboratorError{Kind: "pattern", Err: err}
	}
	return pat, nil
}

func (ip *Interpreter) resolveExtGState(name object.Name) (object.PdfObject, error) {
	return ip.findResource(object.CategoryExtGState, name)
}
