package object

import "fmt"

// Standard resource categories, per the PDF resource dictionary.
const (
	CategoryExtGState  Name = "ExtGState"
	CategoryColorSpace Name = "ColorSpace"
	CategoryPattern    Name = "Pattern"
	CategoryShading    Name = "Shading"
	CategoryXObject    Name = "XObject"
	CategoryFont       Name = "Font"
	CategoryProperties Name = "Properties"
)

// Resources wraps a resource dictionary PdfObject and implements
// find_resource(name, category) (§4.5): look up the category
// sub-dictionary, then the name within it. Missing category, wrong
// type, or missing key all report ok=false; the caller decides
// whether that is an error (strict) or a tolerated miss (`sh`).
type Resources struct {
	Dict PdfObject // the resource dictionary itself, or nil
}

// Find resolves name within category. ok is false on any kind of miss
// (absent category sub-dict, category not a dict, or name not a key
// of it); the caller is responsible for turning that into a Resource
// error or silently tolerating it.
func (r Resources) Find(category, name Name) (PdfObject, bool) {
	if r.Dict == nil {
		return nil, false
	}
	cat, ok := r.Dict.DictGet(category)
	if !ok || cat.ObjKind() != KindDict {
		return nil, false
	}
	obj, ok := cat.DictGet(name)
	if !ok {
		return nil, false
	}
	return obj, true
}

// Merge returns the resource map used when entering a Form XObject:
// the caller's resources overridden, key by key within each category,
// by the form's own /Resources (§4.8). A nil form resource dict means
// "inherit the caller's resources unchanged".
func Merge(caller, form Resources) Resources {
	if form.Dict == nil {
		return caller
	}
	if caller.Dict == nil {
		return form
	}
	return Resources{Dict: &mergedDict{base: caller.Dict, over: form.Dict}}
}

// mergedDict implements PdfObject over two resource dictionaries,
// resolving DictGet(category) by merging the category sub-dicts of
// base and over (over wins on key collision) rather than picking one
// dictionary wholesale.
type mergedDict struct {
	base, over PdfObject
}

func (m *mergedDict) ObjKind() Kind { return KindDict }

func (m *mergedDict) DictGet(category Name) (PdfObject, bool) {
	baseCat, baseOK := m.base.DictGet(category)
	overCat, overOK := m.over.DictGet(category)
	switch {
	case overOK && overCat.ObjKind() == KindDict && baseOK && baseCat.ObjKind() == KindDict:
		return &mergedDict{base: baseCat, over: overCat}, true
	case overOK:
		return overCat, true
	case baseOK:
		return baseCat, true
	default:
		return nil, false
	}
}

func (m *mergedDict) ArrayLen() int                    { return 0 }
func (m *mergedDict) ArrayGet(int) (PdfObject, bool)    { return nil, false }
func (m *mergedDict) AsFloat() (float64, bool)          { return 0, false }
func (m *mergedDict) AsBool() (bool, bool)              { return false, false }
func (m *mergedDict) AsName() (Name, bool)              { return "", false }
func (m *mergedDict) AsString() (string, bool)          { return "", false }
func (m *mergedDict) StreamBytes() ([]byte, bool)       { return nil, false }
func (m *mergedDict) Cache() *FormCache                 { return m.over.Cache() }

// ResourceError reports a failed resource lookup: missing category,
// wrong type, or missing key.
type ResourceError struct {
	Category, Name Name
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource not found: %s in category %s", e.Name, e.Category)
}
