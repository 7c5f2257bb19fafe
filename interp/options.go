package interp

import (
	"github.com/go-playground/validator/v10"

	"github.com/pdftools/contentstream/collab"
)

var validate = validator.New()

// Options configures a new Interpreter. Factories is the only
// required field; the debug level and logger default to "no output".
type Options struct {
	Factories collab.Factories `validate:"required"`

	// DebugLevel gates optional debug output (§6: "Optional debug
	// output goes to a host-provided sink keyed by an integer level
	// threshold"); 0 disables it.
	DebugLevel int `validate:"gte=0"`

	// Debug receives messages at or below DebugLevel. A nil Debug with
	// a positive DebugLevel is a construction error, since there would
	// be nowhere for the output to go.
	Debug func(level int, format string, args ...any) `validate:"-"`

	// MaxFormDepth caps nested Form XObject recursion (§4.8). Zero
	// means "use the package default" (maxFormDepth); a negative value
	// is rejected at construction rather than silently clamped.
	MaxFormDepth int `validate:"gte=0"`

	// InitialCatchExceptions seeds the BX/EX bracket flag (§4.4, §7) as
	// though execution already began inside one, for a host that wants
	// a whole content stream to tolerate unknown operators and
	// collaborator failures.
	InitialCatchExceptions bool
}

func (o Options) maxFormDepth() int {
	if o.MaxFormDepth > 0 {
		return o.MaxFormDepth
	}
	return maxFormDepth
}

// Validate checks o via struct tags and the cross-field debug-sink
// rule, returning a descriptive error instead of panicking deep inside
// the interpreter on a missing collaborator factory.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return err
	}
	if o.DebugLevel > 0 && o.Debug == nil {
		return errDebugSinkRequired
	}
	return nil
}

var errDebugSinkRequired = optionsError("DebugLevel > 0 requires a non-nil Debug sink")

type optionsError string

func (e optionsError) Error() string { return string(e) }
