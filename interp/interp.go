// Package interp implements the content-stream operand-stack
// evaluator: given a byte buffer, a resource map, and a command sink,
// it drives the sink through the 70+ PDF content operators (§4.4),
// maintaining graphics state, the in-flight path, and the text
// formatter along the way. See Driver (driver.go) for the
// externally-steppable wrapper that holds only a weak reference to
// the sink (§4.10).
package interp

import (
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/pdftools/contentstream/canvas"
	"github.com/pdftools/contentstream/collab"
	"github.com/pdftools/contentstream/object"
	"github.com/pdftools/contentstream/parser"
)

// Interpreter executes one content stream against one sink. It is
// re-entrant per Form XObject invocation: a Form is interpreted by a
// fresh, nested Interpreter sharing the caller's color spaces are not
// shared automatically — each sub-interpreter starts from a fresh
// GraphicsState, per the PDF content-stream model (a Form XObject's
// content stream operates in its own initial graphics state, modified
// only by the Matrix/BBox clip the caller applies around it).
type Interpreter struct {
	p         *parser.Parser
	stack     parser.Stack
	sink      canvas.Sink
	resources object.Resources
	factories collab.Factories
	opts      Options

	gs      GraphicsState
	gsStack []GraphicsState

	path        canvas.Path
	pendingClip canvas.ClipMode

	catchExceptions bool // BX ... EX bracket (§4.4, §7)

	// formDepth guards against runaway Form XObject recursion (a form
	// invoking itself, directly or indirectly); not in the spec's
	// text but necessary for an externally-driven loop not to spin
	// forever on malformed input.
	formDepth int

	// sf deduplicates concurrent cache misses on the same Form
	// XObject (§4.8, §9's set-once memo): shared across a root
	// interpreter and every sub-interpreter it spawns for nested
	// forms.
	sf *singleflight.Group
}

// maxFormDepth bounds Form XObject recursion.
const maxFormDepth = 32

// New returns an Interpreter ready to interpret data against sink,
// using resources for name lookups and opts.Factories to resolve
// collaborators.
func New(data []byte, resources object.Resources, sink canvas.Sink, opts Options) (*Interpreter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("interp: invalid options: %w", err)
	}
	return &Interpreter{
		p:               parser.New(data),
		sink:            sink,
		resources:       resources,
		factories:       opts.Factories,
		opts:            opts,
		gs:              newGraphicsState(),
		sf:              &singleflight.Group{},
		catchExceptions: opts.InitialCatchExceptions,
	}, nil
}

// Status is the result of one Step, mirroring the driver's per-step
// return codes (§4.10). Step itself never returns StatusStopped; only
// the weak-reference-holding Driver can determine it.
type Status int

const (
	StatusRunning Status = iota
	StatusCompleted
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "RUNNING"
	case StatusCompleted:
		return "COMPLETED"
	case StatusStopped:
		return "STOPPED"
	default:
		return "<invalid status>"
	}
}

// Step performs exactly one parseObject() call and its consequence:
// pushing a literal, dispatching an operator, or (at end of stream)
// reporting completion.
func (ip *Interpreter) Step() (Status, error) {
	res, err := ip.p.ParseObject()
	if err != nil {
		return StatusRunning, lexError(err)
	}
	if res.NoObject {
		return StatusCompleted, nil
	}
	if res.Operator != "" {
		if err := ip.dispatch(res.Operator); err != nil {
			return StatusRunning, err
		}
		return StatusRunning, nil
	}
	ip.stack.Push(res.Value)
	return StatusRunning, nil
}

// Run drives the interpreter to completion, as used for Form XObject
// sub-interpretation (§4.8) and any caller that does not need external
// stepping.
func (ip *Interpreter) Run() error {
	for {
		status, err := ip.Step()
		if err != nil {
			return err
		}
		if status == StatusCompleted {
			return nil
		}
	}
}

// debugf emits an optional debug message at level, a no-op unless the
// host configured a sink for it (§6).
func (ip *Interpreter) debugf(level int, format string, args ...any) {
	if ip.opts.Debug != nil && level <= ip.opts.DebugLevel {
		ip.opts.Debug(level, format, args...)
	}
}

// dispatch executes one operator, applying the post-operator hygiene
// and BX/EX error-suppression policy of §4.4/§7 uniformly around the
// per-operator logic in execOperator.
func (ip *Interpreter) dispatch(op string) error {
	err := ip.execOperator(op)
	if n := ip.stack.Len(); n > 0 {
		ip.debugf(1, "operator %q left %d residual operand(s) on the stack; clearing", op, n)
	}
	ip.stack.Clear()
	if err == nil {
		return nil
	}
	if op == "BX" || op == "EX" {
		// These always succeed in execOperator; unreachable in
		// practice, kept for defensiveness.
		return err
	}
	if ip.catchExceptions && tolerable(err) {
		ip.debugf(1, "suppressed error for operator %q: %s", op, err)
		return nil
	}
	return fmt.Errorf("operator %q: %w", op, err)
}
