package interp

import (
	"weak"

	"github.com/pdftools/contentstream/canvas"
	"github.com/pdftools/contentstream/object"
)

// Driver is the externally-steppable wrapper around an Interpreter
// (§4.10, §5): it holds only a weak.Pointer[canvas.SinkHolder], not
// the sink itself, so a host that drops its strong reference to the
// SinkHolder between steps lets the sink (and everything it retains)
// be collected. Each Iterate call upgrades the weak pointer, runs
// exactly one Interpreter.Step against it, and releases the strong
// reference before returning.
type Driver struct {
	ip       *Interpreter
	weakSink weak.Pointer[canvas.SinkHolder]
	done     bool
}

// NewDriver constructs a Driver. Setup work (allocating the operand
// stack, path, and initial GraphicsState) happens in New/Interpreter
// construction; there is no separate allocation step to defer, but
// Setup is still exposed as a method for hosts that model the
// lifecycle as setup/iterate/cleanup stages explicitly.
func NewDriver(data []byte, resources object.Resources, holder *canvas.SinkHolder, opts Options) (*Driver, error) {
	ip, err := New(data, resources, nil, opts)
	if err != nil {
		return nil, err
	}
	return &Driver{ip: ip, weakSink: holder.Weak()}, nil
}

// Setup is a no-op beyond what NewDriver already did; present for
// symmetry with the setup/iterate/cleanup surface of §6.
func (d *Driver) Setup() {}

// Iterate performs one step: parseObject(), then push/dispatch/complete
// as Interpreter.Step describes, against whichever sink the weak
// pointer currently resolves to.
func (d *Driver) Iterate() (Status, error) {
	if d.done {
		return StatusCompleted, nil
	}
	holder := d.weakSink.Value()
	if holder == nil {
		d.done = true
		return StatusStopped, nil
	}
	d.ip.sink = holder.Sink
	status, err := d.ip.Step()
	d.ip.sink = nil // release; holder itself goes out of scope when Iterate returns
	if err != nil {
		d.done = true
		return StatusRunning, err
	}
	if status == StatusCompleted {
		d.done = true
	}
	return status, nil
}

// Go loops Iterate until a non-RUNNING status (or an error), when
// blocking is true; when false it performs exactly one Iterate and
// returns immediately, for hosts that want to interleave stepping
// with other work on the same goroutine.
func (d *Driver) Go(blocking bool) (Status, error) {
	if !blocking {
		return d.Iterate()
	}
	for {
		status, err := d.Iterate()
		if err != nil || status != StatusRunning {
			return status, err
		}
	}
}

// Cleanup signals sink completion (Finish), then drops the Driver's
// reference to its Interpreter. The text formatter holds no buffered
// output, so there is nothing of it to flush. If the sink is already gone, Cleanup is a no-op beyond
// that.
func (d *Driver) Cleanup() {
	if holder := d.weakSink.Value(); holder != nil {
		holder.Sink.Finish()
	}
	d.ip = nil
	d.done = true
}
