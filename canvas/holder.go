package canvas

import "weak"

// SinkHolder is the strong-reference box a host keeps alive for as
// long as it wants the sink reachable. The interpreter's driver never
// holds a SinkHolder directly: it holds a weak.Pointer[SinkHolder]
// (see interp.Driver), upgrading it once per Iterate step and
// releasing the strong reference at the end of the step (§4.10, §5),
// so that dropping the host's reference to the SinkHolder lets it — and
// the Sink it wraps — be collected between steps.
type SinkHolder struct {
	Sink Sink
}

// NewSinkHolder wraps sink in a SinkHolder.
func NewSinkHolder(sink Sink) *SinkHolder {
	return &SinkHolder{Sink: sink}
}

// Weak returns a weak pointer to h, for the driver to store.
func (h *SinkHolder) Weak() weak.Pointer[SinkHolder] {
	return weak.Make(h)
}
