// Package gc implements the tracing mark-and-sweep collector that owns
// every object.Object allocated by the interpreter. The VM exposes a
// single allocation entry point (Heap.Track); each call updates a running
// byte counter, and SafePoint triggers a collection once that counter
// crosses a threshold that grows with the live set after every cycle.
package gc

import "github.com/ppyne/protoscript/internal/object"

// baseObjectCost is the approximate per-object bookkeeping overhead
// (header, prototype pointer, property map) charged against heap_bytes
// regardless of Kind; per-property and per-element costs are added on top
// by the caller via Track's size argument.
const baseObjectCost = 48

const initialThreshold = 64 * 1024

// growthFactor is how far the threshold is pushed past the live-set size
// measured at the end of a collection, so the next cycle doesn't fire
// again almost immediately.
const growthFactor = 2.0

// EnvTracer is implemented by environment records so the collector can
// walk outer chains, fast parameter slots, and bound values without
// internal/gc importing internal/env (which would import internal/object
// for with-environments, and object already exports the Environment
// interface function closures use — importing env here isn't cyclic, but
// keeping gc decoupled from env lets either evolve independently).
type EnvTracer interface {
	Trace(mark func(object.Value))
}

// Roots supplies every root the collector starts a mark pass from, beyond
// the push/pop root stack that Heap itself owns.
type Roots interface {
	// GlobalObjects returns the VM global object, all built-in
	// prototypes, and host module objects registered at init.
	GlobalObjects() []*object.Object
	// CurrentEnv returns the active environment; its Trace walks the
	// entire outer chain. Nil is permitted before the VM has a running
	// frame.
	CurrentEnv() EnvTracer
	// PendingValues returns the pending exception value (if any) and the
	// current throw-value stack.
	PendingValues() []object.Value
}

type heapEntry struct {
	obj  *object.Object
	size int64
}

// Heap is the collector's view of the managed object graph. One Heap per
// VM instance.
type Heap struct {
	roots Roots
	objs  []heapEntry

	bytesUsed int64
	threshold int64

	envRoots []EnvTracer

	intern *InternTable

	collections int
}

// NewHeap creates an empty heap reporting roots through r.
func NewHeap(r Roots) *Heap {
	return &Heap{
		roots:     r,
		threshold: initialThreshold,
		intern:    NewInternTable(),
	}
}

// Intern returns the heap's shared identifier/index-string cache.
func (h *Heap) Intern() *InternTable { return h.intern }

// BytesUsed reports the current allocation counter.
func (h *Heap) BytesUsed() int64 { return h.bytesUsed }

// Collections reports how many mark-sweep cycles have run.
func (h *Heap) Collections() int { return h.collections }

// Track registers a freshly allocated object with the heap and charges
// size bytes (plus the fixed per-object overhead) against heap_bytes.
// Every constructor in internal/object must be paired with a Track call
// at its allocation site.
func (h *Heap) Track(o *object.Object, size int64) *object.Object {
	h.objs = append(h.objs, heapEntry{obj: o, size: size + baseObjectCost})
	h.bytesUsed += size + baseObjectCost
	return o
}

// PushRootEnv saves a prior environment on the GC root stack, keeping it
// reachable across a call even though it is no longer the current
// environment. PopRootEnv removes the most recently pushed one. Callers
// must push before evaluating a sub-expression that may allocate and
// leave a reference to the saved environment in a Go local variable, and
// pop once that reference is no longer needed.
func (h *Heap) PushRootEnv(e EnvTracer) {
	h.envRoots = append(h.envRoots, e)
}

func (h *Heap) PopRootEnv() {
	if n := len(h.envRoots); n > 0 {
		h.envRoots = h.envRoots[:n-1]
	}
}

// SafePoint is checked at the top of every evaluated AST node. It collects
// only when heap_bytes has crossed the threshold, so most evaluation steps
// pay only the cost of one comparison.
func (h *Heap) SafePoint() {
	if h.bytesUsed > h.threshold {
		h.Collect()
	}
}

// Collect runs one full mark-and-sweep cycle unconditionally.
func (h *Heap) Collect() {
	for _, e := range h.objs {
		e.obj.SetMarked(false)
	}

	var mark func(v object.Value)
	mark = func(v object.Value) {
		if !v.IsObject() {
			return
		}
		markObject(v.Object(), mark)
	}

	for _, o := range h.roots.GlobalObjects() {
		markObject(o, mark)
	}
	if env := h.roots.CurrentEnv(); env != nil {
		env.Trace(mark)
	}
	for _, v := range h.roots.PendingValues() {
		mark(v)
	}
	for _, e := range h.envRoots {
		if e != nil {
			e.Trace(mark)
		}
	}

	h.sweep()
	h.intern.clear()
	h.collections++
}

// markObject marks o and traces its outgoing references if this is the
// first time it has been reached this cycle. Recursion depth is bounded
// by heap depth, not call-stack depth of the interpreted program, since
// cyclic prototype/closure graphs are the norm here, not the exception.
func markObject(o *object.Object, mark func(object.Value)) {
	if o == nil || o.Marked() {
		return
	}
	o.SetMarked(true)

	if o.Prototype != nil {
		markObject(o.Prototype, mark)
	}
	o.TraceOwnProperties(mark)

	switch o.Kind {
	case object.ArrayKind:
		o.Elements(mark)
	case object.FunctionKind:
		traceFunction(o, mark)
	}
}

func traceFunction(o *object.Object, mark func(object.Value)) {
	slot := o.FuncSlot()
	if slot == nil {
		return
	}
	if slot.Closure != nil {
		if t, ok := slot.Closure.(EnvTracer); ok {
			t.Trace(mark)
		}
	}
	if slot.IsBound {
		markObject(slot.BoundTarget, mark)
		mark(slot.BoundThis)
		for _, a := range slot.BoundArgs {
			mark(a)
		}
	}
	// Parameter default-expression ASTs are referenced, not owned: ASTs
	// are not heap-managed and outlive the collector, so they are never
	// traced or swept here.
}

// sweep drops every unmarked entry from the heap's bookkeeping, running
// the Buffer/RegExp finalizers first and letting Go's own allocator
// reclaim the backing memory once nothing still references it.
func (h *Heap) sweep() {
	live := h.objs[:0]
	var liveBytes int64
	for _, e := range h.objs {
		if e.obj.Marked() {
			live = append(live, e)
			liveBytes += e.size
			continue
		}
		finalize(e.obj)
	}
	h.objs = live
	h.bytesUsed = liveBytes
	h.threshold = int64(float64(liveBytes)*growthFactor) + initialThreshold
}

// finalize severs an unreachable object's internal payload so large
// backing slices (Buffer bytes/words) and compiled regex programs are
// released immediately rather than waiting on Go's own collector to walk
// the dangling Internal pointer.
func finalize(o *object.Object) {
	switch o.Kind {
	case object.BufferKind, object.Buffer32Kind:
		if s := o.BufferSlot(); s != nil {
			s.Bytes = nil
			s.Words = nil
		}
	case object.RegExpKind:
		if s := o.RegExpSlot(); s != nil {
			s.Prog = nil
		}
	}
	o.Internal = nil
}
