package gc

import (
	"testing"

	"github.com/ppyne/protoscript/internal/object"
)

type fakeEnv struct {
	values []object.Value
	outer  *fakeEnv
}

func (e *fakeEnv) Trace(mark func(object.Value)) {
	if e == nil {
		return
	}
	for _, v := range e.values {
		mark(v)
	}
	e.outer.Trace(mark)
}

type fakeRoots struct {
	globals  []*object.Object
	current  *fakeEnv
	pendings []object.Value
}

func (r *fakeRoots) GlobalObjects() []*object.Object   { return r.globals }
func (r *fakeRoots) CurrentEnv() EnvTracer {
	if r.current == nil {
		return nil
	}
	return r.current
}
func (r *fakeRoots) PendingValues() []object.Value { return r.pendings }

func TestCollectSweepsUnreachableObjects(t *testing.T) {
	roots := &fakeRoots{}
	h := NewHeap(roots)

	reachable := h.Track(object.New(nil), 0)
	unreachable := h.Track(object.New(nil), 0)
	roots.globals = []*object.Object{reachable}

	h.Collect()

	if !reachable.Marked() {
		t.Fatal("reachable object should remain marked after sweep bookkeeping walk")
	}
	if len(h.objs) != 1 || h.objs[0].obj != reachable {
		t.Fatalf("expected only the reachable object to survive sweep, got %d entries", len(h.objs))
	}
	_ = unreachable
}

func TestCollectTracesPrototypeChainAndProperties(t *testing.T) {
	roots := &fakeRoots{}
	h := NewHeap(roots)

	proto := h.Track(object.New(nil), 0)
	child := h.Track(object.New(proto), 0)
	held := h.Track(object.New(nil), 0)
	child.Define("held", object.Obj(held), 0)
	roots.globals = []*object.Object{child}

	h.Collect()

	for _, o := range []*object.Object{proto, child, held} {
		found := false
		for _, e := range h.objs {
			if e.obj == o {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected object to survive collection: %p", o)
		}
	}
}

func TestCollectTracesArrayElements(t *testing.T) {
	roots := &fakeRoots{}
	h := NewHeap(roots)

	arr := h.Track(object.NewArray(nil), 0)
	elem := h.Track(object.New(nil), 0)
	arr.SetIndex(0, object.Obj(elem))
	roots.globals = []*object.Object{arr}

	h.Collect()

	for _, e := range h.objs {
		if e.obj == elem {
			return
		}
	}
	t.Fatal("expected array element to survive collection via tracing")
}

func TestCollectTracesCurrentEnvAndPendingValues(t *testing.T) {
	roots := &fakeRoots{}
	h := NewHeap(roots)

	fromEnv := h.Track(object.New(nil), 0)
	fromPending := h.Track(object.New(nil), 0)
	roots.current = &fakeEnv{values: []object.Value{object.Obj(fromEnv)}}
	roots.pendings = []object.Value{object.Obj(fromPending)}

	h.Collect()

	if len(h.objs) != 2 {
		t.Fatalf("expected both env-rooted and pending-rooted objects to survive, got %d", len(h.objs))
	}
}

func TestPushPopRootEnvKeepsSavedEnvironmentAlive(t *testing.T) {
	roots := &fakeRoots{}
	h := NewHeap(roots)

	saved := h.Track(object.New(nil), 0)
	h.PushRootEnv(&fakeEnv{values: []object.Value{object.Obj(saved)}})

	h.Collect()
	if len(h.objs) != 1 {
		t.Fatal("expected object referenced by a pushed root env to survive")
	}

	h.PopRootEnv()
	h.Collect()
	if len(h.objs) != 0 {
		t.Fatal("expected object to be swept once its root env is popped")
	}
}

func TestSafePointCollectsOnlyPastThreshold(t *testing.T) {
	roots := &fakeRoots{}
	h := NewHeap(roots)
	h.threshold = 100

	h.Track(object.New(nil), 10)
	h.SafePoint()
	if h.Collections() != 0 {
		t.Fatal("expected no collection below threshold")
	}

	h.Track(object.New(nil), 1000)
	h.SafePoint()
	if h.Collections() != 1 {
		t.Fatalf("expected exactly one collection once over threshold, got %d", h.Collections())
	}
}

func TestFinalizeClearsBufferPayload(t *testing.T) {
	roots := &fakeRoots{}
	h := NewHeap(roots)

	buf := h.Track(object.NewBuffer(nil, 8), 0)
	h.Collect()

	if len(h.objs) != 0 {
		t.Fatal("expected unreferenced buffer to be swept")
	}
	if buf.BufferSlot() != nil {
		t.Fatal("expected swept buffer's internal slot cleared")
	}
}

func TestInternTableDedupsAndClearsOnCollect(t *testing.T) {
	roots := &fakeRoots{}
	h := NewHeap(roots)

	a := h.Intern().Intern("length")
	b := h.Intern().Intern("length")
	if a != b {
		t.Fatal("expected interned strings to compare equal")
	}
	if h.Intern().Len() != 1 {
		t.Fatalf("expected one cached entry, got %d", h.Intern().Len())
	}

	h.Collect()
	if h.Intern().Len() != 0 {
		t.Fatal("expected intern table cleared after a collection")
	}
}
