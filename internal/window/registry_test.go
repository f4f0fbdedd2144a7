package window

import (
	"errors"
	"reflect"
	"testing"

	"github.com/1broseidon/gwk/internal/events"
	"github.com/1broseidon/gwk/internal/native"
)

func TestDestroyWhileEventsInFlight(t *testing.T) {
	f := newFixture(t)
	c, wp, _ := f.top(t, 0)
	h := c.Handle()
	nw := f.native(c)

	f.reg.Enter(c)
	f.reg.Enter(c)
	if err := f.reg.DestroyAndDelete(h); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if err := f.reg.DestroyAndDelete(h); err != nil {
		t.Fatalf("second destroy: %v", err)
	}
	if wp.destroys != 1 {
		t.Fatalf("teardown should run once, ran %d times", wp.destroys)
	}
	if _, ok := f.reg.Get(h); !ok {
		t.Fatalf("context freed while events are in flight")
	}
	if nw.Destroys != 0 {
		t.Fatalf("native window destroyed while events are in flight")
	}
	if c.WindowPeer() != nil || c.ViewPeer() != nil {
		t.Fatalf("peers should be detached by teardown")
	}

	f.reg.Leave(c)
	if _, ok := f.reg.Get(h); !ok {
		t.Fatalf("context freed with one event still in flight")
	}
	f.reg.Leave(c)
	if _, ok := f.reg.Get(h); ok {
		t.Fatalf("context should be freed after the last event")
	}
	if _, ok := f.reg.Lookup(nw.ID()); ok {
		t.Fatalf("native mapping should be removed")
	}
	if nw.Destroys != 1 {
		t.Fatalf("native window should be destroyed once, got %d", nw.Destroys)
	}
}

func TestDestroyFromInsideCallback(t *testing.T) {
	f := newFixture(t)
	c, wp, vp := f.top(t, 0)
	f.pointerOver(c)
	h := c.Handle()
	vp.onMouse = func() {
		if err := f.reg.DestroyAndDelete(h); err != nil {
			t.Errorf("destroy: %v", err)
		}
	}

	f.reg.Enter(c)
	err := c.ProcessMouseButton(press(3, 0))
	f.reg.Leave(c)

	if err != nil {
		t.Fatalf("press: %v", err)
	}
	if vp.menus != 0 {
		t.Fatalf("menu request must not reach a torn down view")
	}
	if wp.destroys != 1 {
		t.Fatalf("expected one teardown, got %d", wp.destroys)
	}
	if f.reg.Len() != 0 {
		t.Fatalf("context should be freed on leave")
	}
}

func TestDestroyUnknownHandle(t *testing.T) {
	f := newFixture(t)
	if err := f.reg.DestroyAndDelete(42); !errors.Is(err, ErrUnknownWindow) {
		t.Fatalf("expected ErrUnknownWindow, got %v", err)
	}
}

func TestHandlesAreNotReused(t *testing.T) {
	f := newFixture(t)
	a, _, _ := f.top(t, 0)
	first := a.Handle()
	_ = f.reg.DestroyAndDelete(first)
	b, _, _ := f.top(t, 0)
	if b.Handle() == first {
		t.Fatalf("handle %d reused", first)
	}
}

func TestTeardownDetachesChildrenAndReleasesGrabs(t *testing.T) {
	f := newFixture(t)
	owner, _, _ := f.top(t, 0)
	child, cwp, _ := f.top(t, owner.Handle())
	grand, _, _ := f.top(t, child.Handle())
	child.GrabFocus()

	if err := f.reg.DestroyAndDelete(child.Handle()); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if owner.HasChild(child.Handle()) {
		t.Fatalf("owner still lists the destroyed child")
	}
	if grand.Owner() != 0 || f.native(grand).Transient != 0 {
		t.Fatalf("grandchild should be detached")
	}
	if grand.IsDead() {
		t.Fatalf("grandchild must survive its owner")
	}
	if f.reg.Grabs().Holder() != 0 || f.ptr.Active() {
		t.Fatalf("grab should be released by teardown")
	}
	if cwp.ungrabs != 1 {
		t.Fatalf("expected focus-ungrab before destroy, got %d", cwp.ungrabs)
	}
}

func TestTeardownJoinsErrors(t *testing.T) {
	f := newFixture(t)
	c, wp, _ := f.top(t, 0)
	boom := errors.New("destroy failed")
	c.wpeer = failingDestroy{wp, boom}

	err := f.reg.DestroyAndDelete(c.Handle())
	if !errors.Is(err, boom) {
		t.Fatalf("expected teardown error, got %v", err)
	}
	if f.reg.Len() != 0 {
		t.Fatalf("context should still be freed")
	}
}

type failingDestroy struct {
	*windowRecorder
	err error
}

func (f failingDestroy) OnDestroy() error { return f.err }

func TestSetOwnerMovesChild(t *testing.T) {
	f := newFixture(t)
	a, _, _ := f.top(t, 0)
	b, _, _ := f.top(t, 0)
	c, _, _ := f.top(t, a.Handle())

	if f.native(c).Transient != a.Native().ID() {
		t.Fatalf("creation should set the transient hint")
	}
	if err := c.SetOwner(b); err != nil {
		t.Fatalf("set owner: %v", err)
	}
	if a.HasChild(c.Handle()) || !b.HasChild(c.Handle()) {
		t.Fatalf("child sets not updated: a=%v b=%v", a.Children(), b.Children())
	}
	if c.Owner() != b.Handle() || f.native(c).Transient != b.Native().ID() {
		t.Fatalf("owner not moved")
	}

	if err := c.SetOwner(nil); err != nil {
		t.Fatalf("detach: %v", err)
	}
	if b.HasChild(c.Handle()) || c.Owner() != 0 || f.native(c).Transient != 0 {
		t.Fatalf("detach incomplete")
	}
}

func TestReparentChildren(t *testing.T) {
	f := newFixture(t)
	a, _, _ := f.top(t, 0)
	b, _, _ := f.top(t, 0)
	c1, _, _ := f.top(t, a.Handle())
	c2, _, _ := f.top(t, a.Handle())

	if err := a.ReparentChildren(b); err != nil {
		t.Fatalf("reparent: %v", err)
	}
	if len(a.Children()) != 0 {
		t.Fatalf("old owner keeps children %v", a.Children())
	}
	for _, c := range []*Context{c1, c2} {
		if !b.HasChild(c.Handle()) || c.Owner() != b.Handle() {
			t.Fatalf("child %d not moved", c.Handle())
		}
	}
}

func TestShowOrHideChildren(t *testing.T) {
	f := newFixture(t)
	a, _, _ := f.top(t, 0)
	c, _, cv := f.top(t, a.Handle())
	g, _, _ := f.top(t, c.Handle())

	if err := a.ShowOrHideChildren(true); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !f.native(c).Visible || !f.native(g).Visible {
		t.Fatalf("owned windows should be shown recursively")
	}
	if f.native(a).Visible {
		t.Fatalf("the owner itself must not change")
	}

	_ = c.ProcessMouseCross(true, native.Event{Type: native.EventEnter})
	if err := a.ShowOrHideChildren(false); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if f.native(c).Visible || f.native(g).Visible {
		t.Fatalf("owned windows should be hidden recursively")
	}
	if f.native(c).Minimized || f.native(g).Minimized {
		t.Fatalf("hiding owned windows must not iconify them")
	}
	if got := cv.kinds(); !reflect.DeepEqual(got, []events.MouseKind{events.MouseEnter, events.MouseExit}) {
		t.Fatalf("hidden child under the pointer should get an exit, got %v", got)
	}
}

func TestOwnershipCycleRejected(t *testing.T) {
	tests := []struct {
		name string
		link func(a, b, c *Context) error
	}{
		{"self", func(a, _, _ *Context) error { return a.SetOwner(a) }},
		{"direct", func(a, b, _ *Context) error { return a.SetOwner(b) }},
		{"transitive", func(a, _, c *Context) error { return a.SetOwner(c) }},
		{"add child", func(a, _, c *Context) error { return c.AddChild(a) }},
		{"modal", func(a, b, _ *Context) error { return a.SetModal(true, b) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			a, _, _ := f.top(t, 0)
			b, _, _ := f.top(t, a.Handle())
			c, _, _ := f.top(t, b.Handle())

			err := tt.link(a, b, c)
			if !errors.Is(err, ErrOwnerCycle) {
				t.Fatalf("expected ErrOwnerCycle, got %v", err)
			}
			if a.Owner() != 0 || b.Owner() != a.Handle() || c.Owner() != b.Handle() {
				t.Fatalf("ownership changed: a=%d b=%d c=%d", a.Owner(), b.Owner(), c.Owner())
			}
			if f.native(a).Transient != 0 {
				t.Fatalf("transient hint set on rejected owner change")
			}
			if err := a.ShowOrHideChildren(false); err != nil {
				t.Fatalf("hide: %v", err)
			}
		})
	}
}

func TestReparentChildrenOntoSelf(t *testing.T) {
	f := newFixture(t)
	a, _, _ := f.top(t, 0)
	c, _, _ := f.top(t, a.Handle())

	if err := a.ReparentChildren(a); err != nil {
		t.Fatalf("reparent onto self: %v", err)
	}
	if !a.HasChild(c.Handle()) || c.Owner() != a.Handle() {
		t.Fatalf("child lost its owner: children=%v owner=%d", a.Children(), c.Owner())
	}
	if f.native(c).Transient != a.Native().ID() {
		t.Fatalf("transient hint changed")
	}
}

func TestReparentChildrenKeepsRefusedChild(t *testing.T) {
	f := newFixture(t)
	a, _, _ := f.top(t, 0)
	b, _, _ := f.top(t, a.Handle())
	c, _, _ := f.top(t, a.Handle())

	// b cannot own itself, c moves under b.
	err := a.ReparentChildren(b)
	if !errors.Is(err, ErrOwnerCycle) {
		t.Fatalf("expected ErrOwnerCycle, got %v", err)
	}
	if !a.HasChild(b.Handle()) || b.Owner() != a.Handle() {
		t.Fatalf("refused child should stay with its owner")
	}
	if !b.HasChild(c.Handle()) || a.HasChild(c.Handle()) || c.Owner() != b.Handle() {
		t.Fatalf("movable child should move")
	}
}

func TestNestedWindowsCannotBeOwned(t *testing.T) {
	f := newFixture(t)
	a, _, _ := f.top(t, 0)
	h, err := f.reg.CreateChild(&windowRecorder{enabled: true}, a.Handle())
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	child, _ := f.reg.Get(h)
	if err := child.SetOwner(a); !errors.Is(err, ErrNotTopLevel) {
		t.Fatalf("expected ErrNotTopLevel, got %v", err)
	}
	if f.native(child).Spec.Parent != a.Native().ID() {
		t.Fatalf("child should be nested in the parent window")
	}
}

func TestCreateErrors(t *testing.T) {
	f := newFixture(t)
	if _, err := f.reg.CreateWindow(&windowRecorder{}, 99, 0, native.FrameTitled, native.TypeNormal); !errors.Is(err, ErrUnknownWindow) {
		t.Fatalf("unknown owner: got %v", err)
	}
	if _, err := f.reg.CreateEmbedded(&windowRecorder{}, 0); err == nil {
		t.Fatalf("embedded window without socket should fail")
	}
	f.tk.FailCreate = true
	if _, err := f.reg.CreateWindow(&windowRecorder{}, 0, 0, native.FrameTitled, native.TypeNormal); err == nil {
		t.Fatalf("toolkit failure should surface")
	}
	if f.reg.Len() != 0 {
		t.Fatalf("failed creations must not register contexts")
	}
}

func TestConfigureByKind(t *testing.T) {
	f := newFixture(t)
	top, twp, tvp := f.top(t, 0)
	f.native(top).Extents = native.FrameExtents{Left: 2, Right: 2, Top: 20, Bottom: 2}
	if err := top.ProcessMap(); err != nil {
		t.Fatalf("map: %v", err)
	}
	twp.resizes = nil

	_ = top.ProcessConfigure(native.Geometry{X: 102, Y: 120, Width: 400, Height: 300})
	if !reflect.DeepEqual(twp.resizes, [][2]int{{404, 322}}) {
		t.Fatalf("top-level resize should include the frame, got %v", twp.resizes)
	}
	if !reflect.DeepEqual(tvp.resizes, [][2]int{{400, 300}}) {
		t.Fatalf("view resize should be the client size, got %v", tvp.resizes)
	}
	if !reflect.DeepEqual(twp.moves, [][2]int{{100, 100}}) {
		t.Fatalf("top-level move should be the frame origin, got %v", twp.moves)
	}

	cwp := &windowRecorder{enabled: true}
	h, _ := f.reg.CreateChild(cwp, top.Handle())
	child, _ := f.reg.Get(h)
	_ = child.ProcessConfigure(native.Geometry{X: 5, Y: 6, Width: 50, Height: 60})
	if len(cwp.moves) != 0 {
		t.Fatalf("child windows report no moves")
	}
	if !reflect.DeepEqual(cwp.resizes, [][2]int{{50, 60}}) {
		t.Fatalf("child resize = %v", cwp.resizes)
	}

	ewp := &windowRecorder{enabled: true}
	h, _ = f.reg.CreateEmbedded(ewp, 0x1234)
	emb, _ := f.reg.Get(h)
	_ = emb.ProcessConfigure(native.Geometry{X: 7, Y: 8, Width: 10, Height: 10})
	if x, y := emb.Position(); x != 7 || y != 8 {
		t.Fatalf("embedded position = %d,%d", x, y)
	}
	if len(ewp.moves) != 0 || emb.FrameExtents() != (native.FrameExtents{}) {
		t.Fatalf("embedded windows have no moves or frame")
	}
}

func TestSetModal(t *testing.T) {
	f := newFixture(t)
	parent, _, _ := f.top(t, 0)
	dialog, _, _ := f.top(t, 0)

	if err := dialog.SetModal(true, parent); err != nil {
		t.Fatalf("set modal: %v", err)
	}
	if !f.native(dialog).Modal || !parent.HasChild(dialog.Handle()) {
		t.Fatalf("modal dialog should be modal and owned by its parent")
	}
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t)
	a, _, _ := f.top(t, 0)
	c, _, _ := f.top(t, a.Handle())
	a.GrabFocus()

	snap := f.reg.Snapshot()
	if len(snap.Windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(snap.Windows))
	}
	info, ok := snap.Find(a.Handle())
	if !ok {
		t.Fatalf("window %d missing", a.Handle())
	}
	if !reflect.DeepEqual(info.Children, []Handle{c.Handle()}) || info.Kind != "top-level" || !info.HasView {
		t.Fatalf("unexpected info %+v", info)
	}
	if snap.Grabs.Grab != a.Handle() || !snap.Grabs.DeviceGrabbed {
		t.Fatalf("unexpected grabs %+v", snap.Grabs)
	}
}
