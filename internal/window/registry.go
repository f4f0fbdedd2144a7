package window

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/1broseidon/gwk/internal/native"
)

// Handle identifies a context in the registry. Handles are never reused;
// 0 means none.
type Handle uint32

// DefaultScrollMultiplier converts one scroll step into pixels.
const DefaultScrollMultiplier = 40.0

// Options configures a Registry.
type Options struct {
	Toolkit native.Toolkit
	Pointer native.Pointer
	Keymap  native.Keymap
	// DisableGrab makes every device grab succeed without touching the
	// device, which keeps a debugger usable.
	DisableGrab       bool
	ScrollMultiplierX float64
	ScrollMultiplierY float64
	Logger            *slog.Logger
}

// Registry is the arena owning every context and the grab state. It is
// confined to the event-loop goroutine.
type Registry struct {
	toolkit native.Toolkit
	pointer native.Pointer
	keymap  native.Keymap
	grabs   *GrabState
	scrollX float64
	scrollY float64
	log     *slog.Logger

	next     Handle
	contexts map[Handle]*Context
	byNative map[native.WindowID]Handle
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		toolkit:  opts.Toolkit,
		pointer:  opts.Pointer,
		keymap:   opts.Keymap,
		scrollX:  opts.ScrollMultiplierX,
		scrollY:  opts.ScrollMultiplierY,
		log:      logger,
		contexts: make(map[Handle]*Context),
		byNative: make(map[native.WindowID]Handle),
	}
	if r.scrollX == 0 {
		r.scrollX = DefaultScrollMultiplier
	}
	if r.scrollY == 0 {
		r.scrollY = DefaultScrollMultiplier
	}
	r.grabs = &GrabState{reg: r, pointer: opts.Pointer, disabled: opts.DisableGrab}
	return r
}

// Grabs returns the grab state shared by every context.
func (r *Registry) Grabs() *GrabState { return r.grabs }

// CreateWindow creates a top-level window owned by owner (0 for none).
func (r *Registry) CreateWindow(peer WindowPeer, owner Handle, screen int, frame native.FrameType, wtype native.WindowType) (Handle, error) {
	var ownerCtx *Context
	spec := native.WindowSpec{Screen: screen, Frame: frame, Type: wtype}
	if owner != 0 {
		ownerCtx = r.contexts[owner]
		if ownerCtx == nil || ownerCtx.dead {
			return 0, fmt.Errorf("owner %d: %w", owner, ErrUnknownWindow)
		}
		spec.Owner = ownerCtx.win.ID()
	}
	c, err := r.create(TopLevel, peer, spec)
	if err != nil {
		return 0, err
	}
	if ownerCtx != nil {
		ownerCtx.children[c.handle] = struct{}{}
		c.owner = owner
	}
	return c.handle, nil
}

// CreateChild creates a window nested inside parent's window.
func (r *Registry) CreateChild(peer WindowPeer, parent Handle) (Handle, error) {
	p := r.contexts[parent]
	if p == nil || p.dead {
		return 0, fmt.Errorf("parent %d: %w", parent, ErrUnknownWindow)
	}
	c, err := r.create(Child, peer, native.WindowSpec{Parent: p.win.ID(), Frame: native.FrameUntitled})
	if err != nil {
		return 0, err
	}
	return c.handle, nil
}

// CreateEmbedded creates a window plugged into a foreign window.
func (r *Registry) CreateEmbedded(peer WindowPeer, socket native.WindowID) (Handle, error) {
	if socket == 0 {
		return 0, fmt.Errorf("embedded window needs a socket window")
	}
	c, err := r.create(Embedded, peer, native.WindowSpec{Parent: socket, Frame: native.FrameUntitled})
	if err != nil {
		return 0, err
	}
	return c.handle, nil
}

func (r *Registry) create(kind Kind, peer WindowPeer, spec native.WindowSpec) (*Context, error) {
	if r.toolkit == nil {
		return nil, fmt.Errorf("create %s window: no toolkit", kind)
	}
	win, err := r.toolkit.CreateWindow(spec)
	if err != nil {
		return nil, fmt.Errorf("create %s window: %w", kind, err)
	}
	r.next++
	c := &Context{
		reg:      r,
		handle:   r.next,
		kind:     kind,
		behavior: behaviorFor(kind),
		win:      win,
		frame:    spec.Frame,
		wtype:    spec.Type,
		wpeer:    peer,
		children: make(map[Handle]struct{}),
	}
	if g, err := win.Geometry(); err == nil {
		c.geometry = g
	}
	r.contexts[c.handle] = c
	r.byNative[win.ID()] = c.handle
	r.log.Debug("window created", "window", c.handle, "kind", kind, "native", win.ID())
	return c, nil
}

// Get returns the context for h. Contexts pending deletion are still
// returned until they are freed.
func (r *Registry) Get(h Handle) (*Context, bool) {
	c, ok := r.contexts[h]
	return c, ok
}

// Lookup resolves a native window to its context.
func (r *Registry) Lookup(id native.WindowID) (*Context, bool) {
	h, ok := r.byNative[id]
	if !ok {
		return nil, false
	}
	return r.Get(h)
}

// Len is the number of allocated contexts, including those pending deletion.
func (r *Registry) Len() int { return len(r.contexts) }

// Handles returns every allocated handle in creation order.
func (r *Registry) Handles() []Handle {
	out := make([]Handle, 0, len(r.contexts))
	for h := range r.contexts {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Enter marks the start of a dispatch into c.
func (r *Registry) Enter(c *Context) { c.IncrementEventsCounter() }

// Leave ends a dispatch into c and frees c if it was torn down and this was
// the last dispatch running inside it.
func (r *Registry) Leave(c *Context) {
	c.DecrementEventsCounter()
	if c.marked && c.inFlight == 0 {
		r.free(c)
	}
}

// DestroyAndDelete tears h down and frees it, or defers the free until the
// events in flight for it complete.
func (r *Registry) DestroyAndDelete(h Handle) error {
	c, ok := r.contexts[h]
	if !ok {
		return fmt.Errorf("window %d: %w", h, ErrUnknownWindow)
	}
	err := c.ProcessDestroy()
	if c.inFlight == 0 {
		r.free(c)
	}
	return err
}

func (r *Registry) free(c *Context) {
	if _, ok := r.contexts[c.handle]; !ok {
		return
	}
	delete(r.contexts, c.handle)
	if r.byNative[c.win.ID()] == c.handle {
		delete(r.byNative, c.win.ID())
	}
	if !c.win.Destroyed() {
		if err := c.win.Destroy(); err != nil {
			r.log.Warn("destroy native window", "window", c.handle, "error", err)
		}
	}
	r.log.Debug("window freed", "window", c.handle)
}

// pointerOverTracked reports whether the pointer is over one of our windows.
func (r *Registry) pointerOverTracked() bool {
	if r.pointer == nil {
		return true
	}
	id, ok := r.pointer.WindowAtPointer()
	if !ok {
		return false
	}
	_, tracked := r.Lookup(id)
	return tracked
}
