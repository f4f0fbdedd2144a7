package window

import (
	"github.com/1broseidon/gwk/internal/native"
)

// Kind is the variant of a context.
type Kind int

const (
	// TopLevel is a window managed by the window manager.
	TopLevel Kind = iota
	// Child is a window nested inside another context's window.
	Child
	// Embedded is a window plugged into a foreign process's window.
	Embedded
)

func (k Kind) String() string {
	switch k {
	case TopLevel:
		return "top-level"
	case Child:
		return "child"
	case Embedded:
		return "embedded"
	default:
		return "unknown"
	}
}

// behavior holds the operations whose semantics differ per Kind.
type behavior interface {
	frameExtents(c *Context) native.FrameExtents
	setModal(c *Context, modal bool, parent *Context) error
	configure(c *Context, g native.Geometry) error
	propertyNotify(c *Context, atom string) error
	// position is the window origin reported to the application.
	position(c *Context) (x, y int)
}

func behaviorFor(k Kind) behavior {
	switch k {
	case Child:
		return childBehavior{}
	case Embedded:
		return embeddedBehavior{}
	default:
		return topLevelBehavior{}
	}
}

type topLevelBehavior struct{}

func (topLevelBehavior) frameExtents(c *Context) native.FrameExtents {
	return c.extents
}

func (topLevelBehavior) setModal(c *Context, modal bool, parent *Context) error {
	if modal && parent != nil {
		if err := parent.AddChild(c); err != nil {
			return err
		}
	}
	return c.win.SetModal(modal)
}

// configure reports the outer (frame-inclusive) size and origin to the
// window peer and the client size to the view.
func (b topLevelBehavior) configure(c *Context, g native.Geometry) error {
	prev := c.geometry
	c.geometry = g
	e := c.extents

	if g.Width != prev.Width || g.Height != prev.Height {
		if c.vpeer != nil {
			if err := c.fail("view resize", c.vpeer.OnResize(g.Width, g.Height)); err != nil {
				return err
			}
		}
		if c.wpeer != nil {
			w, h := g.Width+e.Left+e.Right, g.Height+e.Top+e.Bottom
			if err := c.fail("window resize", c.wpeer.OnResize(w, h)); err != nil {
				return err
			}
		}
	}
	if g.X != prev.X || g.Y != prev.Y {
		if c.wpeer != nil {
			x, y := b.position(c)
			if err := c.fail("window move", c.wpeer.OnMove(x, y)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (topLevelBehavior) propertyNotify(c *Context, atom string) error {
	if atom != "_NET_FRAME_EXTENTS" {
		return nil
	}
	extents, err := c.win.FrameExtents()
	if err != nil || extents == c.extents {
		return nil
	}
	c.extents = extents
	if c.wpeer == nil {
		return nil
	}
	g := c.geometry
	w, h := g.Width+extents.Left+extents.Right, g.Height+extents.Top+extents.Bottom
	return c.fail("window resize", c.wpeer.OnResize(w, h))
}

func (topLevelBehavior) position(c *Context) (int, int) {
	return c.geometry.X - c.extents.Left, c.geometry.Y - c.extents.Top
}

type childBehavior struct{}

func (childBehavior) frameExtents(*Context) native.FrameExtents { return native.FrameExtents{} }

func (childBehavior) setModal(*Context, bool, *Context) error { return nil }

func (childBehavior) configure(c *Context, g native.Geometry) error {
	return resizeOnly(c, g)
}

func (childBehavior) propertyNotify(*Context, string) error { return nil }

func (childBehavior) position(c *Context) (int, int) {
	return c.geometry.X, c.geometry.Y
}

// embeddedBehavior tracks the plug position inside its foreign socket
// window; the application only sees size changes.
type embeddedBehavior struct{}

func (embeddedBehavior) frameExtents(*Context) native.FrameExtents { return native.FrameExtents{} }

func (embeddedBehavior) setModal(*Context, bool, *Context) error { return nil }

func (embeddedBehavior) configure(c *Context, g native.Geometry) error {
	c.embedX, c.embedY = g.X, g.Y
	return resizeOnly(c, g)
}

func (embeddedBehavior) propertyNotify(*Context, string) error { return nil }

func (embeddedBehavior) position(c *Context) (int, int) {
	return c.embedX, c.embedY
}

func resizeOnly(c *Context, g native.Geometry) error {
	prev := c.geometry
	c.geometry = g
	if g.Width == prev.Width && g.Height == prev.Height {
		return nil
	}
	if c.vpeer != nil {
		if err := c.fail("view resize", c.vpeer.OnResize(g.Width, g.Height)); err != nil {
			return err
		}
	}
	if c.wpeer != nil {
		return c.fail("window resize", c.wpeer.OnResize(g.Width, g.Height))
	}
	return nil
}
