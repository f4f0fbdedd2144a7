package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/gwk/internal/native"
)

// Screens returns the active outputs with their work areas. Without RandR
// the whole root window is reported as a single screen.
func (c *Connection) Screens() ([]native.Screen, error) {
	var screens []native.Screen
	if c.randr {
		var err error
		if screens, err = c.randrScreens(); err != nil {
			return nil, err
		}
	}
	if len(screens) == 0 {
		geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
		if err != nil {
			return nil, fmt.Errorf("get root geometry: %w", err)
		}
		screens = []native.Screen{{
			Name:    "default",
			Bounds:  native.Geometry{Width: int(geom.Width), Height: int(geom.Height)},
			Primary: true,
		}}
	}

	workArea, ok := c.currentWorkArea()
	for i := range screens {
		screens[i].WorkArea = screens[i].Bounds
		if ok {
			screens[i].WorkArea = clipWorkArea(screens[i].Bounds, workArea)
		}
	}
	return screens, nil
}

func (c *Connection) randrScreens() ([]native.Screen, error) {
	conn := c.XUtil.Conn()
	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(conn, c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var screens []native.Screen
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Disabled CRTC.
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("screen%d", i)
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}
		isPrimary := false
		for _, o := range info.Outputs {
			if o == primary {
				isPrimary = true
			}
		}
		screens = append(screens, native.Screen{
			Index: len(screens),
			Name:  name,
			Bounds: native.Geometry{
				X:      int(info.X),
				Y:      int(info.Y),
				Width:  int(info.Width),
				Height: int(info.Height),
			},
			Primary: isPrimary,
		})
	}
	markPrimary(screens)
	return screens, nil
}

// currentWorkArea returns the EWMH work area of the current desktop.
func (c *Connection) currentWorkArea() (native.Geometry, bool) {
	areas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(areas) == 0 {
		return native.Geometry{}, false
	}
	idx := 0
	if desk, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(desk) < len(areas) {
		idx = int(desk)
	}
	wa := areas[idx]
	return native.Geometry{X: wa.X, Y: wa.Y, Width: int(wa.Width), Height: int(wa.Height)}, true
}

// markPrimary makes the first screen primary when the server names none.
func markPrimary(screens []native.Screen) {
	for _, s := range screens {
		if s.Primary {
			return
		}
	}
	if len(screens) > 0 {
		screens[0].Primary = true
	}
}

// clipWorkArea intersects a screen with the desktop work area. The work area
// spans all screens, so a screen it does not overlap keeps its full bounds.
func clipWorkArea(bounds, workArea native.Geometry) native.Geometry {
	isect, ok := intersect(bounds, workArea)
	if !ok {
		return bounds
	}
	return isect
}

func intersect(a, b native.Geometry) (native.Geometry, bool) {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return native.Geometry{}, false
	}
	return native.Geometry{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}
