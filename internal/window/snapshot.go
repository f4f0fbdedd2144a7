package window

import (
	"sort"

	"github.com/1broseidon/gwk/internal/native"
)

// Info is a read-only view of one context.
type Info struct {
	Handle       Handle          `json:"handle"`
	Native       native.WindowID `json:"native"`
	Kind         string          `json:"kind"`
	Frame        string          `json:"frame"`
	Type         string          `json:"type"`
	Owner        Handle          `json:"owner,omitempty"`
	Children     []Handle        `json:"children,omitempty"`
	Visible      bool            `json:"visible"`
	Enabled      bool            `json:"enabled"`
	Iconified    bool            `json:"iconified"`
	Maximized    bool            `json:"maximized"`
	MouseEntered bool            `json:"mouse_entered"`
	HasView      bool            `json:"has_view"`
	InFlight     int             `json:"in_flight"`
	Dead         bool            `json:"dead"`
	X            int             `json:"x"`
	Y            int             `json:"y"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
}

// GrabInfo describes the grab state.
type GrabInfo struct {
	Grab          Handle `json:"grab,omitempty"`
	Drag          Handle `json:"drag,omitempty"`
	DeviceGrabbed bool   `json:"device_grabbed"`
	Disabled      bool   `json:"disabled"`
}

// Snapshot is a copy of the registry state safe to hand to other goroutines.
type Snapshot struct {
	Windows []Info   `json:"windows"`
	Grabs   GrabInfo `json:"grabs"`
}

// Snapshot copies the registry state.
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		Windows: make([]Info, 0, len(r.contexts)),
		Grabs: GrabInfo{
			Grab:          r.grabs.grab,
			Drag:          r.grabs.drag,
			DeviceGrabbed: r.grabs.DeviceGrabbed(),
			Disabled:      r.grabs.disabled,
		},
	}
	for _, h := range r.Handles() {
		c := r.contexts[h]
		children := c.Children()
		sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })
		x, y := c.Position()
		snap.Windows = append(snap.Windows, Info{
			Handle:       c.handle,
			Native:       c.win.ID(),
			Kind:         c.kind.String(),
			Frame:        c.frame.String(),
			Type:         c.wtype.String(),
			Owner:        c.owner,
			Children:     children,
			Visible:      !c.win.Destroyed() && c.win.IsVisible(),
			Enabled:      c.IsEnabled(),
			Iconified:    c.iconified,
			Maximized:    c.maximized,
			MouseEntered: c.mouseEntered,
			HasView:      c.vpeer != nil,
			InFlight:     c.inFlight,
			Dead:         c.dead,
			X:            x,
			Y:            y,
			Width:        c.geometry.Width,
			Height:       c.geometry.Height,
		})
	}
	return snap
}

// Find returns the info for h.
func (s Snapshot) Find(h Handle) (Info, bool) {
	for _, w := range s.Windows {
		if w.Handle == h {
			return w, true
		}
	}
	return Info{}, false
}
