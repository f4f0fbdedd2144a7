package hotkeys

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/gwk/internal/window"
)

// Handler manages global keyboard shortcuts on the root window.
type Handler struct {
	xu   *xgbutil.XUtil
	root xproto.Window
	log  *slog.Logger
}

var ignoreModsOnce sync.Once

// NewHandler creates a hotkey handler. keybind must already be initialized.
func NewHandler(xu *xgbutil.XUtil, root xproto.Window, logger *slog.Logger) *Handler {
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})
	return &Handler{xu: xu, root: root, log: logger}
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

// RegisterSnapshot registers a hotkey that logs every tracked window and the
// grab holders. The callback runs on the event loop, so reading the
// registry is safe.
func (h *Handler) RegisterSnapshot(keySequence string, reg *window.Registry) error {
	return h.RegisterFunc(keySequence, func() {
		snap := reg.Snapshot()
		h.log.Info("window snapshot",
			"windows", len(snap.Windows),
			"grab", snap.Grabs.Grab,
			"drag", snap.Grabs.Drag,
		)
		for _, w := range snap.Windows {
			h.log.Info("window",
				"handle", w.Handle,
				"kind", w.Kind,
				"owner", w.Owner,
				"children", len(w.Children),
				"in_flight", w.InFlight,
				"enabled", w.Enabled,
			)
		}
	})
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	xevent.IgnoreMods = ignoreMasks(
		uint16(xproto.ModMaskLock),
		modMaskForKeysym(xu, "Num_Lock"),
		modMaskForKeysym(xu, "Scroll_Lock"),
	)
}

// ignoreMasks returns every combination of the lock modifiers, so a hotkey
// fires whatever locks are on. Caps Lock is always included.
func ignoreMasks(caps, numLock, scrollLock uint16) []uint16 {
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	masks := make([]uint16, 0, 1<<len(base))
	for subset := 0; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		masks = append(masks, mask)
	}
	sort.Slice(masks, func(i, j int) bool { return masks[i] < masks[j] })
	return masks
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
