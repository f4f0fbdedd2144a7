package x11

import (
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/gwk/internal/dispatch"
	"github.com/1broseidon/gwk/internal/native"
)

// Attach hooks d into the xgbutil event loop. Events the dispatcher consumes
// never reach xgbutil's own callbacks; forwarded ones do, so key bindings
// registered through keybind keep working. Dispatch errors are logged and
// published by the dispatcher itself.
func Attach(conn *Connection, tk *Toolkit, tr *Translator, d *dispatch.Dispatcher) {
	xevent.HookFun(func(xu *xgbutil.XUtil, raw interface{}) bool {
		if conn.isStop(raw) {
			xevent.Quit(xu)
			return false
		}
		ev, ok := tr.Translate(raw)
		if !ok {
			return true
		}
		if ev.Type == native.EventDestroy {
			tk.forget(ev.Window)
		}
		disp, _ := d.Dispatch(ev)
		return disp == dispatch.Forward
	}).Connect(conn.XUtil)
}
