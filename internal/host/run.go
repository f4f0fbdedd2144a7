package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/1broseidon/gwk/internal/config"
	"github.com/1broseidon/gwk/internal/dispatch"
	"github.com/1broseidon/gwk/internal/dnd"
	"github.com/1broseidon/gwk/internal/hotkeys"
	"github.com/1broseidon/gwk/internal/ipc"
	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/trace"
	"github.com/1broseidon/gwk/internal/window"
	"github.com/1broseidon/gwk/internal/x11"
)

// Run connects to the X server, opens cfg's windows and dispatches events
// until every top-level window is closed or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	conn, err := x11.NewConnection(cfg.Display)
	if err != nil {
		return err
	}
	defer conn.Close()

	tk := x11.NewToolkit(conn)
	pointer := x11.NewPointer(conn)
	keymap := x11.NewKeymap(conn)

	reg := window.NewRegistry(window.Options{
		Toolkit:           tk,
		Pointer:           pointer,
		Keymap:            keymap,
		DisableGrab:       cfg.DisableGrab,
		ScrollMultiplierX: cfg.Scroll.MultiplierX,
		ScrollMultiplierY: cfg.Scroll.MultiplierY,
		Logger:            logger,
	})
	drag := dnd.NewSource(reg, pointer, logger)
	monitor := dispatch.NewMonitor()
	d := dispatch.New(dispatch.Options{
		Registry: reg,
		Drag:     drag,
		Screens:  conn.Screens,
		OnScreensChanged: func(screens []native.Screen) {
			for _, s := range screens {
				logger.Info("screen", "index", s.Index, "name", s.Name, "primary", s.Primary,
					"width", s.Bounds.Width, "height", s.Bounds.Height,
					"work_width", s.WorkArea.Width, "work_height", s.WorkArea.Height)
			}
		},
		Monitor: monitor,
		Logger:  logger,
	})

	tcfg := cfg.GetTraceConfig()
	tracer, err := trace.New(trace.Config{
		Enabled:   tcfg.Enabled,
		Level:     trace.ParseLevel(tcfg.Level),
		FilePath:  tcfg.File,
		MaxSizeMB: tcfg.MaxSizeMB,
		MaxFiles:  tcfg.MaxFiles,
	})
	if err != nil {
		return err
	}
	defer tracer.Close()
	if tcfg.Enabled {
		d.AddHook(tracer.Event)
		logger.Info("event trace enabled", "file", tcfg.File, "level", tcfg.Level)
	}

	if err := d.RefreshScreens(); err != nil {
		logger.Warn("failed to read screens", "error", err)
	}

	x11.Attach(conn, tk, x11.NewTranslator(conn, keymap), d)

	h := New(reg, drag, logger)
	h.Trace = tracer
	h.OnEmpty = func() {
		logger.Info("last window closed")
		conn.Quit()
	}
	if err := h.Open(cfg.Windows); err != nil {
		h.Shutdown()
		return fmt.Errorf("open windows: %w", err)
	}
	d.Publish()

	if cfg.DebugHotkey != "" {
		hk := hotkeys.NewHandler(conn.XUtil, conn.Root, logger)
		if err := hk.RegisterSnapshot(cfg.DebugHotkey, reg); err != nil {
			logger.Warn("failed to register debug hotkey", "hotkey", cfg.DebugHotkey, "error", err)
		} else {
			logger.Info("debug hotkey registered", "hotkey", cfg.DebugHotkey)
		}
	}

	if cfg.IPC.GetEnabled() {
		srv, err := ipc.NewServer(monitor, logger)
		if err != nil {
			logger.Warn("inspection socket disabled", "error", err)
		} else if err := srv.Start(); err != nil {
			logger.Warn("inspection socket disabled", "error", err)
		} else {
			defer srv.Stop()
		}
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			if err := conn.Stop(); err != nil {
				logger.Warn("failed to stop event loop", "error", err)
			}
		case <-done:
		}
	}()

	logger.Info("entering event loop", "windows", h.Len())
	conn.EventLoop()

	if err := h.Shutdown(); err != nil {
		logger.Warn("shutdown", "error", err)
	}
	return nil
}
