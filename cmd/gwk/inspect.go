package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/1broseidon/gwk/internal/ipc"
	"github.com/1broseidon/gwk/internal/keys"
	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/window"
)

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printStatus(w io.Writer, st *ipc.StatusData) {
	fmt.Fprintf(w, "pid:            %d\n", st.PID)
	fmt.Fprintf(w, "uptime_seconds: %d\n", st.UptimeSeconds)
	fmt.Fprintf(w, "windows:        %d\n", len(st.Windows))
	fmt.Fprintf(w, "screens:        %d\n", len(st.Screens))
	fmt.Fprintf(w, "grab:           %s\n", handleOrNone(st.Grabs.Grab))
	fmt.Fprintf(w, "drag:           %s\n", handleOrNone(st.Grabs.Drag))
	fmt.Fprintf(w, "device_grabbed: %v\n", st.Grabs.DeviceGrabbed)
	fmt.Fprintf(w, "events:         %d\n", st.Events)
	fmt.Fprintf(w, "errors:         %d\n", st.Errors)
	if st.LastEvent != "" {
		fmt.Fprintf(w, "last_event:     %s\n", st.LastEvent)
	}
	if st.LastError != "" {
		fmt.Fprintf(w, "last_error:     %s\n", st.LastError)
	}
}

func handleOrNone(h window.Handle) string {
	if h == 0 {
		return "none"
	}
	return fmt.Sprintf("#%d", h)
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: gwk windows [--json] [handle]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List tracked windows, or show one window by handle.")
	}
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "windows takes at most one handle")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if fs.NArg() == 1 {
		h, err := strconv.ParseUint(fs.Arg(0), 10, 32)
		if err != nil || h == 0 {
			fmt.Fprintf(os.Stderr, "invalid handle: %q\n", fs.Arg(0))
			return 2
		}
		info, err := client.GetWindow(window.Handle(h))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if *jsonOut {
			return printJSON(info)
		}
		printWindows(os.Stdout, []window.Info{*info})
		return 0
	}

	list, err := client.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *jsonOut {
		return printJSON(list)
	}
	printWindows(os.Stdout, list)
	return 0
}

func printWindows(w io.Writer, list []window.Info) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HANDLE\tNATIVE\tKIND\tTYPE\tOWNER\tGEOMETRY\tFLAGS")
	for _, info := range list {
		fmt.Fprintf(tw, "%d\t0x%x\t%s\t%s\t%s\t%dx%d+%d+%d\t%s\n",
			info.Handle, info.Native, info.Kind, info.Type, handleOrNone(info.Owner),
			info.Width, info.Height, info.X, info.Y, windowFlags(info))
	}
	tw.Flush()
}

func windowFlags(info window.Info) string {
	var flags []string
	if info.Visible {
		flags = append(flags, "visible")
	}
	if !info.Enabled {
		flags = append(flags, "disabled")
	}
	if info.Iconified {
		flags = append(flags, "iconified")
	}
	if info.Maximized {
		flags = append(flags, "maximized")
	}
	if info.MouseEntered {
		flags = append(flags, "pointer")
	}
	if info.Dead {
		flags = append(flags, "dead")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func runScreens(args []string) int {
	fs := flag.NewFlagSet("screens", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: gwk screens [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List screens with their bounds and work areas.")
	}
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "screens takes no arguments")
		fs.Usage()
		return 2
	}

	screens, err := ipc.NewClient().GetScreens()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *jsonOut {
		return printJSON(screens)
	}
	printScreens(os.Stdout, screens)
	return 0
}

func printScreens(w io.Writer, screens []native.Screen) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tNAME\tBOUNDS\tWORK AREA\tPRIMARY")
	for _, s := range screens {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%v\n", s.Index, s.Name, geometry(s.Bounds), geometry(s.WorkArea), s.Primary)
	}
	tw.Flush()
}

func geometry(g native.Geometry) string {
	return fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y)
}

func runKeys(args []string) int {
	fs := flag.NewFlagSet("keys", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: gwk keys [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print the keysym to key code table. Works without a running gwk.")
	}
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "keys takes no arguments")
		fs.Usage()
		return 2
	}

	table := keys.Table()
	if *jsonOut {
		type keyJSON struct {
			Keysym    string `json:"keysym"`
			Name      string `json:"name"`
			Code      int    `json:"code"`
			Canonical bool   `json:"canonical"`
		}
		out := make([]keyJSON, 0, len(table))
		for _, e := range table {
			ks, _ := keys.CodeToKeysym(e.Code)
			out = append(out, keyJSON{
				Keysym:    fmt.Sprintf("0x%04x", uint32(e.Keysym)),
				Name:      e.Name,
				Code:      int(e.Code),
				Canonical: ks == e.Keysym,
			})
		}
		return printJSON(out)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEYSYM\tNAME\tCODE\t")
	for _, e := range table {
		mark := ""
		if ks, _ := keys.CodeToKeysym(e.Code); ks == e.Keysym {
			mark = "*"
		}
		fmt.Fprintf(tw, "0x%04x\t%s\t%d\t%s\n", uint32(e.Keysym), e.Name, int(e.Code), mark)
	}
	tw.Flush()
	return 0
}
