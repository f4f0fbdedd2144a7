package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/gwk/internal/ipc"
	"github.com/1broseidon/gwk/internal/native"
)

func renderScreens(screens []native.Screen, width int) string {
	if len(screens) == 0 {
		return labelStyle.Render("no screens reported")
	}
	header := labelStyle.Render(fmt.Sprintf("%-3s %-12s %-22s %-22s", "#", "NAME", "BOUNDS", "WORK AREA"))
	lines := []string{header}
	for _, s := range screens {
		name := s.Name
		if s.Primary {
			name += "*"
		}
		lines = append(lines, fmt.Sprintf("%-3d %-12s %-22s %-22s",
			s.Index, name, geometryString(s.Bounds), geometryString(s.WorkArea)))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func geometryString(g native.Geometry) string {
	return fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y)
}

func renderEvents(st *ipc.StatusData, width int) string {
	if st == nil {
		return labelStyle.Render("waiting for status")
	}
	rows := [][2]string{
		{"events", fmt.Sprintf("%d", st.Events)},
		{"errors", fmt.Sprintf("%d", st.Errors)},
		{"last event", orDash(st.LastEvent)},
		{"grab", ownerString(st.Grabs.Grab)},
		{"drag", ownerString(st.Grabs.Drag)},
		{"device grabbed", fmt.Sprintf("%t", st.Grabs.DeviceGrabbed)},
		{"grab disabled", fmt.Sprintf("%t", st.Grabs.Disabled)},
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-15s", r[0])), r[1])
	}
	if st.LastError != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-15s", "last error")), errorStyle.Render(st.LastError))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
