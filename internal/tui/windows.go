package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/gwk/internal/window"
)

// windowItem implements list.Item for the window sidebar.
type windowItem struct {
	info window.Info
	grab bool
	drag bool
}

func (i windowItem) Title() string {
	var flags []string
	if i.grab {
		flags = append(flags, "grab")
	}
	if i.drag {
		flags = append(flags, "drag")
	}
	if i.info.Dead {
		flags = append(flags, "dead")
	}
	title := fmt.Sprintf("#%d %s", i.info.Handle, i.info.Kind)
	if len(flags) > 0 {
		title += " [" + strings.Join(flags, ",") + "]"
	}
	return title
}

func (i windowItem) Description() string {
	return fmt.Sprintf("%dx%d at %d,%d", i.info.Width, i.info.Height, i.info.X, i.info.Y)
}

func (i windowItem) FilterValue() string {
	return strconv.FormatUint(uint64(i.info.Handle), 10) + " " + i.info.Kind
}

// WindowsTab lists tracked windows and shows the selected one in detail.
type WindowsTab struct {
	list    list.Model
	jump    textinput.Model
	jumping bool
	notice  string

	width  int
	height int
}

// NewWindowsTab creates an empty windows tab.
func NewWindowsTab() WindowsTab {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Windows"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Prompt = "handle: "
	ti.CharLimit = 10

	return WindowsTab{list: l, jump: ti}
}

// SetWindows replaces the listed windows, keeping the cursor on the same
// handle when it still exists.
func (wt *WindowsTab) SetWindows(windows []window.Info, grabs window.GrabInfo) {
	prev, hadPrev := wt.selected()

	items := make([]list.Item, 0, len(windows))
	for _, w := range windows {
		items = append(items, windowItem{
			info: w,
			grab: grabs.Grab != 0 && grabs.Grab == w.Handle,
			drag: grabs.Drag != 0 && grabs.Drag == w.Handle,
		})
	}
	wt.list.SetItems(items)

	if hadPrev {
		wt.selectHandle(prev.Handle)
	}
}

func (wt WindowsTab) selected() (window.Info, bool) {
	item, ok := wt.list.SelectedItem().(windowItem)
	if !ok {
		return window.Info{}, false
	}
	return item.info, true
}

func (wt *WindowsTab) selectHandle(h window.Handle) bool {
	for i, it := range wt.list.Items() {
		if wi, ok := it.(windowItem); ok && wi.info.Handle == h {
			wt.list.Select(i)
			return true
		}
	}
	return false
}

// Capturing reports whether the handle prompt owns keyboard input.
func (wt WindowsTab) Capturing() bool { return wt.jumping }

// Update implements tea.Model.
func (wt WindowsTab) Update(msg tea.Msg) (WindowsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		wt.width = msg.Width
		wt.height = msg.Height
		wt.updateListSize()
		return wt, nil

	case tea.KeyMsg:
		if wt.jumping {
			return wt.updateJump(msg)
		}
		if msg.String() == "g" {
			wt.jumping = true
			wt.notice = ""
			wt.jump.Reset()
			return wt, wt.jump.Focus()
		}
	}

	var cmd tea.Cmd
	wt.list, cmd = wt.list.Update(msg)
	return wt, cmd
}

func (wt WindowsTab) updateJump(msg tea.KeyMsg) (WindowsTab, tea.Cmd) {
	switch msg.String() {
	case "esc":
		wt.jumping = false
		wt.jump.Blur()
		return wt, nil
	case "enter":
		wt.jumping = false
		wt.jump.Blur()
		n, err := strconv.ParseUint(strings.TrimSpace(wt.jump.Value()), 10, 32)
		if err != nil || n == 0 {
			wt.notice = fmt.Sprintf("not a handle: %q", wt.jump.Value())
			return wt, nil
		}
		if !wt.selectHandle(window.Handle(n)) {
			wt.notice = fmt.Sprintf("no window #%d", n)
		}
		return wt, nil
	}
	var cmd tea.Cmd
	wt.jump, cmd = wt.jump.Update(msg)
	return wt, cmd
}

func (wt *WindowsTab) updateListSize() {
	h := wt.height - 2
	if h < 1 {
		h = 1
	}
	wt.list.SetSize(wt.sidebarWidth(), h)
}

func (wt WindowsTab) sidebarWidth() int {
	sw := wt.width * 40 / 100
	if sw < 24 {
		sw = 24
	}
	if sw > 48 {
		sw = 48
	}
	return sw
}

// View implements tea.Model.
func (wt WindowsTab) View() string {
	detail := "no windows"
	if info, ok := wt.selected(); ok {
		detail = renderWindowDetail(info)
	}
	detailStyle := lipgloss.NewStyle().
		Width(wt.width - wt.sidebarWidth() - 2).
		PaddingLeft(2)
	body := lipgloss.JoinHorizontal(lipgloss.Top, wt.list.View(), detailStyle.Render(detail))

	footer := ""
	switch {
	case wt.jumping:
		footer = wt.jump.View()
	case wt.notice != "":
		footer = errorStyle.Render(wt.notice)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func renderWindowDetail(w window.Info) string {
	rows := [][2]string{
		{"handle", strconv.FormatUint(uint64(w.Handle), 10)},
		{"native", fmt.Sprintf("0x%x", uint32(w.Native))},
		{"kind", w.Kind},
		{"frame", w.Frame},
		{"type", w.Type},
		{"owner", ownerString(w.Owner)},
		{"children", handlesString(w.Children)},
		{"geometry", fmt.Sprintf("%dx%d+%d+%d", w.Width, w.Height, w.X, w.Y)},
		{"visible", strconv.FormatBool(w.Visible)},
		{"enabled", strconv.FormatBool(w.Enabled)},
		{"iconified", strconv.FormatBool(w.Iconified)},
		{"maximized", strconv.FormatBool(w.Maximized)},
		{"pointer inside", strconv.FormatBool(w.MouseEntered)},
		{"view", strconv.FormatBool(w.HasView)},
		{"in flight", strconv.Itoa(w.InFlight)},
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-15s", r[0])), r[1])
	}
	return strings.TrimRight(b.String(), "\n")
}

func ownerString(h window.Handle) string {
	if h == 0 {
		return "-"
	}
	return "#" + strconv.FormatUint(uint64(h), 10)
}

func handlesString(hs []window.Handle) string {
	if len(hs) == 0 {
		return "-"
	}
	parts := make([]string, len(hs))
	for i, h := range hs {
		parts[i] = "#" + strconv.FormatUint(uint64(h), 10)
	}
	return strings.Join(parts, " ")
}
