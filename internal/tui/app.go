package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/gwk/internal/ipc"
)

// statusMsg carries the result of one poll.
type statusMsg struct {
	status *ipc.StatusData
	err    error
}

// pollMsg asks for the next poll.
type pollMsg struct{}

// model is the root bubbletea model for the monitor.
type model struct {
	src      Source
	interval time.Duration

	activeTab  Tab
	windowsTab WindowsTab

	status *ipc.StatusData
	err    error

	width  int
	height int
}

func newModel(src Source, interval time.Duration) model {
	return model{
		src:        src,
		interval:   interval,
		activeTab:  TabWindows,
		windowsTab: NewWindowsTab(),
	}
}

func (m model) fetch() tea.Msg {
	st, err := m.src.GetStatus()
	return statusMsg{status: st, err: err}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return m.fetch
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.err = msg.err
		if msg.err == nil && msg.status != nil {
			m.status = msg.status
			m.windowsTab.SetWindows(msg.status.Windows, msg.status.Grabs)
		}
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg {
			return pollMsg{}
		})

	case pollMsg:
		return m, m.fetch

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		subMsg := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
		m.windowsTab, _ = m.windowsTab.Update(subMsg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.activeTab == TabWindows && m.windowsTab.Capturing() {
			var cmd tea.Cmd
			m.windowsTab, cmd = m.windowsTab.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1":
			m.activeTab = TabWindows
			return m, nil
		case "2":
			m.activeTab = TabScreens
			return m, nil
		case "3":
			m.activeTab = TabEvents
			return m, nil
		}
	}

	if m.activeTab == TabWindows {
		var cmd tea.Cmd
		m.windowsTab, cmd = m.windowsTab.Update(msg)
		return m, cmd
	}
	return m, nil
}

// contentHeight returns the height available for tab content.
func (m model) contentHeight() int {
	// status bar (1) + tab bar (2 with margin) + help bar (1)
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var content string
	switch m.activeTab {
	case TabWindows:
		content = m.windowsTab.View()
	case TabScreens:
		if m.status != nil {
			content = renderScreens(m.status.Screens, m.width)
		} else {
			content = renderScreens(nil, m.width)
		}
	case TabEvents:
		content = renderEvents(m.status, m.width)
	}
	content = lipgloss.NewStyle().Height(m.contentHeight()).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		renderStatusBar(m.status, m.err, m.width),
		renderTabBar(m.activeTab, m.width),
		content,
		renderHelpBar(m.width),
	)
}
