package dispatch

import (
	"sync/atomic"
	"time"

	"github.com/1broseidon/gwk/internal/native"
	"github.com/1broseidon/gwk/internal/window"
)

// Status is the state published after every dispatched event. It is a copy
// and may be read from any goroutine.
type Status struct {
	Windows   []window.Info   `json:"windows"`
	Grabs     window.GrabInfo `json:"grabs"`
	Screens   []native.Screen `json:"screens"`
	Dragging  bool            `json:"dragging"`
	Events    uint64          `json:"events"`
	Errors    uint64          `json:"errors"`
	LastEvent string          `json:"last_event,omitempty"`
	LastError string          `json:"last_error,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Monitor holds the latest Status. The dispatcher writes it from the event
// loop; inspection servers read it concurrently.
type Monitor struct {
	status atomic.Pointer[Status]
	now    func() time.Time
}

// NewMonitor returns an empty Monitor.
func NewMonitor() *Monitor {
	return &Monitor{now: time.Now}
}

// Load returns the latest Status; the zero Status before the first publish.
func (m *Monitor) Load() Status {
	if st := m.status.Load(); st != nil {
		return *st
	}
	return Status{}
}

func (m *Monitor) store(st Status) {
	if m.now != nil {
		st.UpdatedAt = m.now()
	}
	m.status.Store(&st)
}
