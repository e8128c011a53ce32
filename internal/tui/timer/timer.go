// Package timer keeps the dashboard's recurring refreshes honest. Bubble
// Tea delivers tick messages with no sense of ownership, so a tick scheduled
// before a timer was stopped or restarted can still arrive later; the
// Manager stamps every tick with a generation and drops the stale ones
// instead of running a dead timer's callback.
package timer

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ehunter/skycast/internal/logger"
)

// TickMsg is delivered when a managed timer fires. Hand it back to
// Manager.Tick from Update; the generation is opaque on purpose.
type TickMsg struct {
	Name       string
	generation int
}

type entry struct {
	generation int
	every      time.Duration
	fn         tea.Cmd
	once       bool
}

// Manager is a named-timer registry. It is not safe for concurrent use;
// like all Bubble Tea model state it belongs to the Update goroutine.
type Manager struct {
	seq     int
	stopped bool
	timers  map[string]entry
}

// NewManager returns an empty registry.
func NewManager() *Manager {
	return &Manager{timers: make(map[string]entry)}
}

// Start schedules a recurring timer and returns the command that arms it.
// Restarting an existing name supersedes it: ticks from the earlier
// schedule are dropped when they arrive.
func (m *Manager) Start(name string, every time.Duration, fn tea.Cmd) tea.Cmd {
	if m.stopped {
		logger.Warn("timer manager is shut down, not scheduling", "timer", name)
		return nil
	}
	m.seq++
	m.timers[name] = entry{generation: m.seq, every: every, fn: fn}
	return m.tick(name, m.seq, every)
}

// Once schedules a single shot. The name is released after it fires.
func (m *Manager) Once(name string, delay time.Duration, fn tea.Cmd) tea.Cmd {
	if m.stopped {
		logger.Warn("timer manager is shut down, not scheduling", "timer", name)
		return nil
	}
	m.seq++
	m.timers[name] = entry{generation: m.seq, every: delay, fn: fn, once: true}
	return m.tick(name, m.seq, delay)
}

// Tick runs a fired timer's callback and reschedules it. Ticks from
// stopped or superseded timers return nil and run nothing.
func (m *Manager) Tick(msg TickMsg) tea.Cmd {
	e, ok := m.timers[msg.Name]
	if !ok || e.generation != msg.generation {
		logger.Debug("dropping stale timer tick", "timer", msg.Name)
		return nil
	}
	if e.once {
		delete(m.timers, msg.Name)
		return e.fn
	}
	return tea.Batch(e.fn, m.tick(msg.Name, e.generation, e.every))
}

// Stop cancels a timer and reports whether it existed.
func (m *Manager) Stop(name string) bool {
	if _, ok := m.timers[name]; !ok {
		return false
	}
	delete(m.timers, name)
	return true
}

// StopAll cancels every timer. The manager stays usable; in-flight ticks
// from the cancelled timers are dropped.
func (m *Manager) StopAll() {
	if len(m.timers) > 0 {
		logger.Debug("stopping all timers", "count", len(m.timers))
	}
	m.timers = make(map[string]entry)
}

// Shutdown cancels everything and refuses new schedules, for app teardown.
func (m *Manager) Shutdown() {
	m.StopAll()
	m.stopped = true
}

// Running reports whether a named timer is scheduled.
func (m *Manager) Running(name string) bool {
	_, ok := m.timers[name]
	return ok
}

// Active returns the scheduled timer names, sorted.
func (m *Manager) Active() []string {
	names := make([]string, 0, len(m.timers))
	for name := range m.timers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) tick(name string, generation int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{Name: name, generation: generation}
	})
}
