package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/inline-editor/pkg/editor"
)

// repopulateMsg wakes the model on the loop turn after a task was scheduled.
type repopulateMsg struct{}

// TeaScheduler defers editor tasks to the next turn of the Bubble Tea loop.
// Schedule only queues; the owning model asks for Cmd after every update and
// runs the queue when the resulting message comes back.
type TeaScheduler struct {
	queue editor.QueueScheduler
}

var _ editor.Scheduler = (*TeaScheduler)(nil)

// Schedule implements editor.Scheduler.
func (s *TeaScheduler) Schedule(task func()) {
	s.queue.Schedule(task)
}

// Cmd returns a command delivering repopulateMsg, or nil when nothing waits.
func (s *TeaScheduler) Cmd() tea.Cmd {
	if s.queue.Pending() == 0 {
		return nil
	}
	return func() tea.Msg { return repopulateMsg{} }
}

// Run executes the tasks queued so far.
func (s *TeaScheduler) Run() int {
	return s.queue.RunPending()
}
