package session

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/talkbuddy/internal/conversation"
)

// paceMsg fires a task scheduled by the runtime.
type paceMsg struct {
	owner *pacer
	id    uint64
}

// dwellMsg auto-continues a prompt step once the learner had time to read it.
type dwellMsg struct {
	sessionID string
	step      int
}

// pacer implements conversation.Scheduler on top of tea.Tick so that every
// runtime callback runs inside Update.
type pacer struct {
	next   uint64
	tasks  map[uint64]func()
	queued []tea.Cmd
}

var _ conversation.Scheduler = (*pacer)(nil)

func newPacer() *pacer {
	return &pacer{tasks: make(map[uint64]func())}
}

// After queues a tick for fn. The tick is only sent once drain hands it to
// Bubble Tea.
func (p *pacer) After(d time.Duration, fn func()) conversation.CancelFunc {
	p.next++
	id := p.next
	p.tasks[id] = fn
	p.queued = append(p.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return paceMsg{owner: p, id: id}
	}))
	return func() { delete(p.tasks, id) }
}

// fire runs the task for id if it is still pending.
func (p *pacer) fire(id uint64) {
	fn, ok := p.tasks[id]
	if !ok {
		return
	}
	delete(p.tasks, id)
	fn()
}

// drain returns the ticks queued since the last drain.
func (p *pacer) drain() tea.Cmd {
	if len(p.queued) == 0 {
		return nil
	}
	cmds := p.queued
	p.queued = nil
	return tea.Batch(cmds...)
}

// pending reports how many tasks are waiting to fire.
func (p *pacer) pending() int {
	return len(p.tasks)
}
