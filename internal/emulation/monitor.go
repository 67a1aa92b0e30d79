package emulation

import (
	"context"
	"fmt"
	"sync"
)

// ScriptedMonitor is a TaskMonitor over a hand-driven activity stack. The
// driver moves activities to the foreground with SetTop; subscribers get
// one notification per change. Safe for concurrent use.
type ScriptedMonitor struct {
	mu     sync.Mutex
	top    string
	subs   map[int]chan struct{}
	nextID int
	closed bool
}

// NewScriptedMonitor starts with top as the foreground activity.
func NewScriptedMonitor(top string) *ScriptedMonitor {
	return &ScriptedMonitor{
		top:  top,
		subs: make(map[int]chan struct{}),
	}
}

// TopActivity returns the current foreground activity.
func (m *ScriptedMonitor) TopActivity(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", fmt.Errorf("activity monitor closed")
	}
	return m.top, nil
}

// SubscribeStackChanges registers a subscriber. Each stack change delivers
// at most one pending notification; the returned cancel detaches the
// subscriber.
func (m *ScriptedMonitor) SubscribeStackChanges() (<-chan struct{}, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, nil, fmt.Errorf("activity monitor closed")
	}

	id := m.nextID
	m.nextID++
	ch := make(chan struct{}, 1)
	m.subs[id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
	return ch, cancel, nil
}

// SetTop replaces the foreground activity and notifies subscribers.
func (m *ScriptedMonitor) SetTop(activity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.top = activity
	m.notifyLocked()
}

// Notify wakes subscribers without changing the foreground activity.
func (m *ScriptedMonitor) Notify() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifyLocked()
}

func (m *ScriptedMonitor) notifyLocked() {
	for _, ch := range m.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close detaches every subscriber by closing its channel. Further queries
// and subscriptions fail.
func (m *ScriptedMonitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for id, ch := range m.subs {
		close(ch)
		delete(m.subs, id)
	}
}
