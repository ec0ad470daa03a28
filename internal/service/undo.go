package service

import (
	"sync"
	"time"

	"proforma/internal/model"
	ws "proforma/internal/websocket"
)

// DefaultUndoWindow is the grace interval during which a deletion can be
// reversed.
const DefaultUndoWindow = 5 * time.Second

type undoState int

const (
	undoActive undoState = iota
	undoUndone
	undoExpired
)

type pendingDeletion struct {
	record model.InvoiceRecord
	timer  *time.Timer
	state  undoState
	gen    uint64
}

// UndoManager tracks at most one pending undo at a time. Each deletion runs
// through the state machine Active -> (Undone | Expired): whichever
// transition happens first wins, and the loser is a no-op. The authoritative
// removal already happened at delete time; undo is purely a compensating
// re-insertion subject to the store's no-duplicate rule.
type UndoManager struct {
	mu      sync.Mutex
	window  time.Duration
	pending *pendingDeletion
	gen     uint64
	store   InvoiceService
	hub     *ws.Hub
}

func NewUndoManager(store InvoiceService, window time.Duration, hub *ws.Hub) *UndoManager {
	if window <= 0 {
		window = DefaultUndoWindow
	}
	return &UndoManager{
		window: window,
		store:  store,
		hub:    hub,
	}
}

// Track registers a freshly removed record and starts its grace window.
// A deletion tracked while another is still active implicitly expires the
// previous one; its window is not extended.
func (m *UndoManager) Track(record model.InvoiceRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending != nil && m.pending.state == undoActive {
		m.pending.timer.Stop()
		m.pending.state = undoExpired
	}

	m.gen++
	p := &pendingDeletion{record: record, state: undoActive, gen: m.gen}
	p.timer = time.AfterFunc(m.window, func() { m.expire(p.gen) })
	m.pending = p
}

// Undo reverses the pending deletion if its window has not elapsed. ok is
// false after expiry or with nothing pending; restored is false when a record
// with the same id is already back in the collection, so the caller can tell
// a real re-insertion from the no-op.
func (m *UndoManager) Undo() (record model.InvoiceRecord, restored, ok bool) {
	m.mu.Lock()
	p := m.pending
	if p == nil || p.state != undoActive {
		m.mu.Unlock()
		return model.InvoiceRecord{}, false, false
	}
	p.timer.Stop()
	p.state = undoUndone
	m.mu.Unlock()

	restored = m.store.Restore(p.record)
	return p.record.Clone(), restored, true
}

// expire marks a tracked deletion permanent once its window elapses. The
// generation check makes the callback a no-op if undo won the race or a newer
// deletion has replaced this one.
func (m *UndoManager) expire(gen uint64) {
	m.mu.Lock()
	p := m.pending
	if p == nil || p.gen != gen || p.state != undoActive {
		m.mu.Unlock()
		return
	}
	p.state = undoExpired
	m.mu.Unlock()

	m.hub.Notify(ws.EventUndoExpired, map[string]string{"id": p.record.ID})
}
