package peer

import "github.com/vovakirdan/ufo-race/internal/arena"

// Mailbox holds at most one pending peer update. A newer update replaces
// an unread older one, so the reader always sees the latest snapshot.
type Mailbox struct {
	ch chan arena.PeerUpdate
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{ch: make(chan arena.PeerUpdate, 1)}
}

// Put stores u, dropping any update that has not been taken yet.
// It never blocks.
func (m *Mailbox) Put(u arena.PeerUpdate) {
	for {
		select {
		case m.ch <- u:
			return
		default:
		}
		// Slot taken by a stale update; drop it and retry.
		select {
		case <-m.ch:
		default:
		}
	}
}

// Take returns the pending update, if any, without blocking.
func (m *Mailbox) Take() (arena.PeerUpdate, bool) {
	select {
	case u := <-m.ch:
		return u, true
	default:
		return arena.PeerUpdate{}, false
	}
}

// C exposes the mailbox for select loops.
func (m *Mailbox) C() <-chan arena.PeerUpdate {
	return m.ch
}
