package peer

import (
	"sync"
	"testing"

	"github.com/vovakirdan/ufo-race/internal/arena"
)

func score(n int) arena.PeerUpdate {
	return arena.PeerUpdate{Score: &n}
}

func TestMailboxKeepsLatest(t *testing.T) {
	m := NewMailbox()
	m.Put(score(1))
	m.Put(score(2))
	m.Put(score(3))

	u, ok := m.Take()
	if !ok {
		t.Fatal("Expected a pending update")
	}
	if *u.Score != 3 {
		t.Errorf("Expected latest update 3, got %d", *u.Score)
	}
	if _, ok := m.Take(); ok {
		t.Error("Expected mailbox to be empty after Take")
	}
}

func TestMailboxConcurrentPutNeverBlocks(t *testing.T) {
	m := NewMailbox()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 100 {
				m.Put(score(n*100 + j))
			}
		}(i)
	}
	wg.Wait()

	if _, ok := m.Take(); !ok {
		t.Error("Expected one pending update")
	}
	if _, ok := m.Take(); ok {
		t.Error("Expected a single slot")
	}
}
