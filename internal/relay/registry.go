package relay

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds how long one peer may stall a forwarded message.
const writeWait = 10 * time.Second

// peerConn is one connected client.
type peerConn struct {
	id string
	ws *websocket.Conn

	writeMu sync.Mutex
}

// send writes one frame. Writes to the same connection are serialized
// because gorilla allows only one concurrent writer.
func (p *peerConn) send(messageType int, data []byte) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if err := p.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return p.ws.WriteMessage(messageType, data)
}

// registry tracks connected peers.
// Thread-safe for concurrent access.
type registry struct {
	mu    sync.RWMutex
	peers map[string]*peerConn
}

func newRegistry() *registry {
	return &registry{
		peers: make(map[string]*peerConn),
	}
}

// register adds a peer.
func (r *registry) register(p *peerConn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers[p.id] = p
}

// unregister removes a peer and reports whether it was present.
func (r *registry) unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.peers[id]; !ok {
		return false
	}
	delete(r.peers, id)
	return true
}

// others returns every peer except the one with the given id.
func (r *registry) others(id string) []*peerConn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*peerConn, 0, len(r.peers))
	for pid, p := range r.peers {
		if pid != id {
			out = append(out, p)
		}
	}
	return out
}

// all returns every registered peer.
func (r *registry) all() []*peerConn {
	return r.others("")
}

// count returns the number of registered peers.
func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.peers)
}
