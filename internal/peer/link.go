// Package peer connects a local arena session to its opponent through the relay.
//
// A Link runs two loops over one websocket connection: the emit loop sends
// the most recently published local state at a fixed rate, and the receive
// loop decodes opponent snapshots into a Mailbox. Neither loop touches the
// session; the simulation publishes and drains on its own goroutine.
package peer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/ufo-race/internal/arena"
	"github.com/vovakirdan/ufo-race/internal/wire"
)

// ErrClosed is reported by Err after the link was closed locally.
var ErrClosed = errors.New("peer: link closed")

// DefaultEmitHz is the snapshot rate used when Options.EmitHz is unset.
const DefaultEmitHz = 20

const closeGrace = time.Second

// Options configures a Link.
type Options struct {
	EmitHz int
	Logger *log.Logger
}

// Link is a running connection to the opponent.
type Link struct {
	conn     *websocket.Conn
	role     arena.Role
	interval time.Duration
	logger   *log.Logger

	local atomic.Pointer[arena.ShipState]
	inbox *Mailbox

	done      chan struct{}
	closeOnce sync.Once
	startOnce sync.Once

	mu  sync.Mutex
	err error
}

// Dial connects to the relay at url and returns an unstarted link.
func Dial(ctx context.Context, url string, role arena.Role, opts Options) (*Link, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("peer: dial %s: %w", url, err)
	}
	return New(conn, role, opts), nil
}

// New wraps an established connection. Call Start to run the loops.
func New(conn *websocket.Conn, role arena.Role, opts Options) *Link {
	hz := opts.EmitHz
	if hz <= 0 {
		hz = DefaultEmitHz
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "peer",
		})
	}
	return &Link{
		conn:     conn,
		role:     role,
		interval: time.Second / time.Duration(hz),
		logger:   logger,
		inbox:    NewMailbox(),
		done:     make(chan struct{}),
	}
}

// Start launches the emit and receive loops. Cancelling ctx closes the link.
func (l *Link) Start(ctx context.Context) {
	l.startOnce.Do(func() {
		go l.emitLoop()
		go l.receiveLoop()
		go func() {
			select {
			case <-ctx.Done():
				l.Close()
			case <-l.done:
			}
		}()
		l.logger.Info("peer link started", "role", int(l.role), "interval", l.interval)
	})
}

// Publish stores the local state for the next emit tick.
func (l *Link) Publish(st arena.ShipState) {
	l.local.Store(&st)
}

// Inbox returns the mailbox receiving opponent updates.
func (l *Link) Inbox() *Mailbox {
	return l.inbox
}

// Done is closed once the link has terminated.
func (l *Link) Done() <-chan struct{} {
	return l.done
}

// Err returns the error that terminated the link, or nil while it runs.
func (l *Link) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close terminates the link. Safe to call multiple times.
func (l *Link) Close() error {
	l.terminate(ErrClosed)
	return nil
}

func (l *Link) emitLoop() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
		}

		st := l.local.Load()
		if st == nil {
			continue
		}
		data, err := wire.Encode(l.role, *st)
		if err != nil {
			l.terminate(err)
			return
		}
		if err := l.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			l.terminate(fmt.Errorf("peer: send: %w", err))
			return
		}
	}
}

func (l *Link) receiveLoop() {
	for {
		_, data, err := l.conn.ReadMessage()
		if err != nil {
			l.terminate(fmt.Errorf("peer: receive: %w", err))
			return
		}

		u, ok, err := wire.Decode(data, l.role)
		if err != nil {
			l.logger.Warn("dropping malformed snapshot", "error", err, "bytes", len(data))
			continue
		}
		if !ok {
			continue
		}
		l.inbox.Put(u)
	}
}

// terminate records the first error, logs it and tears the connection down.
func (l *Link) terminate(err error) {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.err = err
		l.mu.Unlock()

		switch {
		case errors.Is(err, ErrClosed):
			l.logger.Info("peer link closed")
		case websocket.IsCloseError(errors.Unwrap(err), websocket.CloseNormalClosure, websocket.CloseGoingAway):
			l.logger.Info("peer link closed by remote", "reason", err)
		default:
			l.logger.Error("peer link failed", "error", err)
		}

		close(l.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = l.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGrace))
		_ = l.conn.Close()
	})
}
