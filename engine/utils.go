package engine

import (
	"errors"
	"sync"

	"github.com/minaorangina/topthat/protocol"
)

// SpyPlayer records every message sent to it.
// It is used in tests in place of a real connection.
type SpyPlayer struct {
	id, name string

	mu       sync.Mutex
	received []protocol.OutboundMessage
	notify   chan protocol.OutboundMessage
	fail     bool
	closed   bool
}

// NewSpyPlayer constructs a SpyPlayer
func NewSpyPlayer(id, name string) *SpyPlayer {
	return &SpyPlayer{
		id:     id,
		name:   name,
		notify: make(chan protocol.OutboundMessage, 256),
	}
}

// APlayer returns a SpyPlayer as a Player
func APlayer(id, name string) Player {
	return NewSpyPlayer(id, name)
}

func (sp *SpyPlayer) ID() string {
	return sp.id
}

func (sp *SpyPlayer) Name() string {
	return sp.name
}

var errSpyFailed = errors.New("spy player failed to send")

func (sp *SpyPlayer) Send(msg protocol.OutboundMessage) error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.fail {
		return errSpyFailed
	}

	sp.received = append(sp.received, msg)
	select {
	case sp.notify <- msg:
	default:
	}

	return nil
}

// Received returns a copy of every message sent so far
func (sp *SpyPlayer) Received() []protocol.OutboundMessage {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return append([]protocol.OutboundMessage{}, sp.received...)
}

// Next blocks until the next message arrives
func (sp *SpyPlayer) Next() protocol.OutboundMessage {
	return <-sp.notify
}

// NextWith blocks until a message with the given command arrives
func (sp *SpyPlayer) NextWith(cmd protocol.Cmd) protocol.OutboundMessage {
	for {
		msg := <-sp.notify
		if msg.Command == cmd {
			return msg
		}
	}
}

// FailSends makes every later Send fail
func (sp *SpyPlayer) FailSends() {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.fail = true
}

func (sp *SpyPlayer) Close() {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.closed = true
}

// Closed reports whether the engine has hung up on the player
func (sp *SpyPlayer) Closed() bool {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.closed
}
