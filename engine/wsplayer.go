package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/topthat/protocol"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBufferSize = 32
)

var (
	ErrPlayerDisconnected = errors.New("player has disconnected")
	ErrSendBufferFull     = errors.New("player is not keeping up")
)

// WSPlayer is a player connected over a websocket
type WSPlayer struct {
	id   string
	name string
	conn *websocket.Conn
	ge   GameEngine
	log  *zap.Logger

	sendCh    chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewWSPlayer constructs a WSPlayer and starts pumping messages
// between the connection and the game engine
func NewWSPlayer(id, name string, ws *websocket.Conn, ge GameEngine, log *zap.Logger) *WSPlayer {
	if log == nil {
		log = zap.NewNop()
	}

	p := &WSPlayer{
		id:     id,
		name:   name,
		conn:   ws,
		ge:     ge,
		log:    log.With(zap.String("player_id", id)),
		sendCh: make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}

	go p.writePump()
	go p.readPump()

	return p
}

func (p *WSPlayer) ID() string {
	return p.id
}

func (p *WSPlayer) Name() string {
	return p.name
}

// Send queues a message for the connection. It never blocks.
func (p *WSPlayer) Send(msg protocol.OutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("could not encode %s message: %w", msg.Command, err)
	}

	select {
	case <-p.done:
		return ErrPlayerDisconnected
	default:
	}

	select {
	case p.sendCh <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close hangs up the connection once anything already queued has been written
func (p *WSPlayer) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}

// readPump forwards commands from the connection to the game engine.
// The player is removed from the game when the connection closes.
func (p *WSPlayer) readPump() {
	defer func() {
		p.Close()
		p.ge.RemovePlayer(p)
	}()

	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.log.Warn("connection closed unexpectedly", zap.Error(err))
			}
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			p.log.Info("could not decode message", zap.Error(err))
			continue
		}

		select {
		case <-p.done:
			return
		default:
		}

		// the connection decides who is speaking
		msg.PlayerID = p.id
		p.ge.Receive(msg)
	}
}

func (p *WSPlayer) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				p.log.Info("write failed", zap.Error(err))
				p.Close()
				return
			}

		case <-p.done:
			p.drain()
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			p.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				p.Close()
				return
			}
		}
	}
}

// drain writes whatever was queued before the player was closed
func (p *WSPlayer) drain() {
	for {
		select {
		case msg := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		default:
			return
		}
	}
}
