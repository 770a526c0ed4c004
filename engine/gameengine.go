package engine

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/minaorangina/topthat/game"
	"github.com/minaorangina/topthat/protocol"
	"go.uber.org/zap"
)

var (
	ErrEngineStopped = errors.New("game engine has stopped")
	ErrNotCreator    = errors.New("only the game's creator can do that")
)

// GameEngine runs a single game.
// Commands are applied one at a time on the engine's own goroutine.
type GameEngine interface {
	ID() string
	CreatorID() string
	Players() Players
	Started() bool
	Turn() string
	Snapshot(viewerID string) protocol.Snapshot
	AddPlayer(Player) error
	RemovePlayer(Player)
	Receive(protocol.InboundMessage)
	Reset(requesterID string) error
	Stop()
}

// GameEngineOpts configures NewGameEngine
type GameEngineOpts struct {
	GameID    string
	CreatorID string
	Players   Players
	// StartPlayers is how many players must join before the cards are dealt
	StartPlayers int
	Rand         *rand.Rand
	Game         *game.Game
	Logger       *zap.Logger
}

type gameEngine struct {
	id        string
	creatorID string

	mu      sync.RWMutex
	game    *game.Game
	players Players

	registerCh   chan Player
	unregisterCh chan Player
	inboundCh    chan protocol.InboundMessage
	quitCh       chan struct{}
	stopOnce     sync.Once

	log *zap.Logger
}

// NewGameEngine constructs a GameEngine and starts its loop
func NewGameEngine(opts GameEngineOpts) (GameEngine, error) {
	return newGameEngine(opts), nil
}

func newGameEngine(opts GameEngineOpts) *gameEngine {
	g := opts.Game
	if g == nil {
		g = game.New(game.WithStartAt(opts.StartPlayers), game.WithRand(opts.Rand))
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	players := opts.Players
	if players == nil {
		players = Players{}
	}

	ge := &gameEngine{
		id:           opts.GameID,
		creatorID:    opts.CreatorID,
		game:         g,
		players:      players,
		registerCh:   make(chan Player),
		unregisterCh: make(chan Player),
		inboundCh:    make(chan protocol.InboundMessage),
		quitCh:       make(chan struct{}),
		log:          log.With(zap.String("game_id", opts.GameID)),
	}

	go ge.listen()

	return ge
}

func (ge *gameEngine) ID() string {
	return ge.id
}

func (ge *gameEngine) CreatorID() string {
	return ge.creatorID
}

// Players returns the connected players
func (ge *gameEngine) Players() Players {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return append(Players{}, ge.players...)
}

func (ge *gameEngine) Started() bool {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return ge.game.Started()
}

func (ge *gameEngine) Turn() string {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return ge.game.Turn()
}

func (ge *gameEngine) Snapshot(viewerID string) protocol.Snapshot {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return ge.game.Snapshot(viewerID)
}

// AddPlayer connects a player and joins them to the game
func (ge *gameEngine) AddPlayer(p Player) error {
	select {
	case ge.registerCh <- p:
		return nil
	case <-ge.quitCh:
		return ErrEngineStopped
	}
}

// RemovePlayer disconnects a player and takes them out of the game.
// It is a no-op if p has since been replaced by a newer connection.
func (ge *gameEngine) RemovePlayer(p Player) {
	select {
	case ge.unregisterCh <- p:
	case <-ge.quitCh:
	}
}

// Receive queues a command from a player
func (ge *gameEngine) Receive(msg protocol.InboundMessage) {
	select {
	case ge.inboundCh <- msg:
	case <-ge.quitCh:
	}
}

// Reset sends everyone back to an empty lobby. Only the creator may reset.
func (ge *gameEngine) Reset(requesterID string) error {
	if requesterID != ge.creatorID {
		return ErrNotCreator
	}

	select {
	case ge.inboundCh <- protocol.InboundMessage{PlayerID: requesterID, Command: protocol.Reset}:
		return nil
	case <-ge.quitCh:
		return ErrEngineStopped
	}
}

// Stop ends the engine's loop. Later calls are no-ops.
func (ge *gameEngine) Stop() {
	ge.stopOnce.Do(func() {
		close(ge.quitCh)
	})
}

func (ge *gameEngine) listen() {
	for {
		select {
		case joiner := <-ge.registerCh:
			ge.register(joiner)

		case leaver := <-ge.unregisterCh:
			ge.unregister(leaver)

		case msg := <-ge.inboundCh:
			ge.handle(msg)

		case <-ge.quitCh:
			ge.log.Debug("engine stopped")
			return
		}
	}
}

func (ge *gameEngine) register(joiner Player) {
	log := ge.log.With(zap.String("player_id", joiner.ID()))

	ge.mu.Lock()
	replaced, _ := ge.players.Find(joiner.ID())
	ge.players = AddPlayer(ge.players, joiner)
	msgs, err := ge.game.Join(joiner.ID(), joiner.Name())

	switch {
	case errors.Is(err, game.ErrAlreadyJoined):
		// reconnection: catch them up
		if ge.game.Started() {
			snap := ge.game.Snapshot(joiner.ID())
			msgs = []protocol.OutboundMessage{{PlayerID: joiner.ID(), Command: protocol.State, State: &snap}}
		}
		log.Info("player reconnected")

	case errors.Is(err, game.ErrGameStarted):
		log.Info("join rejected", zap.Error(err))

	case err != nil:
		log.Warn("join failed", zap.Error(err))

	default:
		log.Info("player joined", zap.String("name", joiner.Name()))
	}
	ge.mu.Unlock()

	if replaced != nil && replaced != joiner {
		replaced.Close()
	}

	ge.deliver(msgs)

	if errors.Is(err, game.ErrGameStarted) {
		ge.mu.Lock()
		ge.players = RemovePlayer(ge.players, joiner.ID())
		ge.mu.Unlock()
		joiner.Close()
	}
}

func (ge *gameEngine) unregister(leaver Player) {
	ge.mu.Lock()
	current, ok := ge.players.Find(leaver.ID())
	if !ok || current != leaver {
		ge.mu.Unlock()
		return
	}

	ge.players = RemovePlayer(ge.players, leaver.ID())
	msgs, err := ge.game.Leave(leaver.ID())
	ge.mu.Unlock()

	if err != nil {
		ge.log.Warn("leave failed", zap.String("player_id", leaver.ID()), zap.Error(err))
	}
	ge.log.Info("player disconnected", zap.String("player_id", leaver.ID()))

	ge.deliver(msgs)
}

func (ge *gameEngine) handle(msg protocol.InboundMessage) {
	log := ge.log.With(
		zap.String("player_id", msg.PlayerID),
		zap.Stringer("command", msg.Command),
	)

	var (
		msgs []protocol.OutboundMessage
		err  error
	)

	ge.mu.Lock()
	switch msg.Command {
	case protocol.Join:
		name := msg.Name
		if p, ok := ge.players.Find(msg.PlayerID); ok && name == "" {
			name = p.Name()
		}
		msgs, err = ge.game.Join(msg.PlayerID, name)

	case protocol.Play:
		var sel []game.Selection
		sel, err = DecodeDecision(msg.Decision)
		if err == nil {
			msgs, err = ge.game.Play(msg.PlayerID, sel)
		}

	case protocol.TakePile:
		msgs, err = ge.game.TakePile(msg.PlayerID)

	case protocol.Leave:
		msgs, err = ge.game.Leave(msg.PlayerID)

	case protocol.Reset:
		if msg.PlayerID != ge.creatorID {
			err = ErrNotCreator
			break
		}
		msgs = ge.game.Reset()

	default:
		log.Warn("unknown command")
	}
	ge.mu.Unlock()

	switch {
	case errors.Is(err, game.ErrRuleReject):
		log.Info("illegal move", zap.Error(err))
	case err != nil:
		log.Debug("command dropped", zap.Error(err))
	}

	ge.deliver(msgs)
}

// deliver sends each message to its recipient, if connected
func (ge *gameEngine) deliver(msgs []protocol.OutboundMessage) {
	ps := ge.Players()

	for _, m := range msgs {
		p, ok := ps.Find(m.PlayerID)
		if !ok {
			continue
		}
		if err := p.Send(m); err != nil {
			ge.log.Warn("could not send message",
				zap.String("player_id", m.PlayerID),
				zap.Stringer("command", m.Command),
				zap.Error(err),
			)
		}
	}
}
