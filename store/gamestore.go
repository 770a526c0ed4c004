package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/topthat/engine"
	"github.com/minaorangina/topthat/protocol"
	"go.uber.org/zap"
)

var (
	ErrUnknownGameID          = errors.New("unknown game ID")
	ErrUnknownPlayerID        = errors.New("unknown player ID")
	ErrGameAlreadyStarted     = errors.New("game has already started")
	ErrFnUnknownPendingGameID = func(gameID string) error {
		return fmt.Errorf("%w: pending game with id \"%s\" does not exist", ErrUnknownGameID, gameID)
	}
	ErrFnGameExists = func(gameID string) error {
		return fmt.Errorf("game with id %s already exists", gameID)
	}
)

type GameStore interface {
	FindGame(gameID string) engine.GameEngine
	FindPendingGame(gameID string) engine.GameEngine
	FindPendingPlayer(gameID, playerID string) *protocol.Player
	PendingPlayers(gameID string) []protocol.Player
	AddGame(game engine.GameEngine) error
	AddPendingPlayer(gameID, playerID, name string) error
	AddPlayerToGame(gameID string, player engine.Player) error
	RemoveGame(gameID string) error
}

// InMemoryGameStore maps game id to game engine
type InMemoryGameStore struct {
	mu             sync.RWMutex
	games          map[string]engine.GameEngine
	pendingPlayers map[string][]protocol.Player
	log            *zap.Logger
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore(log *zap.Logger) *InMemoryGameStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &InMemoryGameStore{
		games:          map[string]engine.GameEngine{},
		pendingPlayers: map[string][]protocol.Player{},
		log:            log,
	}
}

func (s *InMemoryGameStore) FindGame(gameID string) engine.GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[gameID]
	if !ok {
		return nil
	}
	return game
}

// GameIDs returns the id of every stored game, in no particular order
func (s *InMemoryGameStore) GameIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	return ids
}

// FindPendingGame returns the game if it is still waiting for players
func (s *InMemoryGameStore) FindPendingGame(gameID string) engine.GameEngine {
	game := s.FindGame(gameID)
	if game == nil || game.Started() {
		return nil
	}
	return game
}

func (s *InMemoryGameStore) FindPendingPlayer(gameID, playerID string) *protocol.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, info := range s.pendingPlayers[gameID] {
		if info.PlayerID == playerID {
			found := info
			return &found
		}
	}
	return nil
}

// PendingPlayers returns everyone who has been given a player ID for the game
func (s *InMemoryGameStore) PendingPlayers(gameID string) []protocol.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]protocol.Player{}, s.pendingPlayers[gameID]...)
}

func (s *InMemoryGameStore) AddGame(game engine.GameEngine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[game.ID()]; exists {
		return ErrFnGameExists(game.ID())
	}

	s.games[game.ID()] = game
	s.log.Info("game added", zap.String("game_id", game.ID()))
	return nil
}

// AddPendingPlayer adds the information from which to construct a Player in the future.
// If the target game does not exist or has started, it will fail.
func (s *InMemoryGameStore) AddPendingPlayer(gameID, playerID, name string) error {
	game := s.FindGame(gameID)
	if game == nil {
		return ErrFnUnknownPendingGameID(gameID)
	}
	if game.Started() {
		return ErrGameAlreadyStarted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pendingPlayers[gameID] = append(s.pendingPlayers[gameID], protocol.Player{PlayerID: playerID, Name: name})
	return nil
}

// AddPlayerToGame connects a player who was given an ID for the game.
// Whether they may play is up to the game.
func (s *InMemoryGameStore) AddPlayerToGame(gameID string, player engine.Player) error {
	game := s.FindGame(gameID)
	if game == nil {
		return ErrUnknownGameID
	}
	if s.FindPendingPlayer(gameID, player.ID()) == nil {
		return ErrUnknownPlayerID
	}

	return game.AddPlayer(player)
}

// RemoveGame stops the game's engine and forgets it
func (s *InMemoryGameStore) RemoveGame(gameID string) error {
	s.mu.Lock()
	game, ok := s.games[gameID]
	delete(s.games, gameID)
	delete(s.pendingPlayers, gameID)
	s.mu.Unlock()

	if !ok {
		return ErrUnknownGameID
	}

	game.Stop()
	s.log.Info("game removed", zap.String("game_id", gameID))
	return nil
}
