package engine

import (
	"github.com/minaorangina/topthat/protocol"
)

// Player represents a connected player
type Player interface {
	ID() string
	Name() string
	Send(msg protocol.OutboundMessage) error
	// Close ends the connection. It is called when the engine drops
	// the player or a newer connection replaces it.
	Close()
}

// Players represents all players connected to a game
type Players []Player

// NewPlayers returns a set of Players
func NewPlayers(p ...Player) Players {
	return Players(p)
}

// AddPlayer adds a player to a set of Players,
// replacing any earlier connection with the same ID
func AddPlayer(ps Players, p Player) Players {
	for i, existing := range ps {
		if existing.ID() == p.ID() {
			updated := append(Players{}, ps...)
			updated[i] = p
			return updated
		}
	}
	return append(ps, p)
}

// RemovePlayer returns ps without the player with the given ID
func RemovePlayer(ps Players, id string) Players {
	kept := Players{}
	for _, p := range ps {
		if p.ID() != id {
			kept = append(kept, p)
		}
	}
	return kept
}

// Find finds a player by id
func (ps Players) Find(id string) (Player, bool) {
	for _, p := range ps {
		if got := p.ID(); got == id {
			return p, true
		}
	}
	return nil, false
}

// Info returns the identity of each player
func (ps Players) Info() []protocol.Player {
	info := make([]protocol.Player, 0, len(ps))
	for _, p := range ps {
		info = append(info, protocol.Player{PlayerID: p.ID(), Name: p.Name()})
	}
	return info
}
