package protocol

import (
	"github.com/minaorangina/topthat/deck"
)

type Player struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

// InboundMessage is a message from Player to GameEngine
type InboundMessage struct {
	PlayerID string `json:"playerID"`
	Command  Cmd    `json:"command"`
	Name     string `json:"name,omitempty"`
	Decision []int  `json:"decision,omitempty"`
}

// OutboundMessage is a message from GameEngine to a single Player
type OutboundMessage struct {
	PlayerID string    `json:"playerID"`
	Command  Cmd       `json:"command"`
	Message  string    `json:"message,omitempty"`
	Joiner   *Player   `json:"joiner,omitempty"`
	Roster   []Player  `json:"roster,omitempty"`
	State    *Snapshot `json:"state,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Snapshot is the state of a game as seen by one player
type Snapshot struct {
	Turn         string       `json:"turn"`
	DeckCount    int          `json:"deckCount"`
	Pile         []deck.Card  `json:"pile"`
	DiscardCount int          `json:"discardCount"`
	Players      []PlayerView `json:"players"`
}

// PlayerView is a player's cards as seen by the snapshot's recipient.
// Hand is only filled in for the recipient's own cards.
type PlayerView struct {
	PlayerID      string      `json:"playerID"`
	Name          string      `json:"name"`
	FaceUp        []deck.Card `json:"faceUp"`
	FaceDownCount int         `json:"faceDownCount"`
	HandCount     int         `json:"handCount"`
	Hand          []deck.Card `json:"hand,omitempty"`
}

// Find returns the view of the player with the given ID
func (s *Snapshot) Find(playerID string) (PlayerView, bool) {
	for _, pv := range s.Players {
		if pv.PlayerID == playerID {
			return pv, true
		}
	}
	return PlayerView{}, false
}
