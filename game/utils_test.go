package game

import (
	"strings"

	"github.com/minaorangina/topthat/deck"
	"github.com/minaorangina/topthat/protocol"
)

// gameOpts describes a game in progress, for tests
type gameOpts struct {
	players  []string
	cards    map[string]*PlayerCards
	deck     deck.Deck
	pile     []deck.Card
	turn     string
	lastReal *deck.Card
}

func gameWith(opts gameOpts) *Game {
	g := New()

	for _, id := range opts.players {
		pc, ok := opts.cards[id]
		if !ok {
			pc = NewPlayerCards(nil, nil, nil)
		}
		g.players = append(g.players, &player{
			Player: protocol.Player{PlayerID: id, Name: strings.ToUpper(id)},
			cards:  pc,
		})
	}

	if opts.deck != nil {
		g.deck = opts.deck
	}
	if opts.pile != nil {
		g.pile = opts.pile
	}

	g.turn = opts.turn
	if g.turn == "" && len(opts.players) > 0 {
		g.turn = opts.players[0]
	}

	g.started = true
	g.lastRealCard = opts.lastReal

	return g
}

func card(r deck.Rank, s deck.Suit) deck.Card {
	return deck.NewCard(r, s)
}

func cards(cs ...deck.Card) []deck.Card {
	if cs == nil {
		return []deck.Card{}
	}
	return cs
}

func cardPtr(r deck.Rank, s deck.Suit) *deck.Card {
	c := deck.NewCard(r, s)
	return &c
}

func inHand(positions ...int) []Selection {
	return selectIn(Hand, positions)
}

func inFaceUp(positions ...int) []Selection {
	return selectIn(FaceUp, positions)
}

func inFaceDown() []Selection {
	return []Selection{{Zone: FaceDown}}
}

func selectIn(z Zone, positions []int) []Selection {
	sel := []Selection{}
	for _, p := range positions {
		sel = append(sel, Selection{Zone: z, Position: p})
	}
	return sel
}

func messagesFor(msgs []protocol.OutboundMessage, playerID string) []protocol.OutboundMessage {
	found := []protocol.OutboundMessage{}
	for _, m := range msgs {
		if m.PlayerID == playerID {
			found = append(found, m)
		}
	}
	return found
}

func findMessage(msgs []protocol.OutboundMessage, playerID string, cmd protocol.Cmd) (protocol.OutboundMessage, bool) {
	for _, m := range msgs {
		if m.PlayerID == playerID && m.Command == cmd {
			return m, true
		}
	}
	return protocol.OutboundMessage{}, false
}

func countCommand(msgs []protocol.OutboundMessage, cmd protocol.Cmd) int {
	n := 0
	for _, m := range msgs {
		if m.Command == cmd {
			n++
		}
	}
	return n
}
