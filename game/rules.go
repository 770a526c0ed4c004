package game

import (
	"fmt"

	"github.com/minaorangina/topthat/deck"
)

const (
	handSize  = 3
	burnCount = 4
)

// Twos, Fives and Tens can be played on anything
var specialRanks = map[deck.Rank]bool{
	deck.Two:  true,
	deck.Five: true,
	deck.Ten:  true,
}

func top(pile []deck.Card) (deck.Card, bool) {
	if len(pile) == 0 {
		return deck.Card{}, false
	}
	return pile[len(pile)-1], true
}

// checkPlay returns a rule error if toPlay cannot be played on the pile
func checkPlay(pile, toPlay []deck.Card) error {
	if len(toPlay) == 0 {
		return ErrEmptySelection
	}

	rank := toPlay[0].Rank
	for _, c := range toPlay[1:] {
		if c.Rank != rank {
			return ErrMixedRanks
		}
	}

	if specialRanks[rank] {
		return nil
	}

	topCard, ok := top(pile)
	if !ok {
		return nil
	}

	if rank.Value() <= topCard.Value() {
		return fmt.Errorf("%w: %s does not beat %s", ErrTooLow, rank, topCard.Rank)
	}

	return nil
}

func isValid(pile, toPlay []deck.Card) bool {
	return checkPlay(pile, toPlay) == nil
}

// getLegalMoves returns the indices of cards that could each be played alone
func getLegalMoves(pile, cards []deck.Card) []int {
	moves := []int{}
	for i, c := range cards {
		if isValid(pile, []deck.Card{c}) {
			moves = append(moves, i)
		}
	}
	return moves
}

// isBurn reports whether a play clears the pile: any Ten, or four of a kind
func isBurn(played []deck.Card) bool {
	if len(played) == 0 {
		return false
	}
	return played[0].Rank == deck.Ten || len(played) >= burnCount
}

// isReal reports whether a play is remembered for Fives to copy
func isReal(played []deck.Card) bool {
	if len(played) == 0 {
		return false
	}
	return !specialRanks[played[0].Rank] && len(played) < burnCount
}

// place puts a legal play on the pile and applies its special effect.
// It reports whether the pile was burnt.
func (g *Game) place(played []deck.Card) bool {
	g.pile = append(g.pile, played...)

	switch {
	case isBurn(played):
		g.burn()
		return true

	case played[0].Rank == deck.Five:
		g.copyLastReal()

	case isReal(played):
		last := played[len(played)-1]
		g.lastRealCard = &last
	}

	return false
}

// burn moves the whole pile to the discard pile and turns up a fresh card
func (g *Game) burn() {
	g.discard = append(g.discard, g.pile...)
	g.pile = []deck.Card{}
	g.turnUpCard()
}

func (g *Game) copyLastReal() {
	if g.lastRealCard == nil {
		return
	}
	c := *g.lastRealCard
	c.Copied = true
	g.pile = append(g.pile, c)
}

// turnUpCard draws one card onto the pile, if the deck has any left
func (g *Game) turnUpCard() {
	if c, ok := g.deck.Draw(); ok {
		g.pile = append(g.pile, c)
	}
}

// givePile moves the pile into the player's hand and turns up a replacement
func (g *Game) givePile(p *player) int {
	taken := len(g.pile)
	p.cards.Hand = append(p.cards.Hand, g.pile...)
	g.pile = []deck.Card{}
	g.turnUpCard()
	return taken
}

// hasLegalMove is advisory: it drives the must-take-pile notice only
func (g *Game) hasLegalMove(p *player) bool {
	zone, ok := p.cards.ActiveZone()
	if !ok {
		return false
	}

	switch zone {
	case Hand:
		return len(getLegalMoves(g.pile, p.cards.Hand)) > 0
	case FaceUp:
		return len(getLegalMoves(g.pile, p.cards.FaceUp)) > 0
	}

	// face-down cards are unknown until played
	return true
}

// nextPlayer returns the player after the current one, in join order
func (g *Game) nextPlayer() *player {
	if len(g.players) == 0 {
		return nil
	}
	idx := g.playerIndex(g.turn)
	return g.players[(idx+1)%len(g.players)]
}

// advanceTurn passes the turn to the next player
func (g *Game) advanceTurn() {
	if next := g.nextPlayer(); next != nil {
		g.turn = next.PlayerID
	}
}
