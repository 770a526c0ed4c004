package game

import (
	"fmt"

	"github.com/minaorangina/topthat/deck"
)

// Zone names one of a player's three groups of cards
type Zone int

const (
	Hand Zone = iota
	FaceUp
	FaceDown
)

var zoneNames = []string{"hand", "face-up", "face-down"}

func (z Zone) String() string {
	if z < Hand || z > FaceDown {
		return fmt.Sprintf("Zone(%d)", int(z))
	}
	return zoneNames[z]
}

// Selection addresses one card in one of a player's zones.
// Position is ignored for FaceDown: face-down cards are always played front first.
type Selection struct {
	Zone     Zone
	Position int
}

// PlayerCards holds a player's hand, face-up and face-down cards
type PlayerCards struct {
	Hand, FaceUp, FaceDown []deck.Card
}

// NewPlayerCards constructs PlayerCards, replacing nil zones with empty ones
func NewPlayerCards(hand, faceUp, faceDown []deck.Card) *PlayerCards {
	if hand == nil {
		hand = []deck.Card{}
	}
	if faceUp == nil {
		faceUp = []deck.Card{}
	}
	if faceDown == nil {
		faceDown = []deck.Card{}
	}

	return &PlayerCards{
		Hand:     hand,
		FaceUp:   faceUp,
		FaceDown: faceDown,
	}
}

// ActiveZone returns the zone the player must play from.
// ok is false once all three zones are empty.
func (pc *PlayerCards) ActiveZone() (zone Zone, ok bool) {
	switch {
	case len(pc.Hand) > 0:
		return Hand, true
	case len(pc.FaceUp) > 0:
		return FaceUp, true
	case len(pc.FaceDown) > 0:
		return FaceDown, true
	}
	return Hand, false
}

// Empty reports whether the player has no cards left at all
func (pc *PlayerCards) Empty() bool {
	_, ok := pc.ActiveZone()
	return !ok
}

// Count returns the total number of cards held
func (pc *PlayerCards) Count() int {
	return len(pc.Hand) + len(pc.FaceUp) + len(pc.FaceDown)
}

func (pc *PlayerCards) zone(z Zone) *[]deck.Card {
	switch z {
	case Hand:
		return &pc.Hand
	case FaceUp:
		return &pc.FaceUp
	case FaceDown:
		return &pc.FaceDown
	}
	return nil
}

// resolve checks a selection against the player's cards and returns the
// selected cards in selection order, without modifying anything.
func (pc *PlayerCards) resolve(sel []Selection) (Zone, []int, []deck.Card, error) {
	active, ok := pc.ActiveZone()
	if !ok {
		return Hand, nil, nil, ErrNoCards
	}

	zone := sel[0].Zone
	for _, s := range sel[1:] {
		if s.Zone != zone {
			return zone, nil, nil, ErrMixedZones
		}
	}

	if zone != active {
		return zone, nil, nil, fmt.Errorf("%w: must play from %s", ErrZoneLocked, active)
	}

	if zone == FaceDown {
		if len(sel) != 1 {
			return zone, nil, nil, ErrPlayOneCard
		}
		return zone, []int{0}, []deck.Card{pc.FaceDown[0]}, nil
	}

	cards := *pc.zone(zone)
	positions := make([]int, 0, len(sel))
	selected := make([]deck.Card, 0, len(sel))
	seen := map[int]struct{}{}

	for _, s := range sel {
		if s.Position < 0 || s.Position >= len(cards) {
			return zone, nil, nil, fmt.Errorf("%w: no %s card at position %d", ErrBadSelection, zone, s.Position)
		}
		if _, dup := seen[s.Position]; dup {
			return zone, nil, nil, fmt.Errorf("%w: position %d selected twice", ErrBadSelection, s.Position)
		}
		seen[s.Position] = struct{}{}
		positions = append(positions, s.Position)
		selected = append(selected, cards[s.Position])
	}

	return zone, positions, selected, nil
}

// remove takes the cards at positions out of the zone, keeping the order of the rest
func (pc *PlayerCards) remove(z Zone, positions []int) {
	cards := pc.zone(z)
	drop := map[int]struct{}{}
	for _, p := range positions {
		drop[p] = struct{}{}
	}

	kept := []deck.Card{}
	for i, c := range *cards {
		if _, ok := drop[i]; !ok {
			kept = append(kept, c)
		}
	}
	*cards = kept
}

// refill tops the hand up to handSize from the deck, stopping if it runs out
func (pc *PlayerCards) refill(d *deck.Deck) {
	if missing := handSize - len(pc.Hand); missing > 0 {
		pc.Hand = append(pc.Hand, d.Deal(missing)...)
	}
}

func (pc *PlayerCards) clone() PlayerCards {
	return PlayerCards{
		Hand:     append([]deck.Card{}, pc.Hand...),
		FaceUp:   append([]deck.Card{}, pc.FaceUp...),
		FaceDown: append([]deck.Card{}, pc.FaceDown...),
	}
}
