package deck

import (
	"math/rand"
	"time"
)

const (
	// PlayersPerCopy is how many players one copy of the cards serves
	PlayersPerCopy = 4
	// CopySize is the number of cards in one copy
	CopySize = 40
)

// copyRanks are the ten ranks dealt in each copy of the cards.
var copyRanks = []Rank{Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Deck represents a deck of cards.
// The top of the deck is the end of the slice.
type Deck []Card

// NumCopies returns how many copies of the cards are needed for numPlayers
func NumCopies(numPlayers int) int {
	if numPlayers <= 0 {
		return 0
	}
	return (numPlayers + PlayersPerCopy - 1) / PlayersPerCopy
}

// New creates an unshuffled deck with enough copies for numPlayers
func New(numPlayers int) Deck {
	copies := NumCopies(numPlayers)
	cards := make([]Card, 0, copies*CopySize)
	for i := 0; i < copies; i++ {
		for _, suit := range suits {
			for _, rank := range copyRanks {
				cards = append(cards, NewCard(rank, suit))
			}
		}
	}
	return cards
}

// Shuffle shuffles the deck of cards in place (Fisher–Yates).
// A nil source falls back to a time-seeded one.
func (d *Deck) Shuffle(r *rand.Rand) {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	actualDeck := *d
	for i := len(actualDeck) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		actualDeck[i], actualDeck[j] = actualDeck[j], actualDeck[i]
	}
}

// Draw removes and returns the top card.
// ok is false when the deck is empty.
func (d *Deck) Draw() (card Card, ok bool) {
	n := len(*d)
	if n == 0 {
		return Card{}, false
	}
	card = (*d)[n-1]
	*d = (*d)[:n-1]
	return card, true
}

// Deal deals up to n cards from the top of the deck, until it is empty
func (d *Deck) Deal(n int) []Card {
	dealt := []Card{}
	for i := 0; i < n; i++ {
		c, ok := d.Draw()
		if !ok {
			break
		}
		dealt = append(dealt, c)
	}
	return dealt
}
