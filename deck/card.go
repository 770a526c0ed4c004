package deck

import (
	"fmt"
	"strconv"
)

// Rank represents a rank in a deck of cards.
// Its numeric value is the value used to compare cards.
type Rank int

const (
	NullRank Rank = 0
	Two      Rank = iota + 1
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankNames = map[Rank]string{
	Two:   "Two",
	Three: "Three",
	Four:  "Four",
	Five:  "Five",
	Six:   "Six",
	Seven: "Seven",
	Eight: "Eight",
	Nine:  "Nine",
	Ten:   "Ten",
	Jack:  "Jack",
	Queen: "Queen",
	King:  "King",
	Ace:   "Ace",
}

var faceTokens = map[Rank]string{
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

// ParseRank converts a rank token ("2".."10", "J", "Q", "K", "A") into a Rank
func ParseRank(token string) (Rank, error) {
	for r, t := range faceTokens {
		if t == token {
			return r, nil
		}
	}

	n, err := strconv.Atoi(token)
	if err != nil || n < int(Two) || n > int(Ten) {
		return NullRank, fmt.Errorf("unknown rank %q", token)
	}

	return Rank(n), nil
}

// Value returns the rank's value for ordering comparisons
func (r Rank) Value() int {
	return int(r)
}

// Token returns the short form of the rank, as used on the wire
func (r Rank) Token() string {
	if t, ok := faceTokens[r]; ok {
		return t
	}
	return strconv.Itoa(int(r))
}

func (r Rank) String() string {
	return rankNames[r]
}

func (r Rank) MarshalText() ([]byte, error) {
	if _, ok := rankNames[r]; !ok {
		return nil, fmt.Errorf("rank %d out of range", int(r))
	}
	return []byte(r.Token()), nil
}

func (r *Rank) UnmarshalText(text []byte) error {
	parsed, err := ParseRank(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Suit represents a suit in a deck of cards
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

var suitNames = []string{"hearts", "diamonds", "clubs", "spades"}

var suitSymbols = []string{"♥", "♦", "♣", "♠"}

func (s Suit) String() string {
	if s < Hearts || s > Spades {
		return ""
	}
	return suitNames[s]
}

// Symbol returns the suit's symbol, e.g. ♠
func (s Suit) Symbol() string {
	if s < Hearts || s > Spades {
		return "?"
	}
	return suitSymbols[s]
}

func (s Suit) MarshalText() ([]byte, error) {
	if s < Hearts || s > Spades {
		return nil, fmt.Errorf("suit %d out of range", int(s))
	}
	return []byte(suitNames[s]), nil
}

func (s *Suit) UnmarshalText(text []byte) error {
	for i, name := range suitNames {
		if name == string(text) {
			*s = Suit(i)
			return nil
		}
	}
	return fmt.Errorf("unknown suit %q", string(text))
}

// Card represents a playing card.
// Copied marks a card duplicated onto the pile by a Five; it has no effect on play.
type Card struct {
	Rank   Rank `json:"value"`
	Suit   Suit `json:"suit"`
	Copied bool `json:"copied,omitempty"`
}

// NewCard constructs a card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Value returns the card's value for ordering comparisons
func (c Card) Value() int {
	return c.Rank.Value()
}

// Same reports whether two cards have the same rank and suit, ignoring provenance
func (c Card) Same(other Card) bool {
	return c.Rank == other.Rank && c.Suit == other.Suit
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Short returns a compact representation of the card, e.g. "10♠"
func (c Card) Short() string {
	return c.Rank.Token() + c.Suit.Symbol()
}
