package game

import (
	"testing"

	"github.com/minaorangina/topthat/deck"
	utils "github.com/minaorangina/topthat/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveZone(t *testing.T) {
	some := cards(card(deck.Six, deck.Clubs))

	tt := []struct {
		name     string
		cards    *PlayerCards
		want     Zone
		wantLeft bool
	}{
		{"hand first", NewPlayerCards(some, some, some), Hand, true},
		{"then face-up", NewPlayerCards(nil, some, some), FaceUp, true},
		{"then face-down", NewPlayerCards(nil, nil, some), FaceDown, true},
		{"nothing left", NewPlayerCards(nil, nil, nil), Hand, false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			zone, ok := tc.cards.ActiveZone()
			utils.AssertEqual(t, ok, tc.wantLeft)
			utils.AssertEqual(t, zone, tc.want)
			utils.AssertEqual(t, tc.cards.Empty(), !tc.wantLeft)
		})
	}
}

func TestResolve(t *testing.T) {
	pc := NewPlayerCards(
		cards(card(deck.Six, deck.Clubs), card(deck.Nine, deck.Hearts), card(deck.Six, deck.Spades)),
		cards(card(deck.Ace, deck.Clubs)),
		cards(card(deck.King, deck.Clubs)),
	)

	zone, positions, selected, err := pc.resolve(inHand(2, 0))
	require.NoError(t, err)
	utils.AssertEqual(t, zone, Hand)
	utils.AssertDeepEqual(t, positions, []int{2, 0})
	utils.AssertDeepEqual(t, selected, cards(card(deck.Six, deck.Spades), card(deck.Six, deck.Clubs)))

	t.Log("And nothing was removed")
	utils.AssertEqual(t, pc.Count(), 5)

	_, _, _, err = pc.resolve(inHand(3))
	assert.ErrorIs(t, err, ErrBadSelection)

	_, _, _, err = pc.resolve(inFaceUp(0))
	assert.ErrorIs(t, err, ErrZoneLocked)
	assert.Contains(t, err.Error(), "must play from hand")
}

func TestRemove(t *testing.T) {
	pc := NewPlayerCards(
		cards(card(deck.Six, deck.Clubs), card(deck.Nine, deck.Hearts), card(deck.Six, deck.Spades), card(deck.Jack, deck.Spades)),
		nil, nil,
	)

	pc.remove(Hand, []int{2, 0})
	utils.AssertDeepEqual(t, pc.Hand, cards(card(deck.Nine, deck.Hearts), card(deck.Jack, deck.Spades)))
}

func TestRefill(t *testing.T) {
	t.Run("tops the hand up to three", func(t *testing.T) {
		pc := NewPlayerCards(cards(card(deck.Six, deck.Clubs)), nil, nil)
		d := deck.Deck{card(deck.Ace, deck.Clubs), card(deck.King, deck.Clubs), card(deck.Queen, deck.Clubs)}

		pc.refill(&d)
		utils.AssertDeepEqual(t, pc.Hand, cards(card(deck.Six, deck.Clubs), card(deck.Queen, deck.Clubs), card(deck.King, deck.Clubs)))
		utils.AssertEqual(t, len(d), 1)
	})

	t.Run("a big hand is left alone", func(t *testing.T) {
		hand := cards(card(deck.Six, deck.Clubs), card(deck.Six, deck.Hearts), card(deck.Seven, deck.Clubs), card(deck.Eight, deck.Clubs))
		pc := NewPlayerCards(hand, nil, nil)
		d := deck.Deck{card(deck.Ace, deck.Clubs)}

		pc.refill(&d)
		utils.AssertEqual(t, len(pc.Hand), 4)
		utils.AssertEqual(t, len(d), 1)
	})

	t.Run("stops when the deck runs out", func(t *testing.T) {
		pc := NewPlayerCards(nil, nil, nil)
		d := deck.Deck{card(deck.Ace, deck.Clubs)}

		pc.refill(&d)
		utils.AssertEqual(t, len(pc.Hand), 1)
		assert.Empty(t, d)
	})
}

func TestZoneString(t *testing.T) {
	utils.AssertEqual(t, Hand.String(), "hand")
	utils.AssertEqual(t, FaceUp.String(), "face-up")
	utils.AssertEqual(t, FaceDown.String(), "face-down")
	utils.AssertEqual(t, Zone(7).String(), "Zone(7)")
}
