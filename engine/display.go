package engine

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/minaorangina/topthat/deck"
	"github.com/minaorangina/topthat/protocol"
)

const (
	promptText      = "%s, choose your cards (e.g. h1 h2, u1 or d), or type \"take\" to pick up the pile: "
	waitingText     = "Waiting for players: %s\n"
	illegalMoveText = "%s: that move isn't allowed (%s)\n"
	retryInputText  = "Invalid choice. Use h1, h2... for your hand, u1, u2... for face-up cards and d for a face-down card.\n"
	goodbyeText     = "\nThanks for playing!\n"
)

var ErrBadInput = errors.New("invalid card choice")

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

func rosterText(roster []protocol.Player) string {
	names := []string{}
	for _, p := range roster {
		names = append(names, p.Name)
	}
	return fmt.Sprintf(waitingText, strings.Join(names, ", "))
}

// cardsText lists cards with the token that selects each one
func cardsText(cards []deck.Card, prefix string) string {
	if len(cards) == 0 {
		return "none"
	}

	parts := []string{}
	for i, c := range cards {
		parts = append(parts, fmt.Sprintf("[%s%d] %s", prefix, i+1, c.Short()))
	}
	return strings.Join(parts, "  ")
}

func pileText(pile []deck.Card) string {
	if len(pile) == 0 {
		return "empty"
	}

	parts := []string{}
	for _, c := range pile {
		parts = append(parts, c.Short())
	}
	return strings.Join(parts, " ")
}

// buildStateText describes the table from viewerID's seat
func buildStateText(snap protocol.Snapshot, viewerID string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\nPile: %s\n", pileText(snap.Pile))
	fmt.Fprintf(&b, "Deck: %d left   Burnt: %d\n\n", snap.DeckCount, snap.DiscardCount)

	for _, pv := range snap.Players {
		if pv.PlayerID == viewerID {
			continue
		}
		fmt.Fprintf(&b, "%s has %d in hand, face-up %s, %d face-down\n",
			pv.Name, pv.HandCount, pileText(pv.FaceUp), pv.FaceDownCount)
	}

	if me, ok := snap.Find(viewerID); ok {
		fmt.Fprintf(&b, "\nYour hand:    %s\n", cardsText(me.Hand, "h"))
		fmt.Fprintf(&b, "Your face-up: %s\n", cardsText(me.FaceUp, "u"))
		fmt.Fprintf(&b, "Face-down:    %d 🙈\n", me.FaceDownCount)
	}

	return b.String()
}

// ParseDecision reads card tokens typed by a player into wire indices.
// Tokens are h<n> for the hand, u<n> for face-up cards and d for the
// face-down card, counting from 1.
func ParseDecision(input string) ([]int, error) {
	tokens := strings.Fields(strings.ToLower(input))
	if len(tokens) == 0 {
		return nil, ErrBadInput
	}

	decision := []int{}
	for _, tok := range tokens {
		if tok == "d" {
			decision = append(decision, protocol.FaceDownIndex)
			continue
		}

		if len(tok) < 2 || (tok[0] != 'h' && tok[0] != 'u') {
			return nil, fmt.Errorf("%w: %q", ErrBadInput, tok)
		}

		n, err := strconv.Atoi(tok[1:])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q", ErrBadInput, tok)
		}

		if tok[0] == 'u' {
			decision = append(decision, protocol.FaceUpOffset+n-1)
		} else {
			decision = append(decision, n-1)
		}
	}

	return decision, nil
}
