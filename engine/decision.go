package engine

import (
	"fmt"

	"github.com/minaorangina/topthat/game"
	"github.com/minaorangina/topthat/protocol"
)

// ErrBadDecision is returned for a wire index that addresses no zone
var ErrBadDecision = fmt.Errorf("%w: invalid decision", game.ErrStructuralReject)

// DecodeDecision turns wire indices into card selections.
//
//	i        hand slot i
//	1000 + i face-up slot i
//	-1       the face-down card
func DecodeDecision(decision []int) ([]game.Selection, error) {
	sel := make([]game.Selection, 0, len(decision))

	for _, d := range decision {
		switch {
		case d == protocol.FaceDownIndex:
			sel = append(sel, game.Selection{Zone: game.FaceDown})
		case d >= protocol.FaceUpOffset:
			sel = append(sel, game.Selection{Zone: game.FaceUp, Position: d - protocol.FaceUpOffset})
		case d >= 0:
			sel = append(sel, game.Selection{Zone: game.Hand, Position: d})
		default:
			return nil, fmt.Errorf("%w: %d", ErrBadDecision, d)
		}
	}

	return sel, nil
}

// EncodeSelection is the inverse of DecodeDecision
func EncodeSelection(sel []game.Selection) []int {
	decision := make([]int, 0, len(sel))

	for _, s := range sel {
		switch s.Zone {
		case game.FaceDown:
			decision = append(decision, protocol.FaceDownIndex)
		case game.FaceUp:
			decision = append(decision, protocol.FaceUpOffset+s.Position)
		default:
			decision = append(decision, s.Position)
		}
	}

	return decision
}
