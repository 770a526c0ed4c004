package game

import (
	"fmt"

	"github.com/minaorangina/topthat/deck"
	"github.com/minaorangina/topthat/protocol"
)

func (g *Game) buildSnapshot(viewerID string) *protocol.Snapshot {
	views := make([]protocol.PlayerView, 0, len(g.players))

	for _, p := range g.players {
		view := protocol.PlayerView{
			PlayerID:      p.PlayerID,
			Name:          p.Name,
			FaceUp:        append([]deck.Card{}, p.cards.FaceUp...),
			FaceDownCount: len(p.cards.FaceDown),
			HandCount:     len(p.cards.Hand),
		}
		if p.PlayerID == viewerID {
			view.Hand = append([]deck.Card{}, p.cards.Hand...)
		}
		views = append(views, view)
	}

	return &protocol.Snapshot{
		Turn:         g.turn,
		DeckCount:    len(g.deck),
		Pile:         append([]deck.Card{}, g.pile...),
		DiscardCount: len(g.discard),
		Players:      views,
	}
}

func (g *Game) buildStateMessages() []protocol.OutboundMessage {
	msgs := []protocol.OutboundMessage{}
	for _, p := range g.players {
		msgs = append(msgs, protocol.OutboundMessage{
			PlayerID: p.PlayerID,
			Command:  protocol.State,
			State:    g.buildSnapshot(p.PlayerID),
		})
	}
	return msgs
}

func (g *Game) buildRosterMessages() []protocol.OutboundMessage {
	roster := g.Players()
	msgs := []protocol.OutboundMessage{}
	for _, p := range g.players {
		msgs = append(msgs, protocol.OutboundMessage{
			PlayerID: p.PlayerID,
			Command:  protocol.LobbyRoster,
			Roster:   roster,
		})
	}
	return msgs
}

func buildJoinedMessage(joiner protocol.Player) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID: joiner.PlayerID,
		Command:  protocol.Joined,
		Joiner:   &joiner,
		Message:  fmt.Sprintf("Welcome, %s!", joiner.Name),
	}
}

func buildNotice(playerID, text string) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID: playerID,
		Command:  protocol.Notice,
		Message:  text,
	}
}

// buildNoticeMessages tells everyone except the subject
func (g *Game) buildNoticeMessages(subjectID, text string) []protocol.OutboundMessage {
	msgs := []protocol.OutboundMessage{}
	for _, p := range g.players {
		if p.PlayerID != subjectID {
			msgs = append(msgs, buildNotice(p.PlayerID, text))
		}
	}
	return msgs
}

// buildTurnNotices tells the current player it's their turn,
// and warns them if nothing they hold beats the pile
func (g *Game) buildTurnNotices() []protocol.OutboundMessage {
	current := g.findPlayer(g.turn)
	if current == nil {
		return nil
	}

	text := "It's your turn!"
	if zone, ok := current.cards.ActiveZone(); ok {
		text += fmt.Sprintf(" Play from your %s cards.", zone)
	}

	msgs := []protocol.OutboundMessage{buildNotice(current.PlayerID, text)}
	if !g.hasLegalMove(current) {
		msgs = append(msgs, buildNotice(current.PlayerID, "You have nothing that beats the pile. You must take the pile."))
	}

	return msgs
}

func (g *Game) buildBurnNotices(burner *player) []protocol.OutboundMessage {
	msgs := []protocol.OutboundMessage{buildNotice(burner.PlayerID, "Burn!")}
	return append(msgs, g.buildNoticeMessages(burner.PlayerID, fmt.Sprintf("Burn for %s!", burner.Name))...)
}

func (g *Game) buildPickUpNotices(taker *player, taken int) []protocol.OutboundMessage {
	msgs := []protocol.OutboundMessage{buildNotice(taker.PlayerID, fmt.Sprintf("You picked up %d cards.", taken))}
	return append(msgs, g.buildNoticeMessages(taker.PlayerID, fmt.Sprintf("%s picked up the pile.", taker.Name))...)
}

func buildErrorMessage(playerID string, err error) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID: playerID,
		Command:  protocol.Error,
		Error:    err.Error(),
	}
}

func buildResetMessage(playerID string) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID: playerID,
		Command:  protocol.Reset,
		Message:  "The game has been reset.",
	}
}
