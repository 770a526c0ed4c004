package engine

import (
	"io"
	"strings"

	"github.com/minaorangina/topthat/protocol"
)

// CLIPlayer is a player sharing a terminal with the other players
type CLIPlayer struct {
	id   string
	name string
	out  io.Writer
}

func NewCLIPlayer(id, name string, out io.Writer) *CLIPlayer {
	return &CLIPlayer{id: id, name: name, out: out}
}

func (p *CLIPlayer) ID() string {
	return p.id
}

func (p *CLIPlayer) Name() string {
	return p.name
}

// Send prints the message. The table is only shown on the player's own turn,
// so hands stay hidden as long as players look away.
func (p *CLIPlayer) Send(msg protocol.OutboundMessage) error {
	switch msg.Command {
	case protocol.Joined, protocol.Reset:
		SendText(p.out, "%s\n", msg.Message)

	case protocol.LobbyRoster:
		// every player gets the same roster
		if len(msg.Roster) > 0 && msg.Roster[0].PlayerID == p.id {
			SendText(p.out, "%s", rosterText(msg.Roster))
		}

	case protocol.State:
		if msg.State != nil && msg.State.Turn == p.id {
			SendText(p.out, "%s", buildStateText(*msg.State, p.id))
		}

	case protocol.Notice:
		SendText(p.out, "%s: %s\n", p.name, msg.Message)
		if strings.HasPrefix(msg.Message, "It's your turn!") {
			SendText(p.out, promptText, p.name)
		}

	case protocol.Error:
		SendText(p.out, illegalMoveText, p.name, msg.Error)
		SendText(p.out, promptText, p.name)
	}

	return nil
}

// Close does nothing; the terminal outlives any one player
func (p *CLIPlayer) Close() {}
