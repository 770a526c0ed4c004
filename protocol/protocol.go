package protocol

import "fmt"

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	// inbound, from Player to GameEngine
	Join
	Play
	TakePile
	Leave
	Reset
	// outbound, from GameEngine to Player
	LobbyRoster
	Joined
	State
	Notice
	Error
)

var CmdNames = map[Cmd]string{
	Null:        "Null",
	Join:        "Join",
	Play:        "Play",
	TakePile:    "TakePile",
	Leave:       "Leave",
	Reset:       "Reset",
	LobbyRoster: "LobbyRoster",
	Joined:      "Joined",
	State:       "State",
	Notice:      "Notice",
	Error:       "Error",
}

var NameToCmd = func() map[string]Cmd {
	m := map[string]Cmd{}
	for cmd, name := range CmdNames {
		m[name] = cmd
	}
	return m
}()

func (c Cmd) String() string {
	return CmdNames[c]
}

func (c Cmd) MarshalText() ([]byte, error) {
	name, ok := CmdNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return []byte(name), nil
}

func (c *Cmd) UnmarshalText(text []byte) error {
	cmd, ok := NameToCmd[string(text)]
	if !ok {
		return fmt.Errorf("unknown command %q", string(text))
	}
	*c = cmd
	return nil
}

// Wire encoding of card positions in InboundMessage.Decision.
// A plain index is a hand slot, FaceUpOffset+i is face-up slot i,
// and FaceDownIndex is the face-down slot.
const (
	FaceUpOffset  = 1000
	FaceDownIndex = -1
)
