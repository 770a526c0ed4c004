package engine

import (
	"bufio"
	"io"
	"strings"

	"github.com/minaorangina/topthat/protocol"
)

const (
	notStartedText = "The game hasn't started yet.\n"
	newGameText    = "Starting a new game...\n"
)

// HotSeat reads commands typed at a shared terminal and plays them
// for whoever holds the turn
type HotSeat struct {
	ge  GameEngine
	in  io.Reader
	out io.Writer
}

func NewHotSeat(ge GameEngine, in io.Reader, out io.Writer) *HotSeat {
	return &HotSeat{ge: ge, in: in, out: out}
}

// Run reads commands until the input ends or a player quits
func (h *HotSeat) Run() error {
	scanner := bufio.NewScanner(h.in)

	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}

		switch line {
		case "quit", "exit":
			SendText(h.out, goodbyeText)
			return nil

		case "again":
			h.playAgain()
			continue
		}

		turn := h.ge.Turn()
		if turn == "" {
			SendText(h.out, notStartedText)
			continue
		}

		if line == "take" {
			h.ge.Receive(protocol.InboundMessage{PlayerID: turn, Command: protocol.TakePile})
			continue
		}

		decision, err := ParseDecision(line)
		if err != nil {
			SendText(h.out, retryInputText)
			continue
		}

		h.ge.Receive(protocol.InboundMessage{PlayerID: turn, Command: protocol.Play, Decision: decision})
	}

	return scanner.Err()
}

// playAgain resets the game and deals everyone back in
func (h *HotSeat) playAgain() {
	if err := h.ge.Reset(h.ge.CreatorID()); err != nil {
		return
	}

	SendText(h.out, newGameText)
	for _, p := range h.ge.Players() {
		h.ge.Receive(protocol.InboundMessage{PlayerID: p.ID(), Command: protocol.Join, Name: p.Name()})
	}
}
