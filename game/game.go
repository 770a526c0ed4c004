package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/minaorangina/topthat/deck"
	"github.com/minaorangina/topthat/protocol"
)

// Error kinds. Every error returned by a Game command wraps one of them.
//
// A structural reject (wrong stage, unknown player, not their turn, a
// selection that does not address their cards) is dropped without telling
// anyone. A rule reject (a selection that may not be played on the pile)
// comes with an Error message for the offending player.
var (
	ErrStructuralReject = errors.New("command rejected")
	ErrRuleReject       = errors.New("illegal move")
)

var (
	ErrGameStarted    = structural("game has already started")
	ErrNotStarted     = structural("game has not started")
	ErrUnknownPlayer  = structural("unknown player")
	ErrAlreadyJoined  = structural("player has already joined")
	ErrNotYourTurn    = structural("not this player's turn")
	ErrNoCards        = structural("player has no cards left")
	ErrMixedZones     = structural("cards must come from one group")
	ErrZoneLocked     = structural("cards played out of order")
	ErrPlayOneCard    = structural("must play one face-down card only")
	ErrBadSelection   = structural("invalid card selection")
	ErrEmptySelection = rule("no cards selected")
	ErrMixedRanks     = rule("cards must all be the same rank")
	ErrTooLow         = rule("cards do not beat the pile")
)

type rejection struct {
	kind error
	msg  string
}

func (r *rejection) Error() string { return r.msg }
func (r *rejection) Unwrap() error { return r.kind }

func structural(msg string) error { return &rejection{ErrStructuralReject, msg} }
func rule(msg string) error       { return &rejection{ErrRuleReject, msg} }

const (
	minPlayers = 2
)

// Stage is the stage of the game, derived from whether it has started
type Stage int

const (
	Lobby Stage = iota
	InProgress
)

func (s Stage) String() string {
	if s == InProgress {
		return "inProgress"
	}
	return "lobby"
}

type player struct {
	protocol.Player
	cards *PlayerCards
}

// Game is a single game of Top That!
//
// A Game is not safe for concurrent use. Commands must be applied one at a
// time; each either completes or leaves the game untouched.
type Game struct {
	players      []*player
	deck         deck.Deck
	pile         []deck.Card
	discard      []deck.Card
	turn         string
	started      bool
	lastRealCard *deck.Card

	startAt int
	rand    *rand.Rand
}

// Option configures a Game
type Option func(*Game)

// WithStartAt sets how many players must join before the game starts.
// Values below 2 are ignored.
func WithStartAt(n int) Option {
	return func(g *Game) {
		if n >= minPlayers {
			g.startAt = n
		}
	}
}

// WithRand sets the source used to shuffle the deck
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		if r != nil {
			g.rand = r
		}
	}
}

// New constructs an empty game, waiting for players
func New(opts ...Option) *Game {
	g := &Game{startAt: minPlayers}
	for _, opt := range opts {
		opt(g)
	}
	if g.rand == nil {
		g.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.clear()
	return g
}

func (g *Game) clear() {
	g.players = []*player{}
	g.deck = deck.Deck{}
	g.pile = []deck.Card{}
	g.discard = []deck.Card{}
	g.turn = ""
	g.started = false
	g.lastRealCard = nil
}

// Join registers a player. The game starts as soon as enough players have joined.
// A player who is already seated gets ErrAlreadyJoined, whether or not the game has started.
func (g *Game) Join(playerID, name string) ([]protocol.OutboundMessage, error) {
	if g.findPlayer(playerID) != nil {
		return nil, ErrAlreadyJoined
	}
	if g.started {
		return []protocol.OutboundMessage{buildErrorMessage(playerID, ErrGameStarted)}, ErrGameStarted
	}

	joiner := &player{
		Player: protocol.Player{PlayerID: playerID, Name: name},
		cards:  NewPlayerCards(nil, nil, nil),
	}
	g.players = append(g.players, joiner)

	msgs := []protocol.OutboundMessage{buildJoinedMessage(joiner.Player)}
	msgs = append(msgs, g.buildRosterMessages()...)

	if len(g.players) >= g.startAt {
		g.start()
		msgs = append(msgs, g.buildStateMessages()...)
		msgs = append(msgs, g.buildTurnNotices()...)
	}

	return msgs, nil
}

// start deals the cards and gives the turn to the first player to join
func (g *Game) start() {
	g.deck = deck.New(len(g.players))
	g.deck.Shuffle(g.rand)

	for round := 0; round < handSize; round++ {
		for _, p := range g.players {
			g.dealTo(&p.cards.FaceDown)
			g.dealTo(&p.cards.FaceUp)
			g.dealTo(&p.cards.Hand)
		}
	}

	g.turnUpCard()
	g.turn = g.players[0].PlayerID
	g.started = true
}

func (g *Game) dealTo(zone *[]deck.Card) {
	if c, ok := g.deck.Draw(); ok {
		*zone = append(*zone, c)
	}
}

// Play plays the selected cards for the player whose turn it is
func (g *Game) Play(playerID string, sel []Selection) ([]protocol.OutboundMessage, error) {
	p, err := g.activePlayer(playerID)
	if err != nil {
		return nil, err
	}

	if len(sel) == 0 {
		return []protocol.OutboundMessage{buildErrorMessage(playerID, ErrEmptySelection)}, ErrEmptySelection
	}

	zone, positions, cards, err := p.cards.resolve(sel)
	if err != nil {
		return nil, err
	}

	if err := checkPlay(g.pile, cards); err != nil {
		return []protocol.OutboundMessage{buildErrorMessage(playerID, err)}, err
	}

	// valid from here on
	p.cards.remove(zone, positions)
	burnt := g.place(cards)
	p.cards.refill(&g.deck)
	g.advanceTurn()

	msgs := g.buildStateMessages()
	if burnt {
		msgs = append(msgs, g.buildBurnNotices(p)...)
	}
	msgs = append(msgs, g.buildTurnNotices()...)

	return msgs, nil
}

// TakePile gives the pile to the player whose turn it is, in place of a play
func (g *Game) TakePile(playerID string) ([]protocol.OutboundMessage, error) {
	p, err := g.activePlayer(playerID)
	if err != nil {
		return nil, err
	}

	taken := g.givePile(p)
	g.advanceTurn()

	msgs := g.buildStateMessages()
	msgs = append(msgs, g.buildPickUpNotices(p, taken)...)
	msgs = append(msgs, g.buildTurnNotices()...)

	return msgs, nil
}

// Leave removes a player. Leaving is a no-op for unknown players.
//
// A player leaving a game in progress forfeits their cards to the discard
// pile, and passes the turn on if they held it. Once nobody is left the game
// goes back to the lobby.
func (g *Game) Leave(playerID string) ([]protocol.OutboundMessage, error) {
	idx := g.playerIndex(playerID)
	if idx < 0 {
		return nil, nil
	}

	leaver := g.players[idx]
	hadTurn := g.started && g.turn == playerID
	g.players = append(g.players[:idx], g.players[idx+1:]...)

	if len(g.players) == 0 {
		g.clear()
		return nil, nil
	}

	if !g.started {
		return g.buildRosterMessages(), nil
	}

	g.discard = append(g.discard, leaver.cards.Hand...)
	g.discard = append(g.discard, leaver.cards.FaceUp...)
	g.discard = append(g.discard, leaver.cards.FaceDown...)

	if hadTurn {
		g.turn = g.players[idx%len(g.players)].PlayerID
	}

	msgs := g.buildRosterMessages()
	msgs = append(msgs, g.buildStateMessages()...)
	msgs = append(msgs, g.buildNoticeMessages(leaver.PlayerID, leaver.Name+" has left the game")...)
	if hadTurn {
		msgs = append(msgs, g.buildTurnNotices()...)
	}

	return msgs, nil
}

// Reset throws the game away and goes back to an empty lobby.
// Everyone who was registered is told.
func (g *Game) Reset() []protocol.OutboundMessage {
	msgs := []protocol.OutboundMessage{}
	for _, p := range g.players {
		msgs = append(msgs, buildResetMessage(p.PlayerID))
	}

	g.clear()

	return msgs
}

func (g *Game) activePlayer(playerID string) (*player, error) {
	if !g.started {
		return nil, ErrNotStarted
	}
	p := g.findPlayer(playerID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if g.turn != playerID {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

// Started reports whether cards have been dealt
func (g *Game) Started() bool {
	return g.started
}

// Stage returns the stage of the game
func (g *Game) Stage() Stage {
	if g.started {
		return InProgress
	}
	return Lobby
}

// Turn returns the ID of the player whose turn it is, or "" before the game starts
func (g *Game) Turn() string {
	return g.turn
}

// Players returns the registered players in join order
func (g *Game) Players() []protocol.Player {
	ps := make([]protocol.Player, 0, len(g.players))
	for _, p := range g.players {
		ps = append(ps, p.Player)
	}
	return ps
}

// Cards returns a copy of a player's cards
func (g *Game) Cards(playerID string) (PlayerCards, bool) {
	p := g.findPlayer(playerID)
	if p == nil {
		return PlayerCards{}, false
	}
	return p.cards.clone(), true
}

// Pile returns a copy of the play pile, top card last
func (g *Game) Pile() []deck.Card {
	return append([]deck.Card{}, g.pile...)
}

// DeckCount returns the number of cards left in the deck
func (g *Game) DeckCount() int {
	return len(g.deck)
}

// DiscardCount returns the number of burnt cards
func (g *Game) DiscardCount() int {
	return len(g.discard)
}

// LastRealCard returns the card a Five would copy, if any
func (g *Game) LastRealCard() (deck.Card, bool) {
	if g.lastRealCard == nil {
		return deck.Card{}, false
	}
	return *g.lastRealCard, true
}

// HasLegalMove reports whether the player could play something on the pile.
// It is advice only: taking the pile is always allowed.
func (g *Game) HasLegalMove(playerID string) bool {
	p := g.findPlayer(playerID)
	if p == nil {
		return false
	}
	return g.hasLegalMove(p)
}

// Snapshot returns the game as seen by viewerID
func (g *Game) Snapshot(viewerID string) protocol.Snapshot {
	return *g.buildSnapshot(viewerID)
}

func (g *Game) findPlayer(playerID string) *player {
	if idx := g.playerIndex(playerID); idx >= 0 {
		return g.players[idx]
	}
	return nil
}

func (g *Game) playerIndex(playerID string) int {
	for i, p := range g.players {
		if p.PlayerID == playerID {
			return i
		}
	}
	return -1
}
