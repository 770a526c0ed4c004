package engine

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/minaorangina/topthat/deck"
	utils "github.com/minaorangina/topthat/internal"
	"github.com/minaorangina/topthat/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendText(t *testing.T) {
	t.Run("send simple text", func(t *testing.T) {
		buffer := NewTestBuffer()
		want := "Hello"
		SendText(buffer, want)

		utils.AssertEqual(t, buffer.String(), want)
	})

	t.Run("send formatted text", func(t *testing.T) {
		buffer := NewTestBuffer()
		want := "Hello, human"
		format := "Hello, %s"
		SendText(buffer, format, "human")

		utils.AssertEqual(t, buffer.String(), want)
	})
}

func TestParseDecision(t *testing.T) {
	tt := []struct {
		input string
		want  []int
	}{
		{"h1", []int{0}},
		{"h1 h3", []int{0, 2}},
		{"  H2  ", []int{1}},
		{"u1 u2", []int{1000, 1001}},
		{"d", []int{-1}},
	}

	for _, tc := range tt {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseDecision(tc.input)
			require.NoError(t, err)
			utils.AssertDeepEqual(t, got, tc.want)
		})
	}

	for _, bad := range []string{"", "h", "h0", "x1", "u-1", "hh", "take"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := ParseDecision(bad)
			utils.AssertErrorIs(t, err, ErrBadInput)
		})
	}
}

func TestBuildStateText(t *testing.T) {
	snap := protocol.Snapshot{
		Turn:         "p1",
		DeckCount:    12,
		Pile:         []deck.Card{deck.NewCard(deck.Nine, deck.Clubs), deck.NewCard(deck.Ten, deck.Spades)},
		DiscardCount: 4,
		Players: []protocol.PlayerView{
			{PlayerID: "p1", Name: "Ada", Hand: []deck.Card{deck.NewCard(deck.Queen, deck.Hearts)}, HandCount: 1, FaceUp: []deck.Card{deck.NewCard(deck.Six, deck.Diamonds)}, FaceDownCount: 3},
			{PlayerID: "p2", Name: "Grace", HandCount: 3, FaceUp: []deck.Card{}, FaceDownCount: 2},
		},
	}

	text := buildStateText(snap, "p1")

	assert.Contains(t, text, "Pile: 9♣ 10♠")
	assert.Contains(t, text, "Deck: 12 left")
	assert.Contains(t, text, "Burnt: 4")
	assert.Contains(t, text, "Grace has 3 in hand, face-up empty, 2 face-down")
	assert.Contains(t, text, "[h1] Q♥")
	assert.Contains(t, text, "[u1] 6♦")
	assert.NotContains(t, text, "Ada has")
}

func TestCLIPlayer(t *testing.T) {
	t.Run("only shows the table on the player's turn", func(t *testing.T) {
		buffer := NewTestBuffer()
		p := NewCLIPlayer("p2", "Grace", buffer)

		snap := protocol.Snapshot{Turn: "p1"}
		p.Send(protocol.OutboundMessage{PlayerID: "p2", Command: protocol.State, State: &snap})
		utils.AssertEqual(t, buffer.String(), "")

		snap.Turn = "p2"
		p.Send(protocol.OutboundMessage{PlayerID: "p2", Command: protocol.State, State: &snap})
		assert.Contains(t, buffer.String(), "Pile: empty")
	})

	t.Run("prompts after a turn notice or an error", func(t *testing.T) {
		buffer := NewTestBuffer()
		p := NewCLIPlayer("p1", "Ada", buffer)

		p.Send(protocol.OutboundMessage{PlayerID: "p1", Command: protocol.Notice, Message: "It's your turn!"})
		utils.AssertEqual(t, strings.Count(buffer.String(), "choose your cards"), 1)

		p.Send(protocol.OutboundMessage{PlayerID: "p1", Command: protocol.Error, Error: "cards do not beat the pile"})
		assert.Contains(t, buffer.String(), "Ada: that move isn't allowed (cards do not beat the pile)")
		utils.AssertEqual(t, strings.Count(buffer.String(), "choose your cards"), 2)
	})
}

func TestHotSeat(t *testing.T) {
	newHotSeatGame := func(t *testing.T) (GameEngine, *TestBuffer) {
		t.Helper()

		buffer := NewTestBuffer()
		ge, err := NewGameEngine(GameEngineOpts{GameID: "cli", CreatorID: "p1", Rand: rand.New(rand.NewSource(3))})
		require.NoError(t, err)
		t.Cleanup(ge.Stop)

		ge.AddPlayer(NewCLIPlayer("p1", "Ada", buffer))
		ge.AddPlayer(NewCLIPlayer("p2", "Grace", buffer))
		flush(ge)
		require.True(t, ge.Started())

		return ge, buffer
	}

	t.Run("plays for whoever holds the turn", func(t *testing.T) {
		ge, buffer := newHotSeatGame(t)

		err := NewHotSeat(ge, strings.NewReader("take\nnonsense\nquit\nh1\n"), buffer).Run()
		utils.AssertNoError(t, err)
		flush(ge)

		out := buffer.String()
		assert.Contains(t, out, "Ada: You picked up 1 cards.")
		assert.Contains(t, out, "Grace: It's your turn!")
		assert.Contains(t, out, retryInputText)
		assert.Contains(t, out, goodbyeText)
		utils.AssertEqual(t, ge.Turn(), "p2")
	})

	t.Run("again deals a new game", func(t *testing.T) {
		ge, buffer := newHotSeatGame(t)

		err := NewHotSeat(ge, strings.NewReader("take\nagain\n"), buffer).Run()
		utils.AssertNoError(t, err)
		flush(ge)

		assert.Contains(t, buffer.String(), "The game has been reset.")
		assert.True(t, ge.Started())
		utils.AssertEqual(t, ge.Turn(), "p1")
	})

	t.Run("waits for the game to start", func(t *testing.T) {
		buffer := NewTestBuffer()
		ge, _ := NewGameEngine(GameEngineOpts{GameID: "cli", CreatorID: "p1"})
		defer ge.Stop()

		err := NewHotSeat(ge, strings.NewReader("h1\n"), buffer).Run()
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, buffer.String(), notStartedText)
	})
}
