package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/topthat/engine"
	utils "github.com/minaorangina/topthat/internal"
	"github.com/minaorangina/topthat/protocol"
	"github.com/minaorangina/topthat/store"
	"github.com/stretchr/testify/require"
)

const readWait = 2 * time.Second

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)

	return data
}

func newCreateGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewBuffer(data))
	return request
}

func newGetGameRequest(gameID string) *http.Request {
	request, _ := http.NewRequest(http.MethodGet, "/game/"+gameID, nil)
	return request
}

func newJoinGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/join", bytes.NewBuffer(data))
	return request
}

func newResetGameRequest(gameID, playerID string) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/game/"+gameID+"/reset?player_id="+playerID, nil)
	return request
}

func newTestGame(t *testing.T, gameID, creatorID string) engine.GameEngine {
	t.Helper()

	game, err := engine.NewGameEngine(engine.GameEngineOpts{GameID: gameID, CreatorID: creatorID})
	require.NoError(t, err)
	t.Cleanup(game.Stop)

	return game
}

// newServerWithPendingGame returns a GameServer with a pending game
// and some hard-coded players
func newServerWithPendingGame(t *testing.T) (*GameServer, *store.InMemoryGameStore, string) {
	t.Helper()

	gameID := "SOMEID"
	gameStore := store.NewInMemoryGameStore(nil)
	require.NoError(t, gameStore.AddGame(newTestGame(t, gameID, "hersha-1")))
	require.NoError(t, gameStore.AddPendingPlayer(gameID, "hersha-1", "Hersha"))
	require.NoError(t, gameStore.AddPendingPlayer(gameID, "pending-player-id", "Penelope"))

	return NewServer(gameStore), gameStore, gameID
}

// newTestServer starts and returns a new server.
// The caller must call close to shut it down.
func newTestServer(gameStore store.GameStore, opts ...Option) *httptest.Server {
	return httptest.NewServer(NewServer(gameStore, opts...))
}

// failingStore refuses every pending player
type failingStore struct {
	*store.InMemoryGameStore
}

var errStoreFailed = errors.New("that didn't work now did it")

func (s failingStore) AddPendingPlayer(gameID, playerID, name string) error {
	return errStoreFailed
}

// ASSERTIONS

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func decodeBody(t *testing.T, body io.Reader, into interface{}) {
	t.Helper()

	bodyBytes, err := io.ReadAll(body)
	utils.AssertNoError(t, err)

	if err := json.Unmarshal(bodyBytes, into); err != nil {
		t.Fatalf("could not unmarshal json %q: %s", bodyBytes, err.Error())
	}
}

func assertPendingGameResponse(t *testing.T, body io.Reader, want string) PendingGameRes {
	t.Helper()

	var got PendingGameRes
	decodeBody(t, body, &got)

	if got.Name != want {
		t.Errorf("got %s, want %s", got.Name, want)
	}
	if len(got.GameID) == 0 {
		t.Error("expected a game id")
	}
	if len(got.PlayerID) == 0 {
		t.Error("expected a player id")
	}

	return got
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		code := 0
		if resp != nil {
			code = resp.StatusCode
		}
		t.Fatalf("could not open a ws connection on %s, code %d: %v", url, code, err)
	}
	if ws == nil {
		t.Fatal("unexpected nil websocket conn")
	}
	t.Cleanup(func() { ws.Close() })

	return ws
}

func makeWSUrl(serverURL, gameID, playerID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") +
		"/ws?game_id=" + gameID + "&player_id=" + playerID
}

// readUntil reads messages off the connection until one matches
func readUntil(t *testing.T, ws *websocket.Conn, match func(protocol.OutboundMessage) bool) protocol.OutboundMessage {
	t.Helper()

	deadline := time.Now().Add(readWait)
	for {
		ws.SetReadDeadline(deadline)

		var msg protocol.OutboundMessage
		if err := ws.ReadJSON(&msg); err != nil {
			t.Fatalf("no matching message before the deadline: %v", err)
		}
		if match(msg) {
			return msg
		}
	}
}

func isCmd(cmd protocol.Cmd) func(protocol.OutboundMessage) bool {
	return func(msg protocol.OutboundMessage) bool {
		return msg.Command == cmd
	}
}
