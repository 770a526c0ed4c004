package server

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	utils "github.com/minaorangina/topthat/internal"
	"github.com/minaorangina/topthat/protocol"
	"github.com/minaorangina/topthat/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, url string, body []byte) *http.Response {
	t.Helper()

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func getGameStatus(t *testing.T, serverURL, gameID string) string {
	t.Helper()

	resp, err := http.Get(serverURL + "/game/" + gameID)
	require.NoError(t, err)
	defer resp.Body.Close()
	assertStatus(t, resp.StatusCode, http.StatusOK)

	var got GetGameRes
	decodeBody(t, resp.Body, &got)
	return got.Status
}

func TestPlayingAGameOverWebsockets(t *testing.T) {
	gameStore := store.NewInMemoryGameStore(nil)
	server := newTestServer(gameStore)
	defer server.Close()

	resp := post(t, server.URL+"/new", mustMakeJson(t, NewGameReq{"Ada"}))
	assertStatus(t, resp.StatusCode, http.StatusCreated)
	ada := assertPendingGameResponse(t, resp.Body, "Ada")
	t.Cleanup(func() { gameStore.RemoveGame(ada.GameID) })

	resp = post(t, server.URL+"/join", mustMakeJson(t, JoinGameReq{ada.GameID, "Grace"}))
	assertStatus(t, resp.StatusCode, http.StatusOK)
	grace := assertPendingGameResponse(t, resp.Body, "Grace")
	utils.AssertDeepEqual(t, grace.Players, []string{"Ada"})

	utils.AssertEqual(t, getGameStatus(t, server.URL, ada.GameID), statusPending)

	adaWS := mustDialWS(t, makeWSUrl(server.URL, ada.GameID, ada.PlayerID))
	readUntil(t, adaWS, isCmd(protocol.Joined))

	graceWS := mustDialWS(t, makeWSUrl(server.URL, ada.GameID, grace.PlayerID))

	adaState := readUntil(t, adaWS, isCmd(protocol.State))
	graceState := readUntil(t, graceWS, isCmd(protocol.State))

	t.Run("both players see the dealt table", func(t *testing.T) {
		require.NotNil(t, adaState.State)
		require.NotNil(t, graceState.State)
		utils.AssertEqual(t, adaState.State.Turn, ada.PlayerID)
		utils.AssertEqual(t, graceState.State.Turn, ada.PlayerID)

		self, ok := adaState.State.Find(ada.PlayerID)
		require.True(t, ok)
		assert.Len(t, self.Hand, 3)

		other, ok := adaState.State.Find(grace.PlayerID)
		require.True(t, ok)
		assert.Empty(t, other.Hand)
		utils.AssertEqual(t, other.HandCount, 3)

		utils.AssertEqual(t, getGameStatus(t, server.URL, ada.GameID), statusInProgress)
	})

	t.Run("nobody else can join", func(t *testing.T) {
		resp := post(t, server.URL+"/join", mustMakeJson(t, JoinGameReq{ada.GameID, "Edsger"}))
		assertStatus(t, resp.StatusCode, http.StatusConflict)
	})

	t.Run("taking the pile passes the turn", func(t *testing.T) {
		require.NoError(t, adaWS.WriteJSON(protocol.InboundMessage{Command: protocol.TakePile}))

		notice := readUntil(t, graceWS, isCmd(protocol.Notice))
		utils.AssertEqual(t, notice.Message, "Ada picked up the pile.")

		turn := readUntil(t, graceWS, isCmd(protocol.Notice))
		assert.True(t, strings.HasPrefix(turn.Message, "It's your turn!"))

		readUntil(t, adaWS, func(msg protocol.OutboundMessage) bool {
			return msg.Command == protocol.Notice && strings.HasPrefix(msg.Message, "You picked up")
		})
	})

	t.Run("playing nothing is an error", func(t *testing.T) {
		require.NoError(t, graceWS.WriteJSON(protocol.InboundMessage{Command: protocol.Play}))

		msg := readUntil(t, graceWS, isCmd(protocol.Error))
		utils.AssertEqual(t, msg.Error, "no cards selected")
	})

	t.Run("only the creator can reset", func(t *testing.T) {
		resp := post(t, server.URL+"/game/"+ada.GameID+"/reset?player_id="+grace.PlayerID, nil)
		assertStatus(t, resp.StatusCode, http.StatusForbidden)

		resp = post(t, server.URL+"/game/"+ada.GameID+"/reset?player_id="+ada.PlayerID, nil)
		assertStatus(t, resp.StatusCode, http.StatusNoContent)

		readUntil(t, adaWS, isCmd(protocol.Reset))
		readUntil(t, graceWS, isCmd(protocol.Reset))

		utils.AssertEqual(t, getGameStatus(t, server.URL, ada.GameID), statusPending)
	})

	t.Run("players rejoin over the open connection", func(t *testing.T) {
		require.NoError(t, adaWS.WriteJSON(protocol.InboundMessage{Command: protocol.Join}))
		readUntil(t, adaWS, isCmd(protocol.Joined))
		require.NoError(t, graceWS.WriteJSON(protocol.InboundMessage{Command: protocol.Join}))

		state := readUntil(t, graceWS, isCmd(protocol.State))
		require.NotNil(t, state.State)
		utils.AssertEqual(t, state.State.Turn, ada.PlayerID)
	})
}
