package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/topthat/engine"
	"github.com/minaorangina/topthat/store"
	"go.uber.org/zap"
)

const (
	statusPending    = "pending"
	statusInProgress = "inProgress"
)

type NewGameReq struct {
	Name string `json:"name"`
}

type PendingGameRes struct {
	GameID   string   `json:"game_id"`
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Admin    bool     `json:"is_admin"`
	Players  []string `json:"players"`
}

type JoinGameReq struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
}

type GetGameRes struct {
	Status string `json:"status"`
	GameID string `json:"game_id"`
}

type HealthRes struct {
	OK bool `json:"ok"`
}

// GameServer is a game server
type GameServer struct {
	store          store.GameStore
	log            *zap.Logger
	allowedOrigins []string
	startPlayers   int
	upgrader       websocket.Upgrader

	http.Server
}

type Option func(*GameServer)

func WithLogger(log *zap.Logger) Option {
	return func(s *GameServer) {
		if log != nil {
			s.log = log
		}
	}
}

// WithAllowedOrigins limits which browser origins may call the API
// and open websockets. "*" allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *GameServer) {
		s.allowedOrigins = origins
	}
}

// WithStartPlayers sets how many players new games wait for before dealing
func WithStartPlayers(n int) Option {
	return func(s *GameServer) {
		s.startPlayers = n
	}
}

// NewServer creates a new GameServer
func NewServer(gameStore store.GameStore, opts ...Option) *GameServer {
	s := &GameServer{
		store:          gameStore,
		log:            zap.NewNop(),
		allowedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	router := chi.NewRouter()
	router.Get("/health", s.HandleHealth)
	router.Post("/new", s.HandleNewGame)
	router.Post("/join", s.HandleJoinGame)
	router.Get("/game/{gameID}", s.HandleFindGame)
	router.Post("/game/{gameID}/reset", s.HandleResetGame)
	router.Get("/ws", s.HandleWS)

	accessLog := zap.NewStdLog(s.log.Named("http"))

	var handler http.Handler = router
	handler = handlers.CORS(
		handlers.AllowedOrigins(s.allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handler)
	handler = handlers.RecoveryHandler(handlers.RecoveryLogger(accessLog))(handler)
	handler = handlers.CombinedLoggingHandler(accessLog.Writer(), handler)

	s.Handler = handler

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

func (g *GameServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	for _, allowed := range g.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	g.log.Info("websocket origin rejected", zap.String("origin", origin))
	return false
}

func (g *GameServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthRes{OK: true})
}

// HandleNewGame handles a request to create a new game
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(g.log, err, w)
		return
	}

	if data.Name == "" {
		writeText(w, http.StatusBadRequest, "Missing player name")
		return
	}

	gameID := NewGameID()
	playerID := NewID()
	log := g.log.With(zap.String("game_id", gameID), zap.String("player_id", playerID))

	game, err := engine.NewGameEngine(engine.GameEngineOpts{
		GameID:       gameID,
		CreatorID:    playerID,
		StartPlayers: g.startPlayers,
		Logger:       g.log,
	})
	if err != nil {
		log.Error("could not create game engine", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := g.store.AddGame(game); err != nil {
		game.Stop()
		log.Error("could not store game", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := g.store.AddPendingPlayer(gameID, playerID, data.Name); err != nil {
		if err := g.store.RemoveGame(gameID); err != nil {
			log.Warn("could not remove abandoned game", zap.Error(err))
		}
		log.Error("could not add game creator", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	payload := PendingGameRes{
		GameID:   gameID,
		PlayerID: playerID,
		Name:     data.Name,
		Admin:    true,
		Players:  []string{},
	}

	if err := writeJSON(w, http.StatusCreated, payload); err != nil {
		log.Warn("could not write response", zap.Error(err))
	}
}

func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	game := g.store.FindGame(gameID)
	if game == nil {
		writeText(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	status := statusPending
	if game.Started() {
		status = statusInProgress
	}

	writeJSON(w, http.StatusOK, GetGameRes{Status: status, GameID: gameID})
}

func (g *GameServer) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	var data JoinGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(g.log, err, w)
		return
	}

	if data.GameID == "" {
		writeText(w, http.StatusBadRequest, "Missing game ID")
		return
	}

	if data.Name == "" {
		writeText(w, http.StatusBadRequest, "Missing player name")
		return
	}

	if g.store.FindGame(data.GameID) == nil {
		writeText(w, http.StatusNotFound, unknownGameIDMsg(data.GameID))
		return
	}

	playerNames := []string{}
	for _, p := range g.store.PendingPlayers(data.GameID) {
		playerNames = append(playerNames, p.Name)
	}

	playerID := NewID()
	err = g.store.AddPendingPlayer(data.GameID, playerID, data.Name)
	switch {
	case errors.Is(err, store.ErrGameAlreadyStarted):
		writeText(w, http.StatusConflict, "Game has already started")
		return
	case errors.Is(err, store.ErrUnknownGameID):
		writeText(w, http.StatusNotFound, unknownGameIDMsg(data.GameID))
		return
	case err != nil:
		g.log.Error("could not add pending player", zap.String("game_id", data.GameID), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	payload := PendingGameRes{
		PlayerID: playerID,
		GameID:   data.GameID,
		Name:     data.Name,
		Players:  playerNames,
	}

	writeJSON(w, http.StatusOK, payload)
}

// HandleResetGame sends a game back to its lobby. Only the game's creator may do this.
func (g *GameServer) HandleResetGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	playerID := r.URL.Query().Get("player_id")

	game := g.store.FindGame(gameID)
	if game == nil {
		writeText(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	err := game.Reset(playerID)
	switch {
	case errors.Is(err, engine.ErrNotCreator):
		writeText(w, http.StatusForbidden, err.Error())
		return
	case errors.Is(err, engine.ErrEngineStopped):
		writeText(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	case err != nil:
		g.log.Error("could not reset game", zap.String("game_id", gameID), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	g.log.Info("game reset", zap.String("game_id", gameID))
	w.WriteHeader(http.StatusNoContent)
}

func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	gameID := query.Get("game_id")
	if gameID == "" {
		writeText(w, http.StatusBadRequest, "missing game ID")
		return
	}

	playerID := query.Get("player_id")
	if playerID == "" {
		writeText(w, http.StatusBadRequest, "missing player ID")
		return
	}

	game := g.store.FindGame(gameID)
	if game == nil {
		writeText(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	pendingPlayer := g.store.FindPendingPlayer(gameID, playerID)
	if pendingPlayer == nil {
		writeText(w, http.StatusForbidden, "unknown player ID")
		return
	}

	log := g.log.With(zap.String("game_id", gameID), zap.String("player_id", playerID))

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		log.Info("could not upgrade to websocket", zap.Error(err))
		return
	}

	player := engine.NewWSPlayer(playerID, pendingPlayer.Name, conn, game, log)
	if err := g.store.AddPlayerToGame(gameID, player); err != nil {
		// closing the connection ends the player's pumps
		log.Warn("could not add player to game", zap.Error(err))
		conn.Close()
	}
}
