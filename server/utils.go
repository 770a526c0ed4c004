package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

const gameIDLength = 6

var gameIDLetters = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

var (
	idMu  sync.Mutex
	idRng = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func NewID() string {
	return uuid.NewV4().String()
}

// NewGameID returns a short code players can type in to join a game
func NewGameID() string {
	idMu.Lock()
	defer idMu.Unlock()

	code := make([]byte, gameIDLength)
	for i := range code {
		code[i] = gameIDLetters[idRng.Intn(len(gameIDLetters))]
	}

	return string(code)
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID '%s'", unknownID)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) error {
	bytes, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(bytes)
	return err
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

func writeParseError(log *zap.Logger, err error, w http.ResponseWriter) {
	if errors.Is(err, io.EOF) {
		writeText(w, http.StatusBadRequest, "Missing body")
		return
	}

	log.Info("could not parse request body", zap.Error(err))
	writeText(w, http.StatusBadRequest, "Malformed body")
}
