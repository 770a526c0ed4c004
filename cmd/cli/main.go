package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/minaorangina/topthat/engine"
	"github.com/minaorangina/topthat/internal/logging"
)

func main() {
	logLevel := flag.String("log-level", "error", "log level for engine messages, written to stderr")
	flag.Parse()

	names := flag.Args()
	if len(names) < 2 {
		names = []string{"Harry", "Sally"}
	}

	logger, err := logging.New(*logLevel, true)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		GameID:       "cli",
		CreatorID:    playerID(0),
		StartPlayers: len(names),
		Logger:       logger,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer ge.Stop()

	for i, name := range names {
		if err := ge.AddPlayer(engine.NewCLIPlayer(playerID(i), name, os.Stdout)); err != nil {
			log.Fatal(err)
		}
	}

	if err := engine.NewHotSeat(ge, os.Stdin, os.Stdout).Run(); err != nil {
		log.Fatal(err)
	}
}

func playerID(i int) string {
	return fmt.Sprintf("player-%d", i+1)
}
