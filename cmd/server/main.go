package main

import (
	"log"

	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/config"
)

func main() {
	config.SetLogLevel()

	// Setup app
	app, cfg, services := internal.SetupApp()
	defer services.Close()

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	log.Fatal(app.Listen(address))
}
