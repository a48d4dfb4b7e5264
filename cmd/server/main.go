package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"cofre/internal/server"
	"cofre/internal/server/config"
)

func main() {

	// Local development keeps its settings in a .env file; in production
	// everything comes from real environment variables.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
