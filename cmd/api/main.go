package main

import (
	"flag"
	"log"

	"github.com/tarefahub-io/tarefahub/internal/api"
	"github.com/tarefahub-io/tarefahub/internal/config"
	"github.com/tarefahub-io/tarefahub/internal/database"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "app.yml", "Path to configuration file")
	flag.Parse()

	log.Printf("Starting TarefaHub API v%s with config: %s", version, *configPath)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	apiServer, err := api.NewApi(*cfg, db)
	if err != nil {
		log.Fatal(err)
	}

	if err := apiServer.Serve(); err != nil {
		log.Fatal(err)
	}
}
