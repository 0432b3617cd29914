package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"growthos/internal/config"
	"growthos/internal/serverapp"
)

func main() {
	cfg, err := config.Load("growthos_config.yml")
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("no growthos_config.yml, using defaults")
		cfg = config.Default()
		err = nil
	}
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s (storage=%s)", cfg.Server.Addr, cfg.Storage.Backend)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
