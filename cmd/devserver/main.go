// Dev entrypoint: serves the API on the in-memory store so the frontend
// can run without PostgreSQL. All data is lost on restart.
package main

import (
	"log"

	"taskmanager/internal/server"
	"taskmanager/repository/inmemory"
)

func main() {
	log.Println("task manager dev server starting (in-memory storage)...")

	cfg := server.ReadConfig()
	store := inmemory.NewStorage()

	api := server.NewTaskAPI(store, store, cfg)
	if api == nil {
		log.Fatal("failed to create API server")
	}

	log.Printf("dev server listening on %s:%d", cfg.Addr, cfg.Port)
	log.Fatal(api.Start())
}
