package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskmanager/internal/server"
	"taskmanager/repository/db"
	"taskmanager/repository/inmemory"
)

const shutdownTimeout = 30 * time.Second

type taskAPI interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// RunMigrations applies pending schema migrations.
func RunMigrations(cfg *server.Config) error {
	return db.Migration(cfg.DBStr, cfg.MigratePath)
}

// InitializeRepositories connects to the database, falling back to
// in-memory storage when the database is unreachable. The returned
// cleanup func releases whichever storage was chosen.
func InitializeRepositories(cfg *server.Config) (server.UserRepository, server.TaskRepository, func(), error) {
	dbStorage, err := db.NewStorage(context.Background(), cfg.DBStr)
	if err != nil {
		log.Println("[WARN] database unavailable, falling back to in-memory storage:", err)
		inmem := inmemory.NewStorage()
		return inmem, inmem, inmem.Close, nil
	}
	return dbStorage, dbStorage, dbStorage.Close, nil
}

// StartServer launches the API in a goroutine and returns the signal
// and server error channels for the caller to select on.
func StartServer(api taskAPI, cfg *server.Config) (chan os.Signal, chan error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("service listening on %s:%d", cfg.Addr, cfg.Port)
		if err := api.Start(); err != nil {
			serverErr <- err
		}
	}()

	return sigChan, serverErr
}

// HandleShutdown drains in-flight requests before stopping the server.
func HandleShutdown(api taskAPI, sig os.Signal) error {
	log.Printf("received signal %v, starting graceful shutdown...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return api.Shutdown(shutdownCtx)
}

func main() {
	log.Println("task manager service starting...")

	cfg := server.ReadConfig()

	if err := RunMigrations(cfg); err != nil {
		log.Println("[WARN] failed to apply migrations:", err)
	} else {
		log.Println("[SUCCESS] migrations applied")
	}

	userRepo, taskRepo, closeStorage, err := InitializeRepositories(cfg)
	if err != nil {
		log.Fatal("[ERROR] failed to initialize storage: ", err)
	}
	defer closeStorage()

	api := server.NewTaskAPI(userRepo, taskRepo, cfg)
	if api == nil {
		log.Fatal("[ERROR] failed to initialize API")
	}

	sigChan, serverErr := StartServer(api, cfg)

	select {
	case sig := <-sigChan:
		if err := HandleShutdown(api, sig); err != nil {
			log.Printf("[ERROR] graceful shutdown failed: %v", err)
		} else {
			log.Println("[SUCCESS] graceful shutdown complete")
		}

	case err := <-serverErr:
		log.Printf("[ERROR] server error: %v", err)
	}

	log.Println("service stopped")
}
