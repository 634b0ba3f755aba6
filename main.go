package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/codecollab/editor-server/internal/acl"
	"github.com/codecollab/editor-server/internal/api"
	"github.com/codecollab/editor-server/internal/auth"
	"github.com/codecollab/editor-server/internal/config"
	"github.com/codecollab/editor-server/internal/files"
	"github.com/codecollab/editor-server/internal/hub"
	"github.com/codecollab/editor-server/internal/projects"
	"github.com/codecollab/editor-server/internal/storage"
	"github.com/codecollab/editor-server/internal/users"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	db, err := storage.Open(context.Background(), cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}

	defer func() {
		_ = db.Close()
	}()

	// Initialize stores
	userStore := users.NewSQLiteStore(db)
	projectStore := projects.NewSQLiteStore(db)
	accessStore := acl.NewSQLiteStore(db)
	fileService := files.NewSQLiteService(db)

	// Initialize the collaboration hub
	rooms := hub.New(hub.Config{
		Files:    fileService,
		Projects: projectStore,
	})

	// Initialize API server
	server := api.NewServer(api.Config{
		Users:          userStore,
		Projects:       projectStore,
		Access:         accessStore,
		Tokens:         auth.NewTokenStore(time.Duration(cfg.TokenTTL)),
		Hub:            rooms,
		AllowedOrigins: cfg.AllowedOrigins,
		PingInterval:   time.Duration(cfg.PingInterval),
		ClientTimeout:  time.Duration(cfg.ClientTimeout),
	})

	// Configure HTTP server with timeouts
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.Addr)

	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
