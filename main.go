package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"google.golang.org/api/option"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/wordstorm/cliparse"
	"github.com/danielhkuo/wordstorm/coordinator"
	"github.com/danielhkuo/wordstorm/gateway"
	"github.com/danielhkuo/wordstorm/middleware"
	"github.com/danielhkuo/wordstorm/router"
	"github.com/danielhkuo/wordstorm/session"
	"github.com/danielhkuo/wordstorm/store"
)

func main() {
	// Local development reads .env; missing file is fine in production
	_ = godotenv.Load()

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	st, cleanup, err := openStore(cfg)
	if err != nil {
		slog.Error("storage setup failed", "backend", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer cleanup()
	slog.Info("Storage ready", "backend", cfg.DatabaseType)

	registry := gateway.NewRegistry()
	coord := coordinator.New(st, session.NewManager(st), registry, coordinator.Options{
		DebounceWindow: time.Duration(cfg.DebounceMS) * time.Millisecond,
		TopWords:       cfg.TopWords,
	})
	defer coord.Close()

	mux := router.NewRouter(coord, gateway.New(registry, coord))

	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
		}
	}()

	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStore builds the configured storage backend. Durable backends are
// wrapped in the in-memory fallback so a storage outage degrades the
// session instead of killing it.
func openStore(cfg cliparse.Config) (store.Store, func(), error) {
	switch cfg.DatabaseType {
	case "memory":
		return store.NewMemoryStore(), func() {}, nil

	case "sqlite", "postgres":
		dbConn, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := dbConn.Ping(); err != nil {
			dbConn.Close()
			return nil, nil, err
		}
		if err := store.CreateSchema(dbConn); err != nil {
			dbConn.Close()
			return nil, nil, err
		}
		return store.NewFallback(store.NewSQLStore(dbConn)), func() { dbConn.Close() }, nil

	case "firestore":
		ctx := context.Background()
		var opts []option.ClientOption
		if cfg.GoogleCredentials != "" {
			opts = append(opts, option.WithCredentialsJSON([]byte(cfg.GoogleCredentials)))
		}
		client, err := firestore.NewClient(ctx, cfg.GCPProjectID, opts...)
		if err != nil {
			return nil, nil, err
		}
		return store.NewFallback(store.NewFirestoreStore(client)), func() { client.Close() }, nil
	}

	// cliparse validated the backend already
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.DatabaseType)
}
