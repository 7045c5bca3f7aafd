package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"journeyplanner/internal/app"
	intconfig "journeyplanner/internal/config"
	router "journeyplanner/internal/http"
	"journeyplanner/internal/remote"
	"journeyplanner/internal/session"
	"journeyplanner/internal/storage"
	"journeyplanner/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, db, err := openStorage(ctx, env)
	if err != nil {
		log.Fatalf("failed to open client state storage: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	var backend app.Backend
	if env.OfflineMode {
		log.Println("offline mode: serving journeys and users from the in-memory backend")
		backend = remote.NewMockBackend()
	} else {
		backend = remote.NewClient(remote.Options{
			CompositeBaseURL:   env.CompositeBaseURL,
			SavedRoutesBaseURL: env.SavedRoutesBaseURL,
			UserServiceBaseURL: env.UserServiceBaseURL,
			Timeout:            env.HTTPTimeout,
		})
	}

	sessions := session.NewManager(env.SessionSecret, env.SessionTTL, backend, store)
	go pruneSessions(ctx, sessions, time.Hour)

	r := router.NewRouter(env, sessions)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      env.HTTPTimeout + 20*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s (state backend: %s)", env.AppAddr, env.StateBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}

func openStorage(ctx context.Context, env intconfig.Env) (storage.Storage, *sql.DB, error) {
	switch env.StateBackend {
	case "memory":
		return storage.NewMemory(), nil, nil
	case "file", "":
		st, err := storage.NewFile(afero.NewOsFs(), env.StateDir)
		if err != nil {
			return nil, nil, err
		}
		return st, nil, nil
	case "mysql":
		db, err := intconfig.ConnectDB(env.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		st, err := storage.NewMySQL(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return st, db, nil
	default:
		return nil, nil, fmt.Errorf("unknown STATE_BACKEND %q", env.StateBackend)
	}
}

func pruneSessions(ctx context.Context, sessions *session.Manager, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := sessions.Prune(); n > 0 {
				utils.LogEvent("", "session", "prune", fmt.Sprintf("removed=%d", n))
			}
		}
	}
}
