package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/thurbridi/rudolph/internal/auth"
	"github.com/thurbridi/rudolph/internal/config"
	"github.com/thurbridi/rudolph/internal/editor"
	mw "github.com/thurbridi/rudolph/internal/middleware"
	"github.com/thurbridi/rudolph/internal/sceneapi"
	"github.com/thurbridi/rudolph/internal/store"
	"github.com/thurbridi/rudolph/internal/typeid"
	"github.com/thurbridi/rudolph/internal/wavefront"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	authService := auth.NewService(st, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	sceneService := sceneapi.NewService(st)
	sceneHandler := sceneapi.NewHandler(sceneService)

	// Scene loader for the editor hub. Runs in the hub goroutine, so it
	// uses a background context.
	loadScene := func(sceneID string) (*editor.SceneState, error) {
		rec, err := st.GetScene(context.Background(), sceneID)
		if err != nil {
			return nil, err
		}
		sc, err := wavefront.Decode(rec.Document)
		if err != nil {
			return nil, fmt.Errorf("decode scene document: %w", err)
		}
		return editor.NewSceneState(sc), nil
	}

	// Scene saver for the editor hub. Writes the new document revision
	// and keeps a snapshot of it.
	saveScene := func(sceneID, document string) error {
		bg := context.Background()
		if err := st.UpdateSceneDocument(bg, sceneID, document); err != nil {
			return fmt.Errorf("update scene document: %w", err)
		}
		rec, err := st.GetScene(bg, sceneID)
		if err != nil {
			return fmt.Errorf("read back scene: %w", err)
		}
		if err := st.CreateSnapshot(bg, typeid.NewSnapshotID(), sceneID, rec.Version, document); err != nil {
			return fmt.Errorf("create snapshot: %w", err)
		}
		return nil
	}

	hub := editor.NewHub(loadScene, saveScene, cfg.ViewportMargin)
	go hub.Run()

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.AllowedOrigins))

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.Middleware)

	api.HandleFunc("/scenes", sceneHandler.List).Methods("GET")
	api.HandleFunc("/scenes", sceneHandler.Create).Methods("POST")
	api.HandleFunc("/scenes/{sceneId}", sceneHandler.Get).Methods("GET")
	api.HandleFunc("/scenes/{sceneId}", sceneHandler.Delete).Methods("DELETE")
	api.HandleFunc("/scenes/{sceneId}/import", sceneHandler.Import).Methods("POST")
	api.HandleFunc("/scenes/{sceneId}/export", sceneHandler.Export).Methods("GET")
	api.HandleFunc("/scenes/{sceneId}/restore", sceneHandler.Restore).Methods("POST")

	// WebSocket endpoint
	r.HandleFunc("/ws/scenes/{sceneId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, st, cfg)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop hub first to save all dirty scenes
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *editor.Hub, authSvc *auth.Service, st *store.Store, cfg *config.Config) {
	sceneID := mux.Vars(r)["sceneId"]

	// Auth via query param; websocket upgrades cannot set headers.
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	userID, err := authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	rec, err := st.GetScene(r.Context(), sceneID)
	if err != nil {
		http.Error(w, "scene not found", http.StatusNotFound)
		return
	}
	if rec.OwnerID != userID {
		http.Error(w, "not the scene owner", http.StatusForbidden)
		return
	}

	user, err := authSvc.GetUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "user not found", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(cfg.AllowedOrigins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := editor.NewClient(hub, conn, userID, user.DisplayName, sceneID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func originPatterns(allowedOrigins string) []string {
	var patterns []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		o = strings.TrimSpace(o)
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		if o != "" {
			patterns = append(patterns, o)
		}
	}
	return patterns
}
