package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"connect-four-server/internal/config"
	"connect-four-server/internal/repository/postgres"
	"connect-four-server/internal/repository/redis"
	"connect-four-server/internal/service/cleanup"
	"connect-four-server/internal/service/game"
	"connect-four-server/internal/service/leaderboard"
	"connect-four-server/internal/service/matchmaking"
	transportHttp "connect-four-server/internal/transport/http"
	"connect-four-server/internal/transport/http/middleware"
	"connect-four-server/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.LoadConfig(os.Args[1:])

	// Leaderboard: Redis sorted set when configured and reachable, the
	// local file otherwise.
	var lbStore leaderboard.Store
	if cfg.RedisURL != "" {
		client, err := redis.Connect(cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			log.Printf("[REDIS] %v. Falling back to file leaderboard.", err)
		} else {
			defer client.Close()
			lbStore = leaderboard.NewRedisStore(client)
			log.Println("[REDIS] Connected successfully")
		}
	}
	if lbStore == nil {
		fileStore, err := leaderboard.NewFileStore(cfg.LeaderboardFile)
		if err != nil {
			log.Fatalf("Failed to open leaderboard file: %v", err)
		}
		lbStore = fileStore
	}

	// Game history: optional, only when a database is configured.
	var historyRepo *postgres.GameRepo
	if cfg.DatabaseURL != "" {
		db, err := postgres.Connect(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := postgres.RunMigrations(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		historyRepo = postgres.NewGameRepo(db)
		log.Println("[DB] Game history enabled")
	}

	connManager := websocket.NewConnectionManager()
	queue := matchmaking.NewQueue()

	var history game.HistoryRepository
	if historyRepo != nil {
		history = historyRepo
	}
	sessionManager := game.NewSessionManager(connManager, queue, lbStore, history)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go queue.Run(ctx, cfg.MatchmakingInterval, connManager, sessionManager)

	cleanupWorker := cleanup.NewWorker(sessionManager)
	if err := cleanupWorker.Start(); err != nil {
		log.Fatalf("Failed to start cleanup worker: %v", err)
	}
	defer cleanupWorker.Stop()

	wsHandler := websocket.NewHandler(connManager, queue, sessionManager, cfg.AllowedOrigins)
	lbHandler := transportHttp.NewLeaderboardHandler(lbStore)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/ws", wsHandler.HandleWebSocket)
	router.GET("/api/leaderboard", lbHandler.Top)
	router.POST("/api/announce", transportHttp.NewAnnounceHandler(connManager).Announce)
	if historyRepo != nil {
		historyHandler := transportHttp.NewHistoryHandler(historyRepo)
		router.GET("/api/history", historyHandler.Recent)
	}
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"players":  connManager.Count(),
			"sessions": sessionManager.Count(),
			"waiting":  queue.Len(),
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	// Stop pairing, tell every client goodbye, then drain the listener.
	cancel()
	connManager.DisconnectAll("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
