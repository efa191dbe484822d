package main

import (
	"log"
	"log/slog"
	"os"
	"strings"

	"lostlink/internal/media"
	"lostlink/internal/router"
	"lostlink/internal/store"
	"lostlink/internal/store/gormstore"
	"lostlink/internal/store/memory"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	logger := newLogger()

	// Storage backend. Without DATABASE_URL the server runs on the
	// in-memory store, which is enough for local development.
	var s store.Store
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		gs, err := gormstore.Open(dsn)
		if err != nil {
			logger.Error("database connection failed", "err", err)
			os.Exit(1)
		}
		s = gs
		logger.Info("using postgres store")
	} else {
		s = memory.New()
		logger.Warn("DATABASE_URL not set, using in-memory store; data will not survive restarts")
	}

	// Image hosting. Falls back to the in-memory fake when Imgur is not
	// configured.
	var m media.Store
	if imgur, err := media.NewImgur(); err == nil {
		m = imgur
		logger.Info("using imgur media store")
	} else {
		m = media.NewMemory()
		logger.Warn("IMGUR_CLIENT_ID not set, uploaded images are held in memory only")
	}

	r := gin.Default()
	router.RegisterRoutes(r, s, m, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	logger.Info("LostLink server starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
